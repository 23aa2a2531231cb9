// Package narration turns a computed metrics report into structured
// prose via an externally hosted language model (OpenRouter-style
// chat-completions API).
package narration

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
)

const systemPrompt = `You are a macro-economics analyst. Given computed market metrics for the S&P 500, the Fear & Greed index and major currency exchange rates, write a short professional analysis.

Rules:
- Base every statement strictly on the provided metrics
- Where a metric reads "insufficient_data" or "n/a", say the data was insufficient
- Keep each section to 2-4 sentences, neutral tone

Output as JSON only, no other text:
{
  "sp500_analysis": "...",
  "fear_greed_analysis": "...",
  "currency_analysis": "...",
  "analysis_summary": "one-paragraph overall summary",
  "fear_greed_value": "current fear & greed value"
}`

// Narrator is the narration collaborator consumed by the analyzer.
type Narrator interface {
	Narrate(ctx context.Context, report models.MetricsReport, lookbackHours int) (*models.Narrative, error)
}

// Config carries the model endpoint and credentials.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenRouterNarrator implements Narrator against an OpenAI-compatible
// chat-completions endpoint.
type OpenRouterNarrator struct {
	cfg  Config
	http *resty.Client
}

func NewOpenRouterNarrator(cfg Config) *OpenRouterNarrator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	c := resty.New()
	c.SetTimeout(cfg.Timeout)
	c.SetHeader("Content-Type", "application/json")
	c.SetAuthToken(cfg.APIKey)
	return &OpenRouterNarrator{cfg: cfg, http: c}
}

var _ Narrator = (*OpenRouterNarrator)(nil)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Narrate renders the report into a brief, asks the model for the
// structured analysis, and validates the required fields. Any
// transport, decode or validation problem is a hard error for the
// enclosing cycle.
func (n *OpenRouterNarrator) Narrate(ctx context.Context, report models.MetricsReport, lookbackHours int) (*models.Narrative, error) {
	brief := RenderBrief(report, lookbackHours, time.Now())

	req := chatRequest{
		Model: n.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: brief},
		},
	}

	resp, err := n.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(n.cfg.BaseURL + "/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("narration request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("narration request: status %d: %s", resp.StatusCode(), resp.String())
	}

	var chat chatResponse
	if err := json.Unmarshal(resp.Body(), &chat); err != nil {
		return nil, fmt.Errorf("decode narration response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("narration response has no choices")
	}

	return ParseNarrative(chat.Choices[0].Message.Content)
}

// ParseNarrative decodes the model output into a Narrative, tolerating
// markdown code fences around the JSON. The four analysis fields are
// required; fear_greed_value may arrive as a number or a string.
func ParseNarrative(content string) (*models.Narrative, error) {
	cleaned := stripFences(content)

	// fear_greed_value arrives as either a bare number or a string;
	// decode loosely first, then normalize.
	var loose struct {
		SP500Analysis     string          `json:"sp500_analysis"`
		FearGreedAnalysis string          `json:"fear_greed_analysis"`
		CurrencyAnalysis  string          `json:"currency_analysis"`
		AnalysisSummary   string          `json:"analysis_summary"`
		FearGreedValue    json.RawMessage `json:"fear_greed_value"`
		CreatedAt         int64           `json:"createdAt"`
	}
	if err := json.Unmarshal([]byte(cleaned), &loose); err != nil {
		return nil, fmt.Errorf("unparsable narration output: %w", err)
	}

	missing := make([]string, 0, 4)
	for name, v := range map[string]string{
		"sp500_analysis":      loose.SP500Analysis,
		"fear_greed_analysis": loose.FearGreedAnalysis,
		"currency_analysis":   loose.CurrencyAnalysis,
		"analysis_summary":    loose.AnalysisSummary,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("narration output missing required fields: %s", strings.Join(missing, ", "))
	}

	nar := &models.Narrative{
		SP500Analysis:     loose.SP500Analysis,
		FearGreedAnalysis: loose.FearGreedAnalysis,
		CurrencyAnalysis:  loose.CurrencyAnalysis,
		AnalysisSummary:   loose.AnalysisSummary,
		CreatedAt:         loose.CreatedAt,
	}
	if len(loose.FearGreedValue) > 0 {
		nar.FearGreedValue = strings.Trim(string(loose.FearGreedValue), `"`)
	}
	return nar, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
