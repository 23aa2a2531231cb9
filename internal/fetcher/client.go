// Package fetcher holds the HTTP clients for the three macro
// indicator upstreams. Each client returns timestamped raw samples (or
// a single snapshot) for a caller-supplied lookback window; shaping
// them into hourly series is the aggregation package's job.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
)

// Sources is what the analyzer consumes; the concrete Client is the
// production implementation, tests substitute stubs.
type Sources interface {
	IndexSamples(ctx context.Context, lookbackHours int) ([]models.RawSample, error)
	Sentiment(ctx context.Context) (*models.SentimentSnapshot, error)
	CurrencySamples(ctx context.Context, lookbackHours int) ([]models.RawSample, error)
}

// Config carries the upstream endpoints and credentials.
type Config struct {
	IndexURL     string
	SentimentURL string
	CurrencyURL  string
	APIKey       string
	Timeout      time.Duration
}

// Client fetches raw indicator data over HTTP.
type Client struct {
	cfg  Config
	http *resty.Client
}

// NewClient builds a Client with a shared resty transport.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	c := resty.New()
	c.SetTimeout(cfg.Timeout)
	c.SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		c.SetHeader("X-Api-Key", cfg.APIKey)
	}
	return &Client{cfg: cfg, http: c}
}

var _ Sources = (*Client)(nil)

// samplePayload is the wire shape both sample feeds share: a list of
// records carrying a millisecond timestamp plus arbitrary numeric
// fields. Records are decoded loosely; the aggregator drops malformed
// ones.
type samplePayload struct {
	Data []map[string]any `json:"data"`
}

// IndexSamples returns the raw equity index samples for the lookback
// window, newest ordering not guaranteed.
func (c *Client) IndexSamples(ctx context.Context, lookbackHours int) ([]models.RawSample, error) {
	return c.fetchSamples(ctx, c.cfg.IndexURL, lookbackHours)
}

// CurrencySamples returns the raw multi-pair exchange-rate samples for
// the lookback window.
func (c *Client) CurrencySamples(ctx context.Context, lookbackHours int) ([]models.RawSample, error) {
	return c.fetchSamples(ctx, c.cfg.CurrencyURL, lookbackHours)
}

func (c *Client) fetchSamples(ctx context.Context, url string, lookbackHours int) ([]models.RawSample, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("hours", fmt.Sprintf("%d", lookbackHours)).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}

	var payload samplePayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return DecodeSamples(payload.Data), nil
}

// DecodeSamples converts loose wire records into RawSamples. The
// "timestamp" key becomes the sample timestamp; every other numeric
// key lands in Fields. Non-numeric values are skipped here,
// whole-record validity is left to the aggregator.
func DecodeSamples(records []map[string]any) []models.RawSample {
	out := make([]models.RawSample, 0, len(records))
	for _, rec := range records {
		s := models.RawSample{Fields: make(map[string]float64, len(rec))}
		for k, v := range rec {
			f, ok := v.(float64)
			if !ok {
				continue
			}
			if k == "timestamp" {
				s.Timestamp = int64(f)
				continue
			}
			s.Fields[k] = f
		}
		out = append(out, s)
	}
	return out
}

// Sentiment fetches the current fear & greed reading. The upstream's
// payload shape varies (see sentiment_shapes.go); an unrecognized
// shape is a nil snapshot, not an error.
func (c *Client) Sentiment(ctx context.Context) (*models.SentimentSnapshot, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.cfg.SentimentURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.cfg.SentimentURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: status %d", c.cfg.SentimentURL, resp.StatusCode())
	}

	var doc any
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.cfg.SentimentURL, err)
	}
	return ExtractSentimentSnapshot(doc), nil
}
