package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/blackswanwtf/macro-indicators-service/config"
	"github.com/blackswanwtf/macro-indicators-service/internal/api"
	"github.com/blackswanwtf/macro-indicators-service/internal/fetcher"
	"github.com/blackswanwtf/macro-indicators-service/internal/metrics"
	"github.com/blackswanwtf/macro-indicators-service/internal/narration"
	"github.com/blackswanwtf/macro-indicators-service/internal/service"
	"github.com/blackswanwtf/macro-indicators-service/internal/storage"
)

// InitializeApp sets up all application dependencies and returns a
// fully configured Gin router, the analyzer (so callers can run
// cycles outside the HTTP surface), a cleanup function for graceful
// shutdown, and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Ensures the result store schema exists.
//   - Initializes the repository layer (AnalysisRepository).
//   - Builds the upstream data-source client and the narration client.
//   - Wires the analyzer that orchestrates the analysis cycle.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, *service.Analyzer, func(), error) {
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Result store schema, then repository layer
	if err := storage.EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("failed to prepare result store: %w", err)
	}
	repo := storage.NewAnalysisRepository(db)

	// Upstream data sources
	sources := fetcher.NewClient(fetcher.Config{
		IndexURL:     cfg.Indicators.IndexURL,
		SentimentURL: cfg.Indicators.SentimentURL,
		CurrencyURL:  cfg.Indicators.CurrencyURL,
		APIKey:       cfg.Indicators.APIKey,
	})

	// Language-model narration
	narrator := narration.NewOpenRouterNarrator(narration.Config{
		BaseURL: cfg.Narration.BaseURL,
		APIKey:  cfg.Narration.APIKey,
		Model:   cfg.Narration.Model,
	})

	// Cycle metrics on the default registry, exposed at /metrics
	recorder := metrics.New(prometheus.DefaultRegisterer)

	// Analysis orchestration
	analyzer := service.NewAnalyzer(sources, narrator, repo, recorder, service.Options{
		LookbackHours: cfg.Indicators.LookbackHours,
		Model:         cfg.Narration.Model,
		Provider:      cfg.Narration.Provider,
	})

	// HTTP handler layer and router
	handler := api.NewHandler(analyzer, repo)
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, analyzer, cleanup, nil
}
