package main

//
//  @title           Macro Indicators API
//  @version         1.0
//  @description     Macro market indicator analysis service.
//  @termsOfService  https://github.com/blackswanwtf/macro-indicators-service
//  @contact.name    API Support
//  @contact.url     https://github.com/blackswanwtf/macro-indicators-service
//  @contact.email   support@blackswan.wtf
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        analysis
//  @tag.description Endpoints for running and querying macro analyses
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackswanwtf/macro-indicators-service/config"
	_ "github.com/blackswanwtf/macro-indicators-service/docs" // swagger docs
	"github.com/blackswanwtf/macro-indicators-service/internal/app"
	"github.com/blackswanwtf/macro-indicators-service/internal/logger"
	"github.com/blackswanwtf/macro-indicators-service/internal/scheduler"
	"github.com/blackswanwtf/macro-indicators-service/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      150 * time.Second, // analysis runs may wait on the language model
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up
// resources when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - stopScheduler (func()): Cancels the background analysis loop.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, stopScheduler func(), cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the macro-indicators service.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API; a background scheduler runs a cycle
//     every ANALYSIS_INTERVAL_MINUTES unless SCHEDULER_ENABLED=false.
//   - analyze: Runs a single analysis cycle and exits.
//
// Flags:
//   - --mode: Execution mode ("api" or "analyze"). Default: "api".
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api or analyze")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "analyze":
		// One-shot mode: run a single cycle and exit
		logger.L().Info().Msg("running one-shot analysis")

		_, analyzer, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer cleanup()

		rec, err := analyzer.RunCycle(ctx)
		switch {
		case errors.Is(err, service.ErrNoData):
			logger.L().Warn().Msg("analysis skipped: no indicator data")
		case err != nil:
			logger.L().Fatal().Err(err).Msg("analysis failed")
		default:
			logger.L().Info().Int64("analysis_id", rec.ID).Msg("analysis completed")
		}

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, analyzer, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		schedulerCtx, stopScheduler := context.WithCancel(ctx)
		if config.AppConfig.Scheduler.Enabled {
			sched := scheduler.New(analyzer, config.AppConfig.Scheduler.Interval)
			go sched.Run(schedulerCtx)
		} else {
			logger.L().Info().Msg("scheduler disabled")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, stopScheduler, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
