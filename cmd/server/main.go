package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/intudo/intent-gateway/internal/api"
	"github.com/intudo/intent-gateway/internal/config"
	"github.com/intudo/intent-gateway/internal/llm"
	"github.com/intudo/intent-gateway/internal/observability"
	"github.com/intudo/intent-gateway/internal/orchestrator"
	"github.com/intudo/intent-gateway/internal/storage"
	"github.com/intudo/intent-gateway/internal/stt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Str("chat_model", cfg.ChatModel).
		Str("whisper_model", cfg.WhisperModel).
		Str("temp_dir", cfg.TempDir).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("Intent Gateway starting")

	// The scratch directory is a hard requirement: without it no audio
	// can be processed, so failure here is fatal.
	store := storage.NewTempStore(cfg.TempDir)
	if err := store.EnsureDir(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to prepare temp directory")
	}

	// Sweep stale temp files left behind by crashed requests
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sweepAge := time.Duration(cfg.TempSweepAge) * time.Minute
	store.StartSweeper(sweepCtx, sweepAge, sweepAge)

	// Wire the pipeline
	transcriber := stt.NewWhisperClient(cfg)
	interpreter := llm.NewOpenAIInterpreter(cfg)
	pipeline := orchestrator.New(cfg, store, transcriber, interpreter)

	// Create HTTP server
	mux := http.NewServeMux()

	mux.Handle("/v0/interpret", api.CORS(cfg.CORSOrigin, api.InterpretHandler(cfg, pipeline)))

	// Health check endpoint
	mux.HandleFunc("/health", observability.HealthCheckHandler())

	// Readiness: the only local dependency is the scratch directory.
	// Backend reachability is deliberately not probed to avoid spending
	// API calls on health checks.
	storageCheck := func(ctx context.Context) (bool, error) {
		path, err := store.Save([]byte("probe"), ".probe")
		if err != nil {
			return false, err
		}
		store.Remove(path)
		return true, nil
	}
	mux.HandleFunc("/ready", observability.ReadinessHandler(map[string]observability.HealthCheckFunc{
		"temp_storage": storageCheck,
	}))

	// Metrics endpoint (Prometheus)
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Msg("Prometheus metrics enabled at /metrics")
	}

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("endpoint", fmt.Sprintf("http://localhost:%s/v0/interpret", cfg.Port)).
			Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	stopSweeper()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
