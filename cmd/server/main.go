package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/scriba/schema-api/internal/browser"
	"github.com/scriba/schema-api/internal/config"
	"github.com/scriba/schema-api/internal/database"
	"github.com/scriba/schema-api/internal/handler"
	"github.com/scriba/schema-api/internal/jobs"
	"github.com/scriba/schema-api/internal/middleware"
	"github.com/scriba/schema-api/internal/repository"
	"github.com/scriba/schema-api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present (local development; the container sets real env vars)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize DynamoDB connection
	db := database.NewDynamo(database.Config{
		Region:   cfg.AWS.Region,
		Endpoint: cfg.AWS.Endpoint,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to DynamoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to DynamoDB",
		slog.String("region", cfg.AWS.Region),
		slog.String("table", cfg.AWS.Table),
	)

	// Initialize repository and make sure the table exists. Table creation is
	// best-effort: a missing IAM permission here should not keep the checker
	// endpoint from serving, so log and continue.
	transcriptionRepo := repository.NewTranscriptionRepository(db.Client(), cfg.AWS.Table)
	{
		ensureCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		if err := transcriptionRepo.EnsureTable(ensureCtx); err != nil {
			slog.Error("failed to ensure DynamoDB table",
				slog.String("table", cfg.AWS.Table),
				slog.String("error", err.Error()),
			)
		}
		cancel()
	}

	// Initialize browser pool for portal checks
	browserClient := browser.NewClient(cfg.Checker)
	defer browserClient.Close()

	// Initialize services
	checkerService, err := service.NewCheckerService(service.CheckerServiceConfig{
		Driver:    browserClient,
		CacheSize: cfg.Checker.CacheSize,
		Timeout:   cfg.Checker.Timeout,
	})
	if err != nil {
		slog.Error("failed to initialize checker service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	transcriptionService := service.NewTranscriptionService(service.TranscriptionServiceConfig{
		Store: transcriptionRepo,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Recycle browsers that have sat idle too long
	janitor := jobs.NewBrowserJanitor(browserClient.Pool(), cfg.Checker.BrowserMaxIdle, 0)
	janitor.Start()
	defer janitor.Stop()

	// Initialize handlers
	checkerHandler := handler.NewCheckerHandler(checkerService)
	transcriptionHandler := handler.NewTranscriptionHandler(transcriptionService)

	// Create router and register routes
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("POST /check_status", checkerHandler.CheckStatus)
	mux.HandleFunc("POST /save/transcribe", transcriptionHandler.Save)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
