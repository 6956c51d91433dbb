package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crmkit/internal/config"
	"crmkit/internal/errors"
	"crmkit/internal/infrastructure"
	"crmkit/internal/llm"
	"crmkit/internal/middleware"
	"crmkit/internal/services"
	handlers "crmkit/internal/transport/http"
)

// Version is the application version, overridable at build time
var Version = "dev"

// Application is the main application container
type Application struct {
	Config  *config.Config
	Router  *chi.Mux
	Server  *http.Server
	Logger  *slog.Logger
	Quality *services.QualityService
	Assist  *services.AssistService
	Metrics *infrastructure.Metrics
}

// NewApplication creates a fully wired application instance
func NewApplication(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.InfoContext(ctx, "application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port),
	)

	narrator := buildNarrator(ctx, cfg, logger)
	metrics := infrastructure.NewMetrics(prometheus.DefaultRegisterer)

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Quality: services.NewQualityService(cfg, narrator, metrics, logger),
		Assist:  services.NewAssistService(cfg, narrator, logger),
	}

	app.Router = app.setupRouter()
	app.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// buildNarrator creates the LLM client, or a disabled stand-in when no
// API key is configured. A missing key is not fatal; quality analysis
// works without narration and the assist endpoints report unavailability.
func buildNarrator(ctx context.Context, cfg *config.Config, logger *slog.Logger) llm.Client {
	if cfg.LLM.APIKey == "" {
		logger.WarnContext(ctx, "no LLM API key configured, narration and assist drafts disabled")
		return llm.Disabled()
	}

	client, err := llm.NewGeminiClient(ctx, cfg.LLM, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create LLM client, continuing without it",
			slog.String("error", err.Error()))
		return llm.Disabled()
	}

	return client
}

// setupRouter builds the middleware chain and mounts all routes
func (a *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(middleware.SecurityHeaders)

	if a.Config.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger)

	qualityHandler := handlers.NewQualityHandler(
		a.Quality, a.Config.Analysis.MaxUploadBytes, a.Logger, errorHandler)
	assistHandler := handlers.NewAssistHandler(a.Assist, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(Version)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/quality", qualityHandler.Routes())
		r.Mount("/assist", assistHandler.Routes())
	})

	r.Get("/healthz", healthHandler.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errorHandler.HandleError(w, req, errors.ErrNotFound)
	})

	return r
}

// Start begins serving HTTP. It returns once the listener fails or the
// server is shut down.
func (a *Application) Start(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "server listening", slog.String("addr", a.Server.Addr))

	if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "error closing log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- a.Start(ctx)
	}()

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	}

	return a.Stop(ctx)
}
