package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/portfolio/internal/adapters/http"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/handlers"
	"github.com/jsamuelsen/portfolio/internal/adapters/http/views"
	"github.com/jsamuelsen/portfolio/internal/adapters/ratelimit"
	"github.com/jsamuelsen/portfolio/internal/adapters/store"
	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/content"
	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/platform/config"
	"github.com/jsamuelsen/portfolio/internal/platform/metrics"
	"github.com/jsamuelsen/portfolio/internal/platform/telemetry"
	"github.com/jsamuelsen/portfolio/internal/ports"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			return serve(cmd.Context(), cfg, newLogger(cfg))
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting portfolio",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 1. Telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, telemetry.FromConfig(cfg))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 2. Content (fail fast)
	doc, err := content.Load(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	// 3. Metrics and health
	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	healthRegistry := ports.NewHealthRegistry()

	if err := healthRegistry.Register(ports.CheckerFunc("content", func(context.Context) error {
		return content.Validate(doc)
	})); err != nil {
		return fmt.Errorf("registering content health check: %w", err)
	}

	// 4. Submission recorders. The store, when enabled, records first so a
	// failed write is not logged as received.
	recorders := []ports.SubmissionRecorder{}

	if cfg.Contact.Store.Enabled {
		db, err := store.OpenSQLite(ctx, cfg.Contact.Store.Path)
		if err != nil {
			return fmt.Errorf("opening contact store: %w", err)
		}

		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				logger.Error("contact store close error", slog.Any("error", closeErr))
			}
		}()

		if err := healthRegistry.Register(db); err != nil {
			return fmt.Errorf("registering contact store health check: %w", err)
		}

		recorders = append(recorders, db)
	}

	recorders = append(recorders, store.NewLogRecorder(logger))

	// 5. Sessions and services
	sessions := app.NewSessionStore(app.SessionStoreConfig{
		IdleTTL:         cfg.Session.IdleTTL,
		CleanupInterval: cfg.Session.CleanupInterval,
		InitialSection:  domain.SectionID(cfg.Scroll.InitialSection),
		ProbeFraction:   cfg.Scroll.ProbeFraction,
		Metrics:         collector,
		Logger:          logger,
	})
	sessions.Start()

	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Closes remaining sessions and their contact timers.
		if stopErr := sessions.Stop(stopCtx); stopErr != nil {
			logger.Error("session store stop error", slog.Any("error", stopErr))
			return
		}

		logger.Info("sessions stopped")
	}()

	limiter := ratelimit.New(ratelimit.Config{
		PerMinute:       cfg.Contact.RateLimit.PerMinute,
		Burst:           cfg.Contact.RateLimit.Burst,
		CleanupInterval: cfg.Contact.RateLimit.CleanupInterval,
	})
	defer limiter.Stop()

	pages := app.NewPageService(app.PageServiceConfig{
		Document: doc,
		Metrics:  collector,
		Logger:   logger,
	})

	contact := app.NewContactService(app.ContactServiceConfig{
		Recorders:       recorders,
		Limiter:         limiter,
		Metrics:         collector,
		Executor:        app.NewExecutor(logger, telemetry.Tracer()),
		SubmittedWindow: cfg.Contact.SubmittedWindow,
		Logger:          logger,
	})

	// 6. Handlers
	renderer, err := views.New()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	scrollHandler := handlers.NewScrollHandler(handlers.ScrollHandlerConfig{
		Scroll:          app.NewScrollService(collector),
		FrameInterval:   cfg.Scroll.FrameInterval,
		MaxMessageBytes: cfg.Scroll.MaxMessageBytes,
		WriteTimeout:    cfg.Server.WriteTimeout,
	})

	// 7. HTTP server and router
	server := http.New(&cfg.Server, logger)
	server.OnShutdown(scrollHandler.Close)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:   logger,
		Config:   cfg,
		Renderer: renderer,
		Sessions: sessions,
		HealthHandler: handlers.NewHealthHandler(
			healthRegistry,
			handlers.NewBuildInfo(Version, Commit, BuildTime),
			prometheus.DefaultGatherer,
		),
		PageHandler: handlers.NewPageHandler(handlers.PageHandlerConfig{
			Pages:         pages,
			SecureCookies: cfg.Session.Secure,
		}),
		ContactHandler: handlers.NewContactHandler(handlers.ContactHandlerConfig{
			Contact: contact,
			Pages:   pages,
		}),
		ScrollHandler: scrollHandler,
	})

	// 8. Start server (non-blocking) and wait for a signal
	serverErr := server.Start()

	if err := waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}

// waitForShutdown blocks until a shutdown signal is received, ctx ends, or
// the server fails. It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))

	case <-ctx.Done():
		logger.Info("context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight, close streams
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
