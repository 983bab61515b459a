package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/foxestech/foxes-search/internal/catalog"
	"github.com/foxestech/foxes-search/internal/config"
	"github.com/foxestech/foxes-search/internal/domain"
	"github.com/foxestech/foxes-search/internal/engine"
	"github.com/foxestech/foxes-search/internal/engine/elasticsearch"
	"github.com/foxestech/foxes-search/internal/engine/memory"
	"github.com/foxestech/foxes-search/internal/event"
	handlerhttp "github.com/foxestech/foxes-search/internal/handler/http"
	"github.com/foxestech/foxes-search/internal/service"
	"github.com/foxestech/foxes-search/pkg/health"
	"github.com/foxestech/foxes-search/pkg/kafka"
	"github.com/foxestech/foxes-search/pkg/tracing"
)

// App wires together the site-search service: engine, service layer, HTTP
// surface, and the optional content-event consumers.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	server          *http.Server
	consumer        *event.ContentConsumer
	notifier        *event.Notifier
	shutdownTracing func(context.Context) error
}

// New builds the application from configuration. Missing search credentials
// are not fatal: the service starts in the disabled state and every search
// endpoint reports setup instructions.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	shutdownTracing, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  "site-search",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.shutdownTracing = shutdownTracing

	settings := domain.DefaultSettings(cfg.SearchIndex)
	configured := cfg.SearchConfigured()

	eng, err := buildEngine(cfg, settings, logger)
	if err != nil {
		return nil, err
	}

	svc := service.NewSearchService(eng, logger)

	healthHandler := health.NewHandler()
	if configured {
		healthHandler.Register("search-engine", engineChecker(eng))
	} else {
		logger.Warn("search backend not configured, serving setup instructions",
			"instructions", config.SetupInstructions())
	}

	var notifier handlerhttp.ReindexNotifier
	if cfg.KafkaEnabled {
		a.consumer = event.NewContentConsumer(cfg.KafkaBrokers, svc, logger)
		a.notifier = event.NewNotifier(cfg.KafkaBrokers, settings.IndexName, logger)
		notifier = a.notifier
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return kafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	handler := handlerhttp.NewSearchHandler(svc, configured, notifier, logger)

	router := handlerhttp.NewRouter(handlerhttp.RouterConfig{
		Handler:        handler,
		Health:         healthHandler,
		AllowedOrigins: cfg.AllowedOrigins,
		ServiceName:    "site-search",
	})

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// buildEngine selects the configured engine. The memory engine is seeded
// from the compiled-in catalog so development environments search real
// content without a backend.
func buildEngine(cfg *config.Config, settings domain.Settings, logger *slog.Logger) (engine.SearchEngine, error) {
	switch {
	case cfg.SearchEngine == "memory":
		eng := memory.New(settings)
		if err := eng.BulkIndex(context.Background(), catalog.Records()); err != nil {
			return nil, fmt.Errorf("seed memory engine: %w", err)
		}
		logger.Info("using in-memory search engine", "records", len(catalog.Records()))
		return eng, nil

	case !cfg.SearchConfigured():
		// Disabled state. The handler never reaches the engine, but the
		// wiring stays uniform; an empty memory engine stands in.
		return memory.New(settings), nil

	default:
		eng, err := elasticsearch.New(elasticsearch.Config{
			URL:    cfg.SearchURL,
			APIKey: cfg.SearchAPIKey,
		}, settings, logger)
		if err != nil {
			return nil, fmt.Errorf("build elasticsearch engine: %w", err)
		}
		logger.Info("using elasticsearch engine", "index", settings.IndexName)
		return eng, nil
	}
}

// engineChecker adapts the engine's Ping (when it has one) into a health
// checker. The memory engine is always healthy.
func engineChecker(eng engine.SearchEngine) health.Checker {
	type pinger interface {
		Ping(ctx context.Context) error
	}
	return func(ctx context.Context) error {
		if p, ok := eng.(pinger); ok {
			return p.Ping(ctx)
		}
		return nil
	}
}

// Run starts the HTTP server and, when enabled, the content-event
// consumers. It blocks until the server stops.
func (a *App) Run(ctx context.Context) error {
	if a.consumer != nil {
		go func() {
			if err := a.consumer.Start(ctx); err != nil {
				a.logger.Error("content consumer stopped", "error", err)
			}
		}()
	}

	a.logger.Info("http server starting", "addr", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, the consumers, and the tracer
// provider.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	var firstErr error
	if err := a.server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("http shutdown: %w", err)
	}

	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("consumer close: %w", err)
		}
	}

	if a.notifier != nil {
		if err := a.notifier.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("notifier close: %w", err)
		}
	}

	if err := a.shutdownTracing(ctx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("tracing shutdown: %w", err)
	}

	return firstErr
}
