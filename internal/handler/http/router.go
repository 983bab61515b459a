package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foxestech/foxes-search/pkg/health"
	"github.com/foxestech/foxes-search/pkg/middleware"
)

// RouterConfig carries the dependencies the router wires together.
type RouterConfig struct {
	Handler        *SearchHandler
	Health         *health.Handler
	AllowedOrigins []string
	ServiceName    string
}

// NewRouter builds the HTTP router with the full middleware chain and all
// API, health, and metrics routes.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.AllowedOrigins
	}

	log := cfg.Handler.logger

	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(corsCfg))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(contentTypeJSON)

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/search", func(r chi.Router) {
		r.Get("/", cfg.Handler.Search)
		r.Get("/suggest", cfg.Handler.Suggest)
		r.Get("/popular", cfg.Handler.Popular)
		r.Get("/categories", cfg.Handler.Categories)
		r.Get("/records/{objectID}", cfg.Handler.GetRecord)
		r.Post("/reindex", cfg.Handler.Reindex)
	})

	return r
}

// contentTypeJSON sets the JSON content type on API responses before the
// handlers write. The metrics endpoint overrides it.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/metrics" {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}
