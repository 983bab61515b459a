package config

import (
	"fmt"

	pkgconfig "github.com/foxestech/foxes-search/pkg/config"
)

// Config holds all configuration for the site-search service and publisher.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SEARCH_HTTP_PORT" envDefault:"8010"`

	// Search backend. When SearchURL or SearchAPIKey is empty the service
	// runs in the "not configured" state: it starts and serves, but every
	// search endpoint reports setup instructions instead of querying.
	SearchURL      string   `env:"SEARCH_URL"`
	SearchAPIKey   string   `env:"SEARCH_API_KEY"`
	SearchIndex    string   `env:"SEARCH_INDEX" envDefault:"foxes_technology"`
	AdminAPIKey    string   `env:"SEARCH_ADMIN_API_KEY"`
	SearchEngine   string   `env:"SEARCH_ENGINE" envDefault:"elasticsearch"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Kafka content-event ingestion (off by default; the baseline deployment
	// refreshes the index only through the publisher).
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`

	// Tracing
	TracingEnabled bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load search config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SearchEngine != "elasticsearch" && c.SearchEngine != "memory" {
		return fmt.Errorf("invalid search engine %q: must be elasticsearch or memory", c.SearchEngine)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("invalid OTEL sample rate: %v", c.OTELSampleRate)
	}
	return nil
}

// SearchConfigured reports whether query-side credentials are present.
// Missing credentials are not an error; they put the service in the
// recognized disabled state.
func (c *Config) SearchConfigured() bool {
	if c.SearchEngine == "memory" {
		return true
	}
	return c.SearchURL != "" && c.SearchAPIKey != ""
}

// PublisherConfigured reports whether the admin-side credentials required by
// the index publisher are present.
func (c *Config) PublisherConfigured() bool {
	return c.SearchURL != "" && c.AdminAPIKey != ""
}

// SetupInstructions describes how to enable search. Surfaced verbatim to
// operators through the disabled-state API response and publisher output.
func SetupInstructions() string {
	return "search is not configured: set SEARCH_URL and SEARCH_API_KEY " +
		"(and SEARCH_ADMIN_API_KEY for publishing) in the environment or a .env file, " +
		"then restart the service"
}
