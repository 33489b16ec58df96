// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; empty until DB is wired.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// AlertThreshold is the reading value at or above which the pipeline
	// broadcasts a HIGH alert (default 32).
	AlertThreshold float64 `mapstructure:"ALERT_THRESHOLD"`
	// CORSOrigin is the single allowed browser origin for HTTP and websocket
	// requests (default http://localhost:5173, the dev dashboard).
	CORSOrigin string `mapstructure:"CORS_ORIGIN"`
	// CookiePrefix prefixes the session cookie name (default "capstone").
	CookiePrefix string `mapstructure:"COOKIE_PREFIX"`
	// SessionTTL is the session lifetime (e.g. "720h").
	SessionTTL string `mapstructure:"SESSION_TTL"`
	// StripeSecretKey is the Stripe API secret key. Empty disables the
	// checkout endpoint.
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	// StripeSuccessURL is the checkout success redirect URL.
	StripeSuccessURL string `mapstructure:"STRIPE_SUCCESS_URL"`
	// StripeCancelURL is the checkout cancel redirect URL.
	StripeCancelURL string `mapstructure:"STRIPE_CANCEL_URL"`
	// OTLPEndpoint is the OTLP gRPC collector endpoint (e.g. localhost:4317).
	// Empty disables exporting; providers are no-ops.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP even for https endpoints
	// (standard OTEL_EXPORTER_OTLP_INSECURE behavior).
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// Telemetry mirror (optional). When Kafka brokers are set, every
	// broadcast pipeline event is also emitted to Kafka.
	// KafkaBrokers is a comma-separated list of broker addresses (e.g. "localhost:9092").
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// KafkaTopic is the Kafka topic for mirrored telemetry events (default capstone-telemetry).
	KafkaTopic string `mapstructure:"TELEMETRY_KAFKA_TOPIC"`

	// Worker-only: Loki URL for the telemetry worker to push events (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the telemetry worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ALERT_THRESHOLD", 32.0)
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("COOKIE_PREFIX", "capstone")
	v.SetDefault("SESSION_TTL", "720h") // 30d
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_SUCCESS_URL", "http://localhost:8080/stripe/success")
	v.SetDefault("STRIPE_CANCEL_URL", "http://localhost:8080/stripe/cancel")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("TELEMETRY_KAFKA_TOPIC", "capstone-telemetry")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "capstone-telemetry-worker")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.CookiePrefix == "" {
		return nil, errors.New("config: COOKIE_PREFIX must be set")
	}
	if cfg.AlertThreshold < 0 {
		return nil, errors.New("config: ALERT_THRESHOLD must not be negative")
	}

	return &cfg, nil
}

// SessionLifetime parses SessionTTL as a time.Duration. Returns 720h if unset or invalid.
func (c *Config) SessionLifetime() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 720 * time.Hour
	}
	return d
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if the telemetry mirror is enabled (non-empty list) and to create the producer.
func (c *Config) KafkaBrokersList() []string {
	if c == nil || c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
