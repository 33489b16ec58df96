package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.AlertThreshold != 32 {
		t.Errorf("AlertThreshold = %v, want 32", cfg.AlertThreshold)
	}
	if cfg.CORSOrigin != "http://localhost:5173" {
		t.Errorf("CORSOrigin = %q, want dev dashboard origin", cfg.CORSOrigin)
	}
	if cfg.CookiePrefix != "capstone" {
		t.Errorf("CookiePrefix = %q, want %q", cfg.CookiePrefix, "capstone")
	}
	if cfg.SessionTTL != "720h" {
		t.Errorf("SessionTTL = %q, want %q", cfg.SessionTTL, "720h")
	}
	if cfg.KafkaTopic != "capstone-telemetry" {
		t.Errorf("KafkaTopic = %q, want %q", cfg.KafkaTopic, "capstone-telemetry")
	}
	if cfg.KafkaGroupID != "capstone-telemetry-worker" {
		t.Errorf("KafkaGroupID = %q, want default", cfg.KafkaGroupID)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("ALERT_THRESHOLD", "40.5")
	os.Setenv("COOKIE_PREFIX", "myapp")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.AlertThreshold != 40.5 {
		t.Errorf("AlertThreshold = %v, want 40.5", cfg.AlertThreshold)
	}
	if cfg.CookiePrefix != "myapp" {
		t.Errorf("CookiePrefix = %q, want %q", cfg.CookiePrefix, "myapp")
	}
}

func TestLoad_NegativeThreshold(t *testing.T) {
	os.Clearenv()
	os.Setenv("ALERT_THRESHOLD", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject a negative ALERT_THRESHOLD")
	}
}

func TestSessionLifetime(t *testing.T) {
	tests := []struct {
		name string
		ttl  string
		want time.Duration
	}{
		{"valid", "24h", 24 * time.Hour},
		{"empty falls back", "", 720 * time.Hour},
		{"invalid falls back", "soon", 720 * time.Hour},
		{"non-positive falls back", "-1h", 720 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SessionTTL: tt.ttl}
			if got := cfg.SessionLifetime(); got != tt.want {
				t.Errorf("SessionLifetime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKafkaBrokersList(t *testing.T) {
	cfg := &Config{KafkaBrokers: "localhost:9092, broker2:9092 ,"}
	got := cfg.KafkaBrokersList()
	if len(got) != 2 || got[0] != "localhost:9092" || got[1] != "broker2:9092" {
		t.Errorf("KafkaBrokersList() = %v, want two trimmed brokers", got)
	}

	empty := &Config{}
	if list := empty.KafkaBrokersList(); list != nil {
		t.Errorf("KafkaBrokersList() on empty config = %v, want nil", list)
	}
}
