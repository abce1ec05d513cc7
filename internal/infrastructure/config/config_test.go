package config_test

import (
	"testing"
	"time"

	"github.com/iho/paymentsengine/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("METRICS_ADDR", "")
	t.Setenv("QUEUE_CAPACITY", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.QueueCapacity != 16 {
		t.Fatalf("expected default queue capacity 16, got %d", cfg.QueueCapacity)
	}

	if cfg.MetricsAddr != "" {
		t.Fatalf("expected metrics endpoint disabled by default, got %q", cfg.MetricsAddr)
	}

	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Fatalf("unexpected logging defaults: level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("QUEUE_CAPACITY", "128")
	t.Setenv("METRICS_ADDR", ":9102")
	t.Setenv("METRICS_SHUTDOWN_TIMEOUT", "2s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("expected logging overrides, got level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}

	if cfg.QueueCapacity != 128 {
		t.Fatalf("expected queue capacity override, got %d", cfg.QueueCapacity)
	}

	if cfg.MetricsAddr != ":9102" {
		t.Fatalf("expected metrics address override, got %s", cfg.MetricsAddr)
	}

	if cfg.MetricsShutdownTimeout != 2*time.Second {
		t.Fatalf("expected shutdown timeout override, got %s", cfg.MetricsShutdownTimeout)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("METRICS_SHUTDOWN_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadRejectsEmptyQueue(t *testing.T) {
	t.Setenv("QUEUE_CAPACITY", "0")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for zero queue capacity")
	}
}
