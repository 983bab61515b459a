package tracing

import (
	"context"
	"testing"
)

func TestInitTracer_Disabled(t *testing.T) {
	cfg := DefaultConfig("search")
	cfg.Enabled = false

	shutdown, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitTracer(disabled) returned error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("shutdown function should not be nil even when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown(disabled) returned error: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("search")

	if cfg.ServiceName != "search" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "search")
	}
	if cfg.Enabled {
		t.Error("tracing should be disabled by default")
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v, want 1.0", cfg.SampleRate)
	}
}

func TestTracer_NonNil(t *testing.T) {
	if Tracer("search") == nil {
		t.Fatal("Tracer should never return nil")
	}
}
