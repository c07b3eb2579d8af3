package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lofimix/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrStageExecution, "tempo", "ffmpeg", "exit status 1", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrStageExecution) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"tempo", "ffmpeg", "exit status 1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "pitch", "plan", "", nil)
	if !errors.Is(err, services.ErrStageExecution) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestIsTerminalBeforeWork(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", services.Wrap(services.ErrValidation, "plan", "tempo", "out of range", nil), true},
		{"missing source", services.Wrap(services.ErrMissingSource, "plan", "stat", "input.mp3", nil), true},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "bad value", nil), true},
		{"stage execution", services.Wrap(services.ErrStageExecution, "equalize", "ffmpeg", "failed", nil), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		if got := services.IsTerminalBeforeWork(tc.err); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContextRoundTrips(t *testing.T) {
	ctx := context.Background()

	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage on fresh context")
	}

	ctx = services.WithStage(ctx, "mix-rain")
	ctx = services.WithSource(ctx, "/music/track.mp3")
	ctx = services.WithRunID(ctx, "abc123")

	if stage, ok := services.StageFromContext(ctx); !ok || stage != "mix-rain" {
		t.Fatalf("stage round trip failed: %q %v", stage, ok)
	}
	if source, ok := services.SourceFromContext(ctx); !ok || source != "/music/track.mp3" {
		t.Fatalf("source round trip failed: %q %v", source, ok)
	}
	if id, ok := services.RunIDFromContext(ctx); !ok || id != "abc123" {
		t.Fatalf("run id round trip failed: %q %v", id, ok)
	}
}
