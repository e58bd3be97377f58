package services_test

import (
	"errors"
	"strings"
	"testing"

	"persona/internal/services"
)

func TestWrapTagsWithMarker(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "prompt", "parse response", "missing positive line", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "prompt: parse response: missing positive line") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := services.Wrap(services.ErrTransient, "image", "render", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient default, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	if services.IsRetryable(services.Wrap(services.ErrConfiguration, "prompt", "", "api key missing", nil)) {
		t.Fatal("configuration errors should not be retryable")
	}
	if !services.IsRetryable(services.Wrap(services.ErrTimeout, "image", "render", "", nil)) {
		t.Fatal("timeouts should be retryable")
	}
}
