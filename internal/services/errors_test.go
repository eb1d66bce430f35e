package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"wemtool/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransient, "rename", "copy", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"rename", "copy", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker by default, got %v", err)
	}
	if !strings.Contains(err.Error(), "operation failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "validation", err: services.Wrap(services.ErrValidation, "mapping", "inspect", "bad dir", nil), want: services.ExitValidation},
		{name: "configuration", err: services.Wrap(services.ErrConfiguration, "config", "load", "bad", nil), want: services.ExitValidation},
		{name: "not found", err: fmt.Errorf("outer: %w", services.Wrap(services.ErrNotFound, "rename", "load", "missing", nil)), want: services.ExitNotFound},
		{name: "transient", err: services.Wrap(services.ErrTransient, "rename", "copy", "io", errors.New("disk full")), want: services.ExitFailure},
		{name: "plain", err: errors.New("other"), want: services.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
