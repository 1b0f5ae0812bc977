package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("invalid value %d for flag %s", -2, "-items")
	if err.Error() != "invalid value -2 for flag -items" {
		t.Errorf("unexpected message %q", err.Error())
	}
	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Error("expected error to be ConfigError type")
	}
}

func TestItemError(t *testing.T) {
	t.Parallel()
	cause := errors.New("checksum mismatch")
	err := ItemError{Index: 7, Cause: cause}
	if err.Error() != "item 7: checksum mismatch" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestRunError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  RunError
		want string
	}{
		{"with id", RunError{RunID: "r-1", Cause: errors.New("worker 2 panicked")}, "run r-1 failed: worker 2 panicked"},
		{"without id", RunError{Cause: errors.New("boom")}, "run failed: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
			if tt.err.Unwrap() != tt.err.Cause {
				t.Error("Unwrap should return the cause")
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "ctx") != nil {
		t.Error("WrapError(nil) should be nil")
	}
	base := errors.New("base")
	wrapped := WrapError(base, "starting metrics server on %s", ":9090")
	if wrapped.Error() != "starting metrics server on :9090: base" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("wrapped: %w", context.Canceled), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"timeout", fmt.Errorf("run: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"item", ItemError{Index: 1, Cause: errors.New("x")}, ExitErrorItems},
		{"run", RunError{Cause: errors.New("panic")}, ExitErrorGeneric},
		{"joined timeout wins", errors.Join(RunError{Cause: errors.New("x")}, context.DeadlineExceeded), ExitErrorTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
