package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error, including a failed run.
	ExitErrorTimeout  = 2   // Indicates the run timed out.
	ExitErrorItems    = 3   // Indicates that one or more work items failed.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. The application cannot proceed with it.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ItemError reports the failure of a single work item.
type ItemError struct {
	// Index is the work index that failed.
	Index int
	// Cause is the error returned by the workload.
	Cause error
}

// Error returns a message naming the failed index.
func (e ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Cause)
}

// Unwrap returns the underlying cause.
func (e ItemError) Unwrap() error { return e.Cause }

// RunError reports a dispatch that failed as a whole, for example because a
// worker panicked.
type RunError struct {
	// RunID identifies the failed run.
	RunID string
	// Cause is the error returned by the dispatcher.
	Cause error
}

// Error returns a message naming the failed run.
func (e RunError) Error() string {
	if e.RunID == "" {
		return fmt.Sprintf("run failed: %v", e.Cause)
	}
	return fmt.Sprintf("run %s failed: %v", e.RunID, e.Cause)
}

// Unwrap returns the underlying cause.
func (e RunError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code that reports it.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	var itemErr ItemError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.As(err, &itemErr):
		return ExitErrorItems
	default:
		return ExitErrorGeneric
	}
}
