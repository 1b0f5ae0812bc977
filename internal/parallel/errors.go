package parallel

import (
	"fmt"
	"sync"
)

// ErrorCollector records the first non-nil error reported by any goroutine.
// The zero value is ready to use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is the first non-nil error seen. Nil errors are
// ignored and do not consume the slot.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

// Err returns the first recorded error, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// PanicError reports a worker or coordinator that panicked during a run.
type PanicError struct {
	// Index is the slot of the goroutine that panicked.
	Index int
	// Coordinator is true when the coordinator panicked.
	Coordinator bool
	// Value is the value passed to panic.
	Value any
	// Stack is the goroutine stack captured at recovery.
	Stack []byte
}

func (e *PanicError) Error() string {
	role := "worker"
	if e.Coordinator {
		role = "coordinator"
	}
	return fmt.Sprintf("%s %d panicked: %v", role, e.Index, e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
