package orchestration

import (
	"time"

	"github.com/agbru/forkjoin/internal/metrics"
	"github.com/agbru/forkjoin/internal/parallel"
	"github.com/agbru/forkjoin/internal/workload"
)

// DefaultRefreshInterval is how often a coordinator publishes progress.
const DefaultRefreshInterval = 200 * time.Millisecond

// Plan describes one run of a workload.
type Plan struct {
	// Workers is the requested number of regular workers.
	Workers int
	// Items is the number of work items.
	Items int
	// Workload processes one item per claimed index.
	Workload workload.Workload
	// Coordinated adds a coordinator that gates the start and reports progress.
	Coordinated bool
	// Abort makes the coordinator stop the run before any worker is launched.
	// It implies Coordinated.
	Abort bool
	// RefreshInterval overrides DefaultRefreshInterval when positive.
	RefreshInterval time.Duration
}

// Result is the outcome of ExecuteRun.
type Result struct {
	// Stats is what the dispatcher reported for the run.
	Stats parallel.RunStats
	// Processed is the number of items the workload completed without error.
	Processed int64
	// Failed is the number of items the workload returned an error for.
	Failed int64
	// Skipped is the number of items never handed to the workload.
	Skipped int64
	// FirstItemErr is the first apperrors.ItemError recorded, if any.
	FirstItemErr error
	// Err is the run-level failure (panic, cancellation), wrapped in an
	// apperrors.RunError.
	Err error
	// Memory is the runtime memory change across the run.
	Memory metrics.MemoryDelta
}

// Error returns the error that decides the run's exit status: the run-level
// failure if any, then the first item failure.
func (r Result) Error() error {
	if r.Err != nil {
		return r.Err
	}
	return r.FirstItemErr
}

// ProgressReporter receives progress of a coordinated run. All methods are
// called from the coordinator goroutine, in the order Begin, Update..., End.
type ProgressReporter interface {
	// Begin is called once before the run's workers are started.
	Begin(total int)
	// Update publishes the number of claimed items so far.
	Update(claimed, total int)
	// End is called once after the run has finished.
	End()
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// Begin does nothing.
func (NullProgressReporter) Begin(int) {}

// Update does nothing.
func (NullProgressReporter) Update(int, int) {}

// End does nothing.
func (NullProgressReporter) End() {}
