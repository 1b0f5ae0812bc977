package parallel

import "sync/atomic"

// Exhausted is returned by ClaimWork once every index has been handed out.
// It is the normal end-of-work condition, not an error.
const Exhausted = -1

// Pool is the state shared by all workers of a single run: the bounded work
// counter and the started/stop/finished phase signals.
type Pool struct {
	total   int64
	claimed atomic.Int64

	started  *signal
	stop     *signal
	finished *signal

	workers []*Worker
}

// NewPool returns a pool handing out the indices [0, total).
// A non-positive total yields a pool that is exhausted from the start.
func NewPool(total int) *Pool {
	if total < 0 {
		total = 0
	}
	return &Pool{
		total:    int64(total),
		started:  newSignal(),
		stop:     newSignal(),
		finished: newSignal(),
	}
}

// ClaimWork returns the next unclaimed index, or Exhausted when none remain.
// Every call across all goroutines receives a distinct index; the counter
// never moves past the total.
func (p *Pool) ClaimWork() int {
	for {
		c := p.claimed.Load()
		if c >= p.total {
			return Exhausted
		}
		if p.claimed.CompareAndSwap(c, c+1) {
			return int(c)
		}
	}
}

// Total returns the number of work items in the pool.
func (p *Pool) Total() int { return int(p.total) }

// Claimed returns how many indices have been handed out so far.
func (p *Pool) Claimed() int { return int(p.claimed.Load()) }

// Remaining returns how many indices are still unclaimed.
func (p *Pool) Remaining() int { return int(p.total - p.claimed.Load()) }

// Start is raised by the coordinator once its setup is complete; the
// dispatcher then launches the regular workers.
func (p *Pool) Start() { p.started.raise() }

// Stop is raised by the coordinator to abort the run before any regular
// worker is launched. Raising it after launch has no effect on the workers.
func (p *Pool) Stop() { p.stop.raise() }

// Started reports whether Start has been raised.
func (p *Pool) Started() bool { return p.started.raised() }

// Stopped reports whether Stop has been raised.
func (p *Pool) Stopped() bool { return p.stop.raised() }

// IsFinished reports whether the dispatcher has signaled completion.
func (p *Pool) IsFinished() bool { return p.finished.raised() }

// Finished returns a channel closed once all regular workers have been
// joined (or the run was aborted). Coordinators wait on it before returning.
func (p *Pool) Finished() <-chan struct{} { return p.finished.done() }

// Workers returns the worker records of the run, coordinator first.
func (p *Pool) Workers() []*Worker { return p.workers }

func (p *Pool) finish() { p.finished.raise() }

// Worker is the record handed to each worker and to the coordinator.
type Worker struct {
	// Index is the worker's slot: 0 is the coordinator when the run has one.
	Index int
	// Pool is the run's shared pool. It is not owned by the worker.
	Pool *Pool
	// Data is the caller's shared context, passed through unchanged.
	Data any

	coordinator bool
}

// ClaimWork claims the next index from the worker's pool.
func (w *Worker) ClaimWork() int { return w.Pool.ClaimWork() }

// IsCoordinator reports whether this record belongs to the coordinator.
func (w *Worker) IsCoordinator() bool { return w.coordinator }
