package parallel

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/forkjoin/internal/logging"
)

const tracerName = "github.com/agbru/forkjoin/internal/parallel"

// WorkerFunc is run once by every regular worker. It is expected to call
// ClaimWork until Exhausted, process one item per claimed index, and return.
type WorkerFunc func(w *Worker)

// CoordinatorFunc is run once by the coordinator before any regular worker
// starts. It must raise Pool.Start (or Pool.Stop), and return once
// Pool.Finished is closed.
type CoordinatorFunc func(w *Worker)

// Job describes a single run.
type Job struct {
	// Workers is the requested number of regular workers.
	Workers int
	// Items is the number of work indices to distribute.
	Items int
	// Data is shared, unchanged, with every worker and the coordinator.
	Data any
	// Work is the regular worker body. Required.
	Work WorkerFunc
	// Coordinator is the optional coordinator body.
	Coordinator CoordinatorFunc
}

// RunStats summarizes a finished run.
type RunStats struct {
	// RunID identifies the run in logs, traces and metrics.
	RunID string
	// Items is the number of work indices of the run.
	Items int
	// Slots is the number of worker records created, coordinator included.
	Slots int
	// Workers is the number of regular workers actually launched.
	Workers int
	// Coordinated is true when the run had a coordinator.
	Coordinated bool
	// Aborted is true when the coordinated run stopped before launching workers.
	Aborted bool
	// Claimed is the number of indices handed out when the run was torn down.
	Claimed int
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Observer is notified at the start and end of every non-degenerate run.
type Observer interface {
	RunStarted(stats RunStats)
	RunFinished(stats RunStats, err error)
}

type nopObserver struct{}

func (nopObserver) RunStarted(RunStats)         {}
func (nopObserver) RunFinished(RunStats, error) {}

// Dispatcher runs jobs. It holds no per-run state and is safe for
// concurrent use; each Run owns its pool and workers.
type Dispatcher struct {
	logger   logging.Logger
	observer Observer
	tracer   trace.Tracer
	now      func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for run lifecycle events.
func WithLogger(l logging.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithObserver sets the observer notified of run start and completion.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

// WithTracer sets the tracer used to create one span per run.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) { d.tracer = t }
}

// NewDispatcher creates a dispatcher. Without options it logs nowhere,
// observes nothing and uses the global OpenTelemetry tracer provider.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:   logging.Nop(),
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer(tracerName)
	}
	return d
}

var defaultDispatcher = NewDispatcher()

// RunParallel runs workerFn on min(workerCount, workItemCount) workers,
// optionally coordinated by coordinatorFn, and returns the elapsed time.
// Non-positive counts or a nil workerFn make the call a no-op returning 0.
func RunParallel(ctx context.Context, workerCount, workItemCount int, data any, workerFn WorkerFunc, coordinatorFn CoordinatorFunc) (time.Duration, error) {
	return defaultDispatcher.RunParallel(ctx, workerCount, workItemCount, data, workerFn, coordinatorFn)
}

// RunParallel is the positional form of Run.
func (d *Dispatcher) RunParallel(ctx context.Context, workerCount, workItemCount int, data any, workerFn WorkerFunc, coordinatorFn CoordinatorFunc) (time.Duration, error) {
	stats, err := d.Run(ctx, Job{
		Workers:     workerCount,
		Items:       workItemCount,
		Data:        data,
		Work:        workerFn,
		Coordinator: coordinatorFn,
	})
	return stats.Elapsed, err
}

// Run executes a job and blocks until every launched goroutine has returned.
//
// A panic in any worker or in the coordinator is recovered and returned as a
// *PanicError once the run has been fully torn down. A context cancelled
// while waiting for the coordinator's start signal aborts the run; the
// context is not consulted once workers are running.
func (d *Dispatcher) Run(ctx context.Context, job Job) (RunStats, error) {
	if job.Workers <= 0 || job.Items <= 0 || job.Work == nil {
		d.logger.Debug("degenerate run skipped",
			logging.Int("workers", job.Workers),
			logging.Int("items", job.Items),
			logging.Bool("has_work", job.Work != nil))
		return RunStats{}, nil
	}

	start := d.now()
	Init()

	pool := NewPool(job.Items)
	regular := min(job.Workers, job.Items)
	coordinated := job.Coordinator != nil
	slots := regular
	if coordinated {
		slots++
	}
	pool.workers = make([]*Worker, slots)
	for i := range pool.workers {
		pool.workers[i] = &Worker{
			Index:       i,
			Pool:        pool,
			Data:        job.Data,
			coordinator: coordinated && i == 0,
		}
	}

	stats := RunStats{
		RunID:       uuid.NewString(),
		Items:       job.Items,
		Slots:       slots,
		Coordinated: coordinated,
	}

	ctx, span := d.tracer.Start(ctx, "parallel.Run", trace.WithAttributes(
		attribute.String("forkjoin.run_id", stats.RunID),
		attribute.Int("forkjoin.items", job.Items),
		attribute.Int("forkjoin.slots", slots),
		attribute.Bool("forkjoin.coordinated", coordinated),
	))
	defer span.End()

	d.observer.RunStarted(stats)
	d.logger.Debug("run started",
		logging.String("run_id", stats.RunID),
		logging.Int("items", job.Items),
		logging.Int("slots", slots),
		logging.Int("cores", NumCores()),
		logging.Bool("coordinated", coordinated))

	var err error
	if coordinated {
		err = d.runCoordinated(ctx, span, pool, job, &stats)
	} else {
		stats.Workers = regular
		err = launch(pool.workers, job.Work)
	}

	stats.Claimed = pool.Claimed()
	pool.workers = nil
	stats.Elapsed = d.now().Sub(start)

	span.SetAttributes(
		attribute.Int("forkjoin.workers", stats.Workers),
		attribute.Int("forkjoin.claimed", stats.Claimed),
		attribute.Bool("forkjoin.aborted", stats.Aborted),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	d.observer.RunFinished(stats, err)
	d.logFinished(stats, err)

	return stats, err
}

// runCoordinated starts the coordinator, waits for its start or stop signal,
// then launches and joins the regular workers before signaling finished.
func (d *Dispatcher) runCoordinated(ctx context.Context, span trace.Span, pool *Pool, job Job, stats *RunStats) error {
	coordDone := make(chan struct{})
	var coordErr error
	go func() {
		defer close(coordDone)
		coordErr = protect(pool.workers[0], job.Coordinator)
	}()

	var ctxErr error
	select {
	case <-pool.started.done():
	case <-pool.stop.done():
	case <-coordDone:
	case <-ctx.Done():
		ctxErr = ctx.Err()
		pool.Stop()
	}

	var workErr error
	if pool.Started() && !pool.Stopped() {
		stats.Workers = len(pool.workers) - 1
		span.AddEvent("workers launched", trace.WithAttributes(attribute.Int("forkjoin.workers", stats.Workers)))
		workErr = launch(pool.workers[1:], job.Work)
	} else {
		stats.Aborted = true
		span.AddEvent("run aborted before launch")
	}

	pool.finish()
	<-coordDone

	return errors.Join(ctxErr, workErr, coordErr)
}

func (d *Dispatcher) logFinished(stats RunStats, err error) {
	fields := []logging.Field{
		logging.String("run_id", stats.RunID),
		logging.Int("workers", stats.Workers),
		logging.Int("items", stats.Items),
		logging.Int("claimed", stats.Claimed),
		logging.Float64("elapsed_seconds", stats.Elapsed.Seconds()),
	}
	switch {
	case err != nil:
		d.logger.Error("run failed", err, fields...)
	case stats.Aborted:
		d.logger.Info("run aborted before workers launched", fields...)
	default:
		d.logger.Debug("run finished", fields...)
	}
}

// launch starts one goroutine per worker record and joins them all.
func launch(workers []*Worker, fn WorkerFunc) error {
	var g errgroup.Group
	for _, w := range workers {
		g.Go(func() error { return protect(w, fn) })
	}
	return g.Wait()
}

// protect runs fn for w, converting a panic into a *PanicError.
func protect(w *Worker, fn func(*Worker)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{
				Index:       w.Index,
				Coordinator: w.coordinator,
				Value:       r,
				Stack:       debug.Stack(),
			}
		}
	}()
	fn(w)
	return nil
}
