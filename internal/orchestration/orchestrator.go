package orchestration

import (
	"context"
	"sync/atomic"
	"time"

	apperrors "github.com/agbru/forkjoin/internal/errors"
	"github.com/agbru/forkjoin/internal/metrics"
	"github.com/agbru/forkjoin/internal/parallel"
	"github.com/agbru/forkjoin/internal/workload"
)

// runState is the data shared by every worker and the coordinator of a run.
// Workers only read the immutable fields and update the counters atomically.
type runState struct {
	ctx       context.Context
	workload  workload.Workload
	reporter  ProgressReporter
	abort     bool
	refresh   time.Duration
	processed atomic.Int64
	failed    atomic.Int64
	errs      parallel.ErrorCollector
}

// ExecuteRun processes plan.Items items of plan.Workload on d.
//
// Workers stop claiming new items once ctx is done; items already handed to
// the workload run to completion. A nil reporter is replaced by
// NullProgressReporter.
func ExecuteRun(ctx context.Context, d *parallel.Dispatcher, plan Plan, reporter ProgressReporter) Result {
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	refresh := plan.RefreshInterval
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	state := &runState{
		ctx:      ctx,
		workload: plan.Workload,
		reporter: reporter,
		abort:    plan.Abort,
		refresh:  refresh,
	}

	job := parallel.Job{
		Workers: plan.Workers,
		Items:   plan.Items,
		Data:    state,
		Work:    processItems,
	}
	if plan.Workload == nil {
		job.Work = nil
	}
	if plan.Coordinated || plan.Abort {
		job.Coordinator = coordinate
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	stats, err := d.Run(ctx, job)

	res := Result{
		Stats:        stats,
		Processed:    state.processed.Load(),
		Failed:       state.failed.Load(),
		FirstItemErr: state.errs.Err(),
		Memory:       mem.Snapshot().Delta(before),
	}
	if items := int64(max(plan.Items, 0)); items > 0 {
		res.Skipped = items - res.Processed - res.Failed
	}
	if err == nil && res.Skipped > 0 && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		res.Err = apperrors.RunError{RunID: stats.RunID, Cause: err}
	}
	return res
}

// processItems is the worker body: claim, process, count, until exhausted.
func processItems(w *parallel.Worker) {
	s := w.Data.(*runState)
	for s.ctx.Err() == nil {
		idx := w.ClaimWork()
		if idx == parallel.Exhausted {
			return
		}
		if err := s.workload.Process(idx); err != nil {
			s.failed.Add(1)
			s.errs.SetError(apperrors.ItemError{Index: idx, Cause: err})
			continue
		}
		s.processed.Add(1)
	}
}

// coordinate gates the start of the workers and publishes progress until the
// dispatcher signals the end of the run.
func coordinate(w *parallel.Worker) {
	s := w.Data.(*runState)
	pool := w.Pool
	total := pool.Total()

	s.reporter.Begin(total)
	defer s.reporter.End()

	if s.abort {
		pool.Stop()
		<-pool.Finished()
		return
	}
	pool.Start()

	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-pool.Finished():
			s.reporter.Update(pool.Claimed(), total)
			return
		case <-ticker.C:
			s.reporter.Update(pool.Claimed(), total)
		}
	}
}
