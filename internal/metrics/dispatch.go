package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/forkjoin/internal/parallel"
)

// Namespace prefixes every series exported by this package.
const Namespace = "forkjoin"

// Run outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeAborted = "aborted"
	OutcomeFailed  = "failed"
)

// DispatchMetrics records dispatcher runs as Prometheus series.
// It implements parallel.Observer.
type DispatchMetrics struct {
	runs            *prometheus.CounterVec
	workersLaunched prometheus.Counter
	itemsClaimed    prometheus.Counter
	activeRuns      prometheus.Gauge
	runDuration     prometheus.Histogram
}

var _ parallel.Observer = (*DispatchMetrics)(nil)

// NewDispatchMetrics creates the dispatch collectors and registers them
// with reg. A nil reg leaves them unregistered.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	m := &DispatchMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Total number of dispatcher runs by outcome",
		}, []string{"outcome"}),
		workersLaunched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workers_launched_total",
			Help:      "Total number of regular workers launched",
		}),
		itemsClaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "items_claimed_total",
			Help:      "Total number of work indices claimed by workers",
		}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_runs",
			Help:      "Number of runs currently in progress",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of dispatcher runs",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	for _, o := range []string{OutcomeSuccess, OutcomeAborted, OutcomeFailed} {
		m.runs.WithLabelValues(o)
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.workersLaunched, m.itemsClaimed, m.activeRuns, m.runDuration)
	}
	return m
}

// RunStarted implements parallel.Observer.
func (m *DispatchMetrics) RunStarted(parallel.RunStats) {
	m.activeRuns.Inc()
}

// RunFinished implements parallel.Observer.
func (m *DispatchMetrics) RunFinished(stats parallel.RunStats, err error) {
	m.activeRuns.Dec()
	m.runs.WithLabelValues(Outcome(stats, err)).Inc()
	m.workersLaunched.Add(float64(stats.Workers))
	m.itemsClaimed.Add(float64(stats.Claimed))
	m.runDuration.Observe(stats.Elapsed.Seconds())
}

// Outcome classifies a finished run for the outcome label.
func Outcome(stats parallel.RunStats, err error) string {
	switch {
	case err != nil:
		return OutcomeFailed
	case stats.Aborted:
		return OutcomeAborted
	default:
		return OutcomeSuccess
	}
}
