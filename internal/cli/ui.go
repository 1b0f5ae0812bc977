package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/forkjoin/internal/format"
	"github.com/agbru/forkjoin/internal/orchestration"
)

const (
	// ProgressRefreshRate is the refresh frequency of the spinner and of
	// the coordinator's progress updates.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so the reporter can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

func newSpinner(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// SpinnerReporter shows a spinner with a progress bar and an ETA while a
// coordinated run is in progress.
type SpinnerReporter struct {
	out        io.Writer
	newSpinner func(io.Writer) Spinner
	now        func() time.Time

	mu      sync.Mutex
	spinner Spinner
	eta     *format.ETAEstimator
	start   time.Time
	claimed int
	total   int
}

var _ orchestration.ProgressReporter = (*SpinnerReporter)(nil)

// NewSpinnerReporter creates a reporter writing to out.
func NewSpinnerReporter(out io.Writer) *SpinnerReporter {
	return &SpinnerReporter{out: out, newSpinner: newSpinner, now: time.Now}
}

// Begin starts the spinner.
func (r *SpinnerReporter) Begin(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start = r.now()
	r.total = total
	r.eta = format.NewETAEstimator(r.start)
	r.spinner = r.newSpinner(r.out)
	r.spinner.UpdateSuffix(" " + progressLine(0, total, 0))
	r.spinner.Start()
}

// Update refreshes the progress bar and the remaining-time estimate.
func (r *SpinnerReporter) Update(claimed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner == nil {
		return
	}
	r.claimed, r.total = claimed, total
	frac := 0.0
	if total > 0 {
		frac = float64(claimed) / float64(total)
	}
	eta := r.eta.Observe(frac, r.now())
	r.spinner.UpdateSuffix(" " + progressLine(claimed, total, eta))
}

// End stops the spinner and prints the final dispatch line.
func (r *SpinnerReporter) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner == nil {
		return
	}
	r.spinner.Stop()
	r.spinner = nil
	fmt.Fprintf(r.out, "Dispatched %s/%s items in %s\n",
		format.FormatInt(int64(r.claimed)), format.FormatInt(int64(r.total)),
		format.FormatExecutionDuration(r.now().Sub(r.start)))
}

func progressLine(claimed, total int, eta time.Duration) string {
	frac := 0.0
	if total > 0 {
		frac = float64(claimed) / float64(total)
	}
	return fmt.Sprintf("%s %s/%s", format.FormatProgressBarWithETA(frac, eta, ProgressBarWidth),
		format.FormatInt(int64(claimed)), format.FormatInt(int64(total)))
}
