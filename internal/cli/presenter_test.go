package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/forkjoin/internal/config"
	apperrors "github.com/agbru/forkjoin/internal/errors"
	"github.com/agbru/forkjoin/internal/orchestration"
	"github.com/agbru/forkjoin/internal/parallel"
	"github.com/agbru/forkjoin/internal/ui"
)

// Presenter tests share the package-level theme and run sequentially.

func withNoColor(t *testing.T) {
	t.Helper()
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })
}

func sampleResult() orchestration.Result {
	return orchestration.Result{
		Stats: parallel.RunStats{
			RunID:       "run-1",
			Items:       10,
			Slots:       5,
			Workers:     4,
			Coordinated: true,
			Claimed:     10,
			Elapsed:     2 * time.Second,
		},
		Processed: 9,
		Failed:    1,
	}
}

func TestPrintRunConfig(t *testing.T) {
	withNoColor(t)
	var buf bytes.Buffer
	cfg := config.AppConfig{Workers: 4, Items: 1500, Workload: "hash", Coordinator: true, Timeout: time.Minute}
	PrintRunConfig(cfg, "chain 10 xxhash rounds per item", &buf)

	for _, want := range []string{"forkjoin", "hash: chain 10 xxhash rounds per item", "1,500", "4 (cores:", "coordinated", "1m0s"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("run config missing %q:\n%s", want, buf.String())
		}
	}
}

func TestPresentRunResultQuiet(t *testing.T) {
	withNoColor(t)
	var buf bytes.Buffer
	PresentRunResult(sampleResult(), PresentationOptions{Quiet: true}, &buf)
	if got, want := buf.String(), "processed=9 failed=1 skipped=0 elapsed=2s\n"; got != want {
		t.Errorf("quiet output = %q, want %q", got, want)
	}
}

func TestPresentRunResultSummary(t *testing.T) {
	withNoColor(t)

	tests := []struct {
		name    string
		mutate  func(*orchestration.Result)
		verbose bool
		want    []string
	}{
		{"failed items", func(*orchestration.Result) {}, false, []string{"Run summary", "Completed with 1 failed items", "run-1", "4 launched, 5 slots", "5.00 items/s"}},
		{"success", func(r *orchestration.Result) { r.Failed, r.Processed = 0, 10 }, false, []string{"Success"}},
		{"aborted", func(r *orchestration.Result) { r.Stats.Aborted = true }, false, []string{"Aborted before start"}},
		{"failure", func(r *orchestration.Result) { r.Err = errors.New("boom") }, false, []string{"Failure"}},
		{"verbose", func(*orchestration.Result) {}, true, []string{"Heap delta", "GC cycles", "System CPU", "System memory"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := sampleResult()
			tt.mutate(&res)
			var buf bytes.Buffer
			PresentRunResult(res, PresentationOptions{Verbose: tt.verbose}, &buf)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("summary missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestHandleRunError(t *testing.T) {
	withNoColor(t)

	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"nil", nil, apperrors.ExitSuccess, ""},
		{"timeout", apperrors.RunError{Cause: context.DeadlineExceeded}, apperrors.ExitErrorTimeout, "Timeout:"},
		{"canceled", apperrors.RunError{Cause: context.Canceled}, apperrors.ExitErrorCanceled, "Canceled:"},
		{"item", apperrors.ItemError{Index: 3, Cause: errors.New("bad")}, apperrors.ExitErrorItems, "item 3: bad"},
		{"panic", apperrors.RunError{RunID: "r", Cause: &parallel.PanicError{Index: 2, Value: "oops"}}, apperrors.ExitErrorGeneric, "Worker crashed: worker 2 panicked: oops"},
		{"generic", errors.New("disk full"), apperrors.ExitErrorGeneric, "Error: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if code := HandleRunError(tt.err, &buf); code != tt.code {
				t.Errorf("HandleRunError() = %d, want %d", code, tt.code)
			}
			if !strings.Contains(buf.String(), tt.msg) {
				t.Errorf("output %q missing %q", buf.String(), tt.msg)
			}
		})
	}
}
