package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/forkjoin/internal/errors"
	"github.com/agbru/forkjoin/internal/parallel"
	"github.com/agbru/forkjoin/internal/workload"
	"github.com/agbru/forkjoin/internal/workload/mocks"
)

// recordingReporter captures the progress callbacks in call order.
type recordingReporter struct {
	mu      sync.Mutex
	calls   []string
	updates [][2]int
}

func (r *recordingReporter) Begin(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("begin:%d", total))
}

func (r *recordingReporter) Update(claimed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "update")
	r.updates = append(r.updates, [2]int{claimed, total})
}

func (r *recordingReporter) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "end")
}

// runWithTimeout fails the test if ExecuteRun does not return in time.
func runWithTimeout(t *testing.T, ctx context.Context, plan Plan, reporter ProgressReporter) Result {
	t.Helper()
	done := make(chan Result, 1)
	go func() { done <- ExecuteRun(ctx, parallel.NewDispatcher(), plan, reporter) }()
	select {
	case res := <-done:
		return res
	case <-time.After(10 * time.Second):
		t.Fatal("ExecuteRun did not return: possible deadlock")
		return Result{}
	}
}

func TestExecuteRun_AllItemsProcessed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		workers     int
		items       int
		coordinated bool
	}{
		{"single worker", 1, 10, false},
		{"more workers than items", 16, 5, false},
		{"coordinated", 4, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			w := mocks.NewMockWorkload(ctrl)
			w.EXPECT().Process(gomock.Any()).Return(nil).Times(tt.items)

			res := runWithTimeout(t, context.Background(), Plan{
				Workers:     tt.workers,
				Items:       tt.items,
				Workload:    w,
				Coordinated: tt.coordinated,
			}, nil)

			if res.Err != nil || res.FirstItemErr != nil {
				t.Fatalf("unexpected errors: run=%v item=%v", res.Err, res.FirstItemErr)
			}
			if res.Processed != int64(tt.items) || res.Failed != 0 || res.Skipped != 0 {
				t.Errorf("counts = %d/%d/%d, want %d/0/0", res.Processed, res.Failed, res.Skipped, tt.items)
			}
			if res.Stats.Claimed != tt.items {
				t.Errorf("Stats.Claimed = %d, want %d", res.Stats.Claimed, tt.items)
			}
			if res.Stats.Coordinated != tt.coordinated {
				t.Errorf("Stats.Coordinated = %v, want %v", res.Stats.Coordinated, tt.coordinated)
			}
		})
	}
}

func TestExecuteRun_ItemFailuresCounted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	w := mocks.NewMockWorkload(ctrl)
	errBad := errors.New("bad item")
	w.EXPECT().Process(gomock.Any()).DoAndReturn(func(i int) error {
		if i%3 == 0 {
			return errBad
		}
		return nil
	}).Times(30)

	res := runWithTimeout(t, context.Background(), Plan{Workers: 4, Items: 30, Workload: w}, nil)

	if res.Failed != 10 || res.Processed != 20 {
		t.Errorf("processed=%d failed=%d, want 20/10", res.Processed, res.Failed)
	}
	if res.Err != nil {
		t.Errorf("Err = %v, want nil", res.Err)
	}
	var itemErr apperrors.ItemError
	if !errors.As(res.FirstItemErr, &itemErr) {
		t.Fatalf("FirstItemErr = %v, want ItemError", res.FirstItemErr)
	}
	if itemErr.Index%3 != 0 || !errors.Is(itemErr, errBad) {
		t.Errorf("unexpected item error %+v", itemErr)
	}
	if got := apperrors.ExitCodeFor(res.Error()); got != apperrors.ExitErrorItems {
		t.Errorf("exit code = %d, want %d", got, apperrors.ExitErrorItems)
	}
}

func TestExecuteRun_CoordinatorReportsProgress(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	w := mocks.NewMockWorkload(ctrl)
	w.EXPECT().Process(gomock.Any()).DoAndReturn(func(int) error {
		time.Sleep(time.Millisecond)
		return nil
	}).Times(40)

	rep := &recordingReporter{}
	res := runWithTimeout(t, context.Background(), Plan{
		Workers:         2,
		Items:           40,
		Workload:        w,
		Coordinated:     true,
		RefreshInterval: 2 * time.Millisecond,
	}, rep)
	if res.Error() != nil {
		t.Fatalf("unexpected error: %v", res.Error())
	}

	if len(rep.calls) < 3 {
		t.Fatalf("calls = %v, want begin, updates, end", rep.calls)
	}
	if rep.calls[0] != "begin:40" {
		t.Errorf("first call = %q, want begin:40", rep.calls[0])
	}
	if rep.calls[len(rep.calls)-1] != "end" {
		t.Errorf("last call = %q, want end", rep.calls[len(rep.calls)-1])
	}
	last := rep.updates[len(rep.updates)-1]
	if last != [2]int{40, 40} {
		t.Errorf("final update = %v, want [40 40]", last)
	}
	for i := 1; i < len(rep.updates); i++ {
		if rep.updates[i][0] < rep.updates[i-1][0] {
			t.Errorf("progress went backwards: %v", rep.updates)
			break
		}
	}
}

func TestExecuteRun_Abort(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	w := mocks.NewMockWorkload(ctrl)
	w.EXPECT().Process(gomock.Any()).Times(0)

	rep := &recordingReporter{}
	res := runWithTimeout(t, context.Background(), Plan{Workers: 4, Items: 12, Workload: w, Abort: true}, rep)

	if !res.Stats.Aborted || res.Stats.Workers != 0 {
		t.Errorf("Stats = %+v, want aborted with no workers", res.Stats)
	}
	if res.Skipped != 12 || res.Processed != 0 {
		t.Errorf("skipped=%d processed=%d, want 12/0", res.Skipped, res.Processed)
	}
	if res.Error() != nil {
		t.Errorf("Error() = %v, want nil", res.Error())
	}
	if got := fmt.Sprint(rep.calls); got != "[begin:12 end]" {
		t.Errorf("calls = %s, want [begin:12 end]", got)
	}
}

func TestExecuteRun_CancelledContext(t *testing.T) {
	t.Parallel()

	for _, coordinated := range []bool{false, true} {
		t.Run(fmt.Sprintf("coordinated=%v", coordinated), func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			w := mocks.NewMockWorkload(ctrl)
			w.EXPECT().Process(gomock.Any()).Times(0)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res := runWithTimeout(t, ctx, Plan{Workers: 2, Items: 8, Workload: w, Coordinated: coordinated}, nil)

			if res.Skipped != 8 {
				t.Errorf("Skipped = %d, want 8", res.Skipped)
			}
			var runErr apperrors.RunError
			if !errors.As(res.Err, &runErr) {
				t.Fatalf("Err = %v, want RunError", res.Err)
			}
			if got := apperrors.ExitCodeFor(res.Error()); got != apperrors.ExitErrorCanceled {
				t.Errorf("exit code = %d, want %d", got, apperrors.ExitErrorCanceled)
			}
		})
	}
}

func TestExecuteRun_CancelMidRunStopsClaiming(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := gomock.NewController(t)
	w := mocks.NewMockWorkload(ctrl)
	w.EXPECT().Process(gomock.Any()).DoAndReturn(func(i int) error {
		if i == 3 {
			cancel()
		}
		return nil
	}).MinTimes(1)

	res := runWithTimeout(t, ctx, Plan{Workers: 1, Items: 1000, Workload: w}, nil)

	if res.Processed != 4 {
		t.Errorf("Processed = %d, want 4", res.Processed)
	}
	if res.Skipped != 996 {
		t.Errorf("Skipped = %d, want 996", res.Skipped)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", res.Err)
	}
}

func TestExecuteRun_WorkloadPanic(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	w := mocks.NewMockWorkload(ctrl)
	w.EXPECT().Process(gomock.Any()).DoAndReturn(func(i int) error {
		if i == 5 {
			panic("corrupt input")
		}
		return nil
	}).AnyTimes()

	res := runWithTimeout(t, context.Background(), Plan{Workers: 3, Items: 20, Workload: w, Coordinated: true}, nil)

	var pe *parallel.PanicError
	if !errors.As(res.Err, &pe) {
		t.Fatalf("Err = %v, want PanicError", res.Err)
	}
	if pe.Coordinator {
		t.Error("panic attributed to coordinator")
	}
	if got := apperrors.ExitCodeFor(res.Error()); got != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", got, apperrors.ExitErrorGeneric)
	}
}

func TestExecuteRun_Degenerate(t *testing.T) {
	t.Parallel()

	res := runWithTimeout(t, context.Background(), Plan{Workers: 4, Items: 0, Workload: workload.NewHash(1)}, nil)
	if res.Stats != (parallel.RunStats{}) || res.Error() != nil {
		t.Errorf("Result = %+v, want zero stats and no error", res)
	}
	if res.Processed != 0 || res.Skipped != 0 {
		t.Errorf("counts = %d/%d, want 0/0", res.Processed, res.Skipped)
	}
}

func TestExecuteRun_RealWorkloads(t *testing.T) {
	t.Parallel()

	f := workload.NewDefaultFactory(10)
	for _, name := range f.List() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			wl, err := f.Get(name)
			if err != nil {
				t.Fatal(err)
			}
			res := runWithTimeout(t, context.Background(), Plan{Workers: 4, Items: 64, Workload: wl, Coordinated: true}, NullProgressReporter{})
			if res.Error() != nil || res.Processed != 64 {
				t.Errorf("processed=%d err=%v", res.Processed, res.Error())
			}
		})
	}
}
