package parallel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingDispatcher(t *testing.T) (*Dispatcher, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewDispatcher(WithTracer(tp.Tracer("test"))), rec
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func spanEvents(s sdktrace.ReadOnlySpan) []string {
	var names []string
	for _, e := range s.Events() {
		names = append(names, e.Name)
	}
	return names
}

func TestRunSpanCoordinated(t *testing.T) {
	d, rec := newRecordingDispatcher(t)
	var r claimRecorder

	stats, err := d.Run(context.Background(), Job{
		Workers: 3,
		Items:   10,
		Work:    r.work,
		Coordinator: func(w *Worker) {
			w.Pool.Start()
			<-w.Pool.Finished()
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Name() != "parallel.Run" {
		t.Errorf("span name = %q", s.Name())
	}
	attrs := spanAttrs(s)
	if got := attrs["forkjoin.run_id"].AsString(); got != stats.RunID {
		t.Errorf("run_id = %q, want %q", got, stats.RunID)
	}
	if got := attrs["forkjoin.items"].AsInt64(); got != 10 {
		t.Errorf("items = %d, want 10", got)
	}
	if got := attrs["forkjoin.slots"].AsInt64(); got != 4 {
		t.Errorf("slots = %d, want 4", got)
	}
	if got := attrs["forkjoin.workers"].AsInt64(); got != 3 {
		t.Errorf("workers = %d, want 3", got)
	}
	if got := attrs["forkjoin.claimed"].AsInt64(); got != 10 {
		t.Errorf("claimed = %d, want 10", got)
	}
	if !attrs["forkjoin.coordinated"].AsBool() {
		t.Error("coordinated attribute not set")
	}
	if attrs["forkjoin.aborted"].AsBool() {
		t.Error("aborted attribute set on a started run")
	}
	if ev := spanEvents(s); len(ev) != 1 || ev[0] != "workers launched" {
		t.Errorf("events = %v", ev)
	}
	if s.Status().Code == codes.Error {
		t.Errorf("status = %v, want unset", s.Status())
	}
}

func TestRunSpanAborted(t *testing.T) {
	d, rec := newRecordingDispatcher(t)

	_, err := d.Run(context.Background(), Job{
		Workers: 2,
		Items:   5,
		Work:    func(*Worker) { t.Error("worker launched after stop") },
		Coordinator: func(w *Worker) {
			w.Pool.Stop()
			<-w.Pool.Finished()
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	attrs := spanAttrs(spans[0])
	if !attrs["forkjoin.aborted"].AsBool() {
		t.Error("aborted attribute not set")
	}
	if got := attrs["forkjoin.workers"].AsInt64(); got != 0 {
		t.Errorf("workers = %d, want 0", got)
	}
	if ev := spanEvents(spans[0]); len(ev) != 1 || ev[0] != "run aborted before launch" {
		t.Errorf("events = %v", ev)
	}
}

func TestRunSpanRecordsPanic(t *testing.T) {
	d, rec := newRecordingDispatcher(t)

	_, err := d.Run(context.Background(), Job{
		Workers: 2,
		Items:   4,
		Work:    func(*Worker) { panic("boom") },
	})
	if err == nil {
		t.Fatal("expected an error from a panicking worker")
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Status().Code != codes.Error {
		t.Errorf("status code = %v, want Error", s.Status().Code)
	}
	var sawException bool
	for _, e := range s.Events() {
		if e.Name == "exception" {
			sawException = true
		}
	}
	if !sawException {
		t.Error("panic not recorded as an exception event")
	}
}

func TestDegenerateRunHasNoSpan(t *testing.T) {
	d, rec := newRecordingDispatcher(t)
	if _, err := d.Run(context.Background(), Job{Workers: 0, Items: 5, Work: func(*Worker) {}}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := len(rec.Ended()); n != 0 {
		t.Errorf("got %d spans for a degenerate run, want 0", n)
	}
}
