package metrics

import (
	"testing"
	"time"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	// Allocate some memory
	_ = make([]byte, 1024*1024) // 1 MB

	after := mc.Snapshot()

	// Sys should not decrease between snapshots
	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}

	d := after.Delta(before)
	if d.NumGC != after.NumGC-before.NumGC {
		t.Errorf("NumGC delta = %d, want %d", d.NumGC, after.NumGC-before.NumGC)
	}
}

func TestMemorySnapshot_DeltaSigned(t *testing.T) {
	t.Parallel()

	before := MemorySnapshot{HeapAlloc: 5000, NumGC: 3, PauseTotalNs: 1000}
	after := MemorySnapshot{HeapAlloc: 2000, NumGC: 5, PauseTotalNs: 4000}

	d := after.Delta(before)
	if d.HeapAlloc != -3000 {
		t.Errorf("HeapAlloc delta = %d, want -3000", d.HeapAlloc)
	}
	if d.NumGC != 2 {
		t.Errorf("NumGC delta = %d, want 2", d.NumGC)
	}
	if d.PauseTotal != 3*time.Microsecond {
		t.Errorf("PauseTotal delta = %v, want 3µs", d.PauseTotal)
	}
}
