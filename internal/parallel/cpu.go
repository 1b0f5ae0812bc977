package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/shirou/gopsutil/v4/cpu"
)

// Bounds applied to the detected core count.
const (
	MinCores = 1
	MaxCores = 32
)

var (
	initOnce  sync.Once
	numCores  atomic.Int32
	shutdowns atomic.Int32
)

// Init detects the available parallelism once per process and caches it.
// Concurrent and repeated calls are safe; only the first one probes the system.
func Init() {
	initOnce.Do(func() {
		numCores.Store(int32(clampCores(detectCores())))
	})
}

// NumCores returns the cached core count, running Init first if needed.
// The value is always within [MinCores, MaxCores].
func NumCores() int {
	Init()
	return int(numCores.Load())
}

// Shutdown is the teardown hook paired with Init. Detection holds no
// resources, so it only records the call; the cached count stays valid.
func Shutdown() {
	shutdowns.Add(1)
}

// detectCores tries the scheduler affinity mask first, then the logical CPU
// count reported by the OS, then the Go runtime.
func detectCores() int {
	if n, ok := affinityCores(); ok && n > 0 {
		return n
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func clampCores(n int) int {
	switch {
	case n < MinCores:
		return MinCores
	case n > MaxCores:
		return MaxCores
	default:
		return n
	}
}
