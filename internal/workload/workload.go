//go:generate mockgen -source=workload.go -destination=mocks/mock_workload.go -package=mocks

package workload

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultCost is the per-item cost used when none is configured.
const DefaultCost = 1000

// Workload processes individual work items.
type Workload interface {
	// Name is the registry key of the workload.
	Name() string
	// Description is a one-line human-readable summary.
	Description() string
	// Process performs the work for one index. It is called concurrently.
	Process(index int) error
}

// Factory is a registry of workloads keyed by name.
type Factory struct {
	mu        sync.RWMutex
	workloads map[string]Workload
}

// NewFactory returns an empty registry.
func NewFactory() *Factory {
	return &Factory{workloads: make(map[string]Workload)}
}

// NewDefaultFactory returns a registry holding the built-in workloads
// configured with the given per-item cost.
func NewDefaultFactory(cost int) *Factory {
	if cost <= 0 {
		cost = DefaultCost
	}
	f := NewFactory()
	f.Register(NewHash(cost))
	f.Register(NewFib(cost))
	f.Register(NewSleep(cost))
	return f
}

// Register adds or replaces a workload.
func (f *Factory) Register(w Workload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workloads[w.Name()] = w
}

// Get returns the workload registered under name.
func (f *Factory) Get(name string) (Workload, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	w, ok := f.workloads[name]
	if !ok {
		return nil, fmt.Errorf("unknown workload %q", name)
	}
	return w, nil
}

// List returns the registered workload names in sorted order.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.workloads))
	for name := range f.workloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
