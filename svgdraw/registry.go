package svgdraw

import (
	"fmt"
	"sort"
	"sync"
)

// BackendFactory creates a backend for a pad of the given size, in pixels.
type BackendFactory func(width, height float64) FileBackend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register makes a backend available by name. It is typically
// called from the init function of backend packages.
// Register panics if factory is nil or if the name is already used.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("svgdraw: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("svgdraw: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes a backend. It is a no-op for unknown names.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewBackend creates a backend by name.
func NewBackend(name string, width, height float64) (FileBackend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("svgdraw: unknown backend %q (forgotten import?)", name)
	}
	return factory(width, height), nil
}

// Backends returns the sorted names of the registered backends.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
