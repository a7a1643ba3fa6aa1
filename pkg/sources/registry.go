package sources

import (
	"fmt"
	"sort"
	"sync"
)

var (
	// factories is the package-level driver registry
	factories = make(map[string]Factory)
	// mu protects concurrent access to factories
	mu sync.RWMutex
)

// Register adds a provider driver to the registry. Provider packages call
// this from an init function; discovery resolves on-disk manifests against
// the registered names.
func Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("cannot register driver with empty name")
	}
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for driver %q", name)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		return fmt.Errorf("driver already registered: %s", name)
	}

	factories[name] = factory
	return nil
}

// MustRegister is Register for init-time use; it panics on error.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup retrieves a registered driver factory.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	factory, exists := factories[name]
	if !exists {
		return nil, fmt.Errorf("driver not registered: %s", name)
	}
	return factory, nil
}

// Registered reports whether a driver name is known.
func Registered(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, exists := factories[name]
	return exists
}

// Drivers returns the sorted names of all registered drivers.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClearRegistry removes all registered drivers. Intended for tests.
func ClearRegistry() {
	mu.Lock()
	defer mu.Unlock()
	factories = make(map[string]Factory)
}
