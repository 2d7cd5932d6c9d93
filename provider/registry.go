package provider

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry resolves a configured backend name to the factory that builds
// it. Backends register themselves from init.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{factories: map[string]Factory[T]{}}
}

// RegisterFactory binds name to f, replacing any earlier binding.
func (r *Registry[T]) RegisterFactory(name string, f Factory[T]) {
	r.mu.Lock()
	r.factories[name] = f
	r.mu.Unlock()
}

// Create builds the backend registered under name from cfg.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("provider factory %q not registered (known: %v)", name, r.List())
	}
	return f(cfg)
}

// List returns the registered names in order.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}
