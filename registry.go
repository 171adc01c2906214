package rivet

import (
	"reflect"
	"sync"
)

// registry maps requested types to pre-bound singleton instances. It is
// consulted before any reflective construction, which is also the sanctioned
// way to break dependency cycles: bind the shared collaborator and the
// resolver never recurses into it.
type registry struct {
	mu       sync.RWMutex
	bindings map[reflect.Type]any
}

func newRegistry() *registry {
	return &registry{
		bindings: make(map[reflect.Type]any),
	}
}

// bind registers instance for t. Last write wins.
func (r *registry) bind(t reflect.Type, instance any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[t] = instance
}

func (r *registry) lookup(t reflect.Type) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, ok := r.bindings[t]
	return instance, ok
}

func (r *registry) isBound(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.bindings[t]
	return ok
}

func (r *registry) types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reflect.Type, 0, len(r.bindings))
	for t := range r.bindings {
		out = append(out, t)
	}
	return out
}

func (r *registry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.bindings)
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings = make(map[reflect.Type]any)
}
