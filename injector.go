package rivet

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/rivetdi/rivet/internal/descriptor"
)

// Adapter is the two-phase injection contract. Instance builds (or looks up)
// an object of the requested type without touching its members; InjectMembers
// populates an already-constructed object's injectable fields and methods,
// exactly once per object identity. The built-in Injector satisfies it, and
// so must any bridge wrapping an external container: callers treat all
// adapters interchangeably.
//
// The split exists so a host (typically a UI loader) can interleave its own
// wiring between construction and member injection, and call InjectMembers
// defensively without duplicating side effects.
type Adapter interface {
	Instance(t reflect.Type) (any, error)
	InjectMembers(target any) error
}

// Injector is the self-contained Adapter implementation: an instance
// registry consulted first, a reflective constructor engine with cycle
// detection, and an idempotent member injector.
type Injector struct {
	registry    *registry
	ctors       *descriptor.Constructors
	cache       *descriptor.Cache
	descriptors descriptor.Provider
	logger      *slog.Logger

	onResolve []ResolveHook
	onInject  []InjectHook

	// injectMu serializes member injection so two threads racing on the same
	// object observe exactly-once semantics. Keys of injected are the target
	// pointers themselves: identity, never the object's own equality.
	injectMu sync.Mutex
	injected map[any]struct{}
}

var _ Adapter = (*Injector)(nil)

type injectorConfig struct {
	logger    *slog.Logger
	provider  descriptor.Provider
	onResolve []ResolveHook
	onInject  []InjectHook
}

func New(opts ...Option) *Injector {
	cfg := &injectorConfig{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	ctors := descriptor.NewConstructors()
	cache := descriptor.NewCache(descriptor.NewScanner(ctors))

	provider := cfg.provider
	if provider == nil {
		provider = cache
	}

	return &Injector{
		registry:    newRegistry(),
		ctors:       ctors,
		cache:       cache,
		descriptors: provider,
		logger:      cfg.logger,
		onResolve:   cfg.onResolve,
		onInject:    cfg.onInject,
		injected:    make(map[any]struct{}),
	}
}

// Reset clears all bindings and injected-object markers. The descriptor
// cache survives a reset: type metadata never changes within a run.
func (in *Injector) Reset() {
	in.registry.clear()

	in.injectMu.Lock()
	in.injected = make(map[any]struct{})
	in.injectMu.Unlock()

	in.logger.Debug("injector reset")
}
