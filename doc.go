// Package rivet is a small two-phase dependency injector for Go.
//
// Rivet separates object construction from member injection so a host — in
// practice a loader that instantiates objects itself and wires its own state
// into them — can interleave work between the two phases:
//
//  1. Instance builds an object: bound singletons win, otherwise the
//     registered constructor (or the zero value) runs with every parameter
//     resolved recursively.
//  2. InjectMembers populates `rivet`-tagged fields and invokes
//     Inject-prefixed methods on an already-constructed object, exactly once
//     per object identity.
//
// # Quick Start
//
//	in := rivet.New()
//
//	rivet.MustBind(in, &Config{Port: 8080})
//
//	rivet.MustProvide[*Service](in, func(cfg *Config) *Service {
//	    return &Service{cfg: cfg}
//	})
//
//	svc := rivet.MustInstance[*Service](in)
//
// # Bindings
//
// Bind registers a pre-built singleton for a type. The registry is consulted
// before any reflective construction, so a binding also terminates an
// otherwise cyclic dependency graph:
//
//	rivet.Bind(in, sharedBus)        // by static type
//	in.BindType(t, instance)         // by reflect.Type
//
// Rebinding a type overwrites the previous binding. Reset clears all
// bindings and injected-object markers.
//
// # Constructors
//
// Provide registers the constructor used when a type has no binding.
// Constructors take their dependencies as parameters and return T or
// (T, error):
//
//	func NewHandler(svc *Service, log *slog.Logger) (*Handler, error) { ... }
//	rivet.Provide[*Handler](in, NewHandler)
//
// Registering two constructors for one type is a configuration error:
// resolving that type fails instead of silently picking one. Struct and
// struct-pointer types without a constructor fall back to their zero value.
//
// # Member Injection
//
// Fields are marked with the `rivet` tag, methods with the Inject name
// prefix. Embedded-struct fields are injected before the outer struct's own
// fields, and a field that already holds a value is never overwritten:
//
//	type Controller struct {
//	    Service *Service `rivet:""`
//	    Metrics *Metrics `rivet:",optional"`
//	}
//
//	func (c *Controller) InjectClock(clock *Clock) { c.now = clock.Now }
//
//	if err := in.InjectMembers(ctrl); err != nil { ... }
//
// Calling InjectMembers again on the same object is a designed no-op.
//
// # Adapters
//
// The Adapter interface is the full public contract. Bridges wrapping an
// external container implement the same two methods and are used
// interchangeably with the built-in injector, including by the generic
// helpers:
//
//	cfg, err := rivet.Instance[*Config](adapter)
//
// # Errors
//
// Every failure surfaces as a coded *Error: NIL_TYPE, NIL_TARGET,
// NO_USABLE_CONSTRUCTOR, CIRCULAR_DEPENDENCY (with the full chain, e.g.
// A -> B -> C -> A), INSTANTIATION_FAILED, and MEMBER_INJECTION_FAILED.
// Inspect them with the IsXxx predicates or errors.As. Nothing is retried
// or swallowed.
package rivet
