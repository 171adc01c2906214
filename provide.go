package rivet

import (
	"reflect"

	"github.com/rivetdi/rivet/internal/typekey"
)

// Provide registers ctor as the injection constructor for T. Accepted shapes
// are func(deps...) T and func(deps...) (T, error); every parameter is
// resolved through the injector when T is constructed.
//
// At most one constructor may be registered per type: a second registration
// is recorded and resolution of T fails with NO_USABLE_CONSTRUCTOR rather
// than silently picking one. Types without a registered constructor fall
// back to zero-value construction when they are structs or struct pointers.
func Provide[T any](in *Injector, ctor any) error {
	return in.ProvideType(typekey.Of[T](), ctor)
}

func MustProvide[T any](in *Injector, ctor any) {
	if err := Provide[T](in, ctor); err != nil {
		panic(err)
	}
}

// ProvideType is the reflect-typed form of Provide.
func (in *Injector) ProvideType(t reflect.Type, ctor any) error {
	if t == nil {
		return errNilType()
	}

	if err := in.ctors.Add(t, ctor); err != nil {
		return errNoUsableConstructor(typekey.For(t), err)
	}

	// The type may have been scanned before the constructor existed.
	in.cache.Forget(t)

	in.logger.Debug("constructor registered", "type", typekey.For(t))
	return nil
}
