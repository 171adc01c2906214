package rivet

import (
	"reflect"

	"github.com/rivetdi/rivet/internal/typekey"
)

// Bind registers instance as the singleton for T. A later Bind for the same
// type overwrites the earlier one. Bound instances always win over
// reflective construction, which makes Bind the designed mechanism for
// breaking dependency cycles.
func Bind[T any](in *Injector, instance T) error {
	return in.BindType(typekey.Of[T](), instance)
}

func MustBind[T any](in *Injector, instance T) {
	if err := Bind(in, instance); err != nil {
		panic(err)
	}
}

// IsBound reports whether a singleton is registered for T.
func IsBound[T any](in *Injector) bool {
	return in.IsBoundType(typekey.Of[T]())
}

// BindType is the reflect-typed form of Bind, for callers that discover
// types at runtime (UI loaders, bridges).
func (in *Injector) BindType(t reflect.Type, instance any) error {
	if t == nil {
		return errNilType()
	}
	if typekey.IsNil(instance) {
		return errNilTarget().WithType(typekey.For(t))
	}

	it := reflect.TypeOf(instance)
	if !it.AssignableTo(t) {
		return errIncompatibleBinding(typekey.For(t), typekey.For(it))
	}

	in.registry.bind(t, instance)
	in.logger.Debug("binding registered", "type", typekey.For(t))
	return nil
}

func (in *Injector) IsBoundType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	return in.registry.isBound(t)
}
