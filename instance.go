package rivet

import (
	"github.com/rivetdi/rivet/internal/typekey"
)

// Instance resolves an instance of T through any Adapter: the built-in
// injector or an external-framework bridge.
func Instance[T any](a Adapter) (T, error) {
	var zero T

	instance, err := a.Instance(typekey.Of[T]())
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, errInstantiationFailed(
			typekey.Name(typekey.Of[T]()),
			newError(ErrCodeUnknown, "adapter returned "+typekey.ForValue(instance), nil),
		)
	}

	return typed, nil
}

func MustInstance[T any](a Adapter) T {
	v, err := Instance[T](a)
	if err != nil {
		panic(err)
	}
	return v
}

func TryInstance[T any](a Adapter) (T, bool) {
	v, err := Instance[T](a)
	return v, err == nil
}
