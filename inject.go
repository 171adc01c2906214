package rivet

import (
	"fmt"
	"reflect"
	"time"

	"github.com/rivetdi/rivet/internal/typekey"
)

// InjectMembers populates target's injectable fields and invokes its
// injectable methods, in place. It is idempotent per object identity: the
// second call on the same object is a no-op. Two distinct objects that
// happen to be equal are injected independently.
//
// Fields that already hold a non-zero value are left untouched. Methods are
// always invoked on the first run, even when their parameters duplicate
// already-injected fields, since methods may carry side effects beyond
// assignment. On failure no partial rollback is performed and the object
// stays unmarked, so a later call retries in full.
func (in *Injector) InjectMembers(target any) error {
	start := time.Now()

	err := in.injectMembers(target)

	for _, hook := range in.onInject {
		hook(typekey.ForValue(target), time.Since(start), err)
	}
	return err
}

func (in *Injector) injectMembers(target any) error {
	if typekey.IsNil(target) {
		return errNilTarget()
	}

	rv := reflect.ValueOf(target)
	key := typekey.For(rv.Type())

	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errMemberInjectionFailed(key, fmt.Errorf("target must be a pointer to a struct, got %s", rv.Type()))
	}

	// Serializing the whole run resolves the first-time race between two
	// threads injecting the same object: the loser blocks, then hits the
	// marker. Constructors and injectable methods must not call back into
	// InjectMembers on the same injector.
	in.injectMu.Lock()
	defer in.injectMu.Unlock()

	if _, done := in.injected[target]; done {
		return nil
	}

	d, err := in.descriptors.DescriptorFor(rv.Type())
	if err != nil {
		return errMemberInjectionFailed(key, err)
	}

	elem := rv.Elem()
	for _, field := range d.Fields {
		fv := elem.FieldByIndex(field.Index)
		if !fv.IsZero() {
			// Pre-populated by the caller; never overwritten.
			continue
		}

		dep, err := in.resolve(field.Type, newFrame())
		if err != nil {
			if field.Optional {
				continue
			}
			return errMemberInjectionFailed(key, fmt.Errorf("field %s: %w", field.Name, err))
		}

		dv := reflect.ValueOf(dep)
		if !dv.Type().AssignableTo(fv.Type()) {
			return errMemberInjectionFailed(key, fmt.Errorf("field %s: cannot assign %s to %s", field.Name, dv.Type(), fv.Type()))
		}
		fv.Set(dv)
	}

	for _, method := range d.Methods {
		args := make([]reflect.Value, len(method.Params))
		for i, paramType := range method.Params {
			dep, err := in.resolve(paramType, newFrame())
			if err != nil {
				return errMemberInjectionFailed(key, fmt.Errorf("method %s, parameter %d: %w", method.Name, i, err))
			}
			args[i] = reflect.ValueOf(dep)
		}

		if err := invokeMethod(rv.Method(method.Index), args, method.ReturnsError); err != nil {
			return errMemberInjectionFailed(key, fmt.Errorf("method %s: %w", method.Name, err))
		}

		in.logger.Debug("injectable method invoked", "type", key, "method", method.Name)
	}

	in.injected[target] = struct{}{}
	return nil
}

func invokeMethod(m reflect.Value, args []reflect.Value, returnsError bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panicked: %v", r)
		}
	}()

	results := m.Call(args)

	if returnsError && !results[0].IsNil() {
		return results[0].Interface().(error)
	}
	return nil
}
