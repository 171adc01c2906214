package rivet

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/rivetdi/rivet/internal/descriptor"
	"github.com/rivetdi/rivet/internal/typekey"
)

// frame tracks the types under construction within one root Instance call.
// It is threaded through the recursion as an explicit parameter, so two
// unrelated concurrent resolutions of the same type never see each other.
type frame struct {
	chain []reflect.Type
	seen  map[reflect.Type]struct{}
}

func newFrame() *frame {
	return &frame{
		seen: make(map[reflect.Type]struct{}),
	}
}

func (f *frame) push(t reflect.Type) *Error {
	if _, inProgress := f.seen[t]; inProgress {
		return errCircularDependency(f.keys(t))
	}

	f.seen[t] = struct{}{}
	f.chain = append(f.chain, t)
	return nil
}

func (f *frame) pop() {
	last := f.chain[len(f.chain)-1]
	delete(f.seen, last)
	f.chain = f.chain[:len(f.chain)-1]
}

// keys renders the chain in insertion order, with the repeated type appended
// so the cycle reads A -> B -> C -> A.
func (f *frame) keys(repeated reflect.Type) []string {
	out := make([]string, 0, len(f.chain)+1)
	for _, t := range f.chain {
		out = append(out, typekey.For(t))
	}
	return append(out, typekey.For(repeated))
}

// Instance returns an instance of t: the bound singleton when one exists,
// otherwise a freshly constructed object with every constructor parameter
// resolved through the same mechanism. Construction never performs field or
// method injection; that is the second phase.
func (in *Injector) Instance(t reflect.Type) (any, error) {
	start := time.Now()

	instance, err := in.resolve(t, newFrame())

	key := typekey.For(t)
	for _, hook := range in.onResolve {
		hook(key, time.Since(start), err)
	}

	if err != nil {
		in.logger.Debug("resolution failed", "type", key, "error", err)
	}
	return instance, err
}

func (in *Injector) resolve(t reflect.Type, f *frame) (any, error) {
	if t == nil {
		return nil, errNilType()
	}

	// Registry first, even for a type reachable mid-cycle.
	if instance, ok := in.registry.lookup(t); ok {
		return instance, nil
	}

	if err := f.push(t); err != nil {
		return nil, err
	}
	defer f.pop()

	d, err := in.descriptors.DescriptorFor(t)
	if err != nil {
		if errors.Is(err, descriptor.ErrNoConstructor) || errors.Is(err, descriptor.ErrAmbiguousConstructor) {
			return nil, errNoUsableConstructor(typekey.For(t), err)
		}
		return nil, errInstantiationFailed(typekey.For(t), err)
	}

	var instance any
	if d.Ctor == nil {
		instance = zeroConstruct(t)
	} else {
		args := make([]reflect.Value, len(d.Ctor.Params))
		for i, paramType := range d.Ctor.Params {
			dep, err := in.resolve(paramType, f)
			if err != nil {
				return nil, err
			}
			args[i] = reflect.ValueOf(dep)
		}

		instance, err = d.Ctor.Invoke(args)
		if err != nil {
			return nil, errInstantiationFailed(typekey.For(t), err)
		}
	}

	// A typed nil with a nil error would otherwise propagate into parent
	// constructors and tagged fields as a real dependency.
	if typekey.IsNil(instance) {
		return nil, errInstantiationFailed(typekey.For(t), fmt.Errorf("constructor returned nil"))
	}

	return instance, nil
}

// zeroConstruct is the canonical default constructor for types without a
// registered one: a zero value, heap-allocated for pointer kinds.
func zeroConstruct(t reflect.Type) any {
	if t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.New(t).Elem().Interface()
}
