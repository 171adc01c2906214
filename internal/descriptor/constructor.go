package descriptor

import (
	"fmt"
	"reflect"
	"sync"
)

// Constructor holds the parsed metadata of a registered constructor function.
type Constructor struct {
	Fn           reflect.Value
	Params       []reflect.Type
	ReturnsError bool
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ParseConstructor validates fn as a constructor for target and extracts its
// parameter list. Accepted shapes are func(deps...) T and
// func(deps...) (T, error), where T is assignable to target.
func ParseConstructor(fn any, target reflect.Type) (*Constructor, error) {
	if fn == nil {
		return nil, fmt.Errorf("constructor is nil")
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()

	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %s", fnType.Kind())
	}

	numOut := fnType.NumOut()
	if numOut == 0 || numOut > 2 {
		return nil, fmt.Errorf("constructor must return T or (T, error), got %d return values", numOut)
	}

	if !fnType.Out(0).AssignableTo(target) {
		return nil, fmt.Errorf("constructor returns %s, not assignable to %s", fnType.Out(0), target)
	}

	returnsError := false
	if numOut == 2 {
		if !fnType.Out(1).Implements(errorType) {
			return nil, fmt.Errorf("constructor's second return value must be error, got %s", fnType.Out(1))
		}
		returnsError = true
	}

	if fnType.IsVariadic() {
		return nil, fmt.Errorf("variadic constructors are not supported")
	}

	params := make([]reflect.Type, fnType.NumIn())
	for i := range params {
		params[i] = fnType.In(i)
	}

	return &Constructor{
		Fn:           fnVal,
		Params:       params,
		ReturnsError: returnsError,
	}, nil
}

// Invoke calls the constructor with args. A panic inside the constructor is
// recovered and reported as an error.
func (c *Constructor) Invoke(args []reflect.Value) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("constructor panicked: %v", r)
		}
	}()

	results := c.Fn.Call(args)

	if c.ReturnsError && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}

	return results[0].Interface(), nil
}

// Constructors is the table of registered constructor functions, keyed by the
// exact requested type. Registering more than one constructor for a type is
// recorded and surfaces as ErrAmbiguousConstructor at descriptor time.
type Constructors struct {
	mu  sync.RWMutex
	fns map[reflect.Type][]*Constructor
}

func NewConstructors() *Constructors {
	return &Constructors{
		fns: make(map[reflect.Type][]*Constructor),
	}
}

// Add parses and records fn as a constructor for target.
func (cs *Constructors) Add(target reflect.Type, fn any) error {
	parsed, err := ParseConstructor(fn, target)
	if err != nil {
		return err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.fns[target] = append(cs.fns[target], parsed)
	return nil
}

// Lookup returns all constructors registered for target.
func (cs *Constructors) Lookup(target reflect.Type) []*Constructor {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return cs.fns[target]
}

// Types returns every type with at least one registered constructor.
func (cs *Constructors) Types() []reflect.Type {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := make([]reflect.Type, 0, len(cs.fns))
	for t := range cs.fns {
		out = append(out, t)
	}
	return out
}

// Len returns the number of types with at least one registered constructor.
func (cs *Constructors) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return len(cs.fns)
}
