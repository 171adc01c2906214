package descriptor

import (
	"fmt"
	"reflect"
	"strings"
)

// Scanner is the default Provider. It picks the constructor from the
// registered table (falling back to zero-value construction for struct
// kinds), scans `rivet`-tagged fields, and scans Inject-prefixed methods.
type Scanner struct {
	ctors *Constructors
}

func NewScanner(ctors *Constructors) *Scanner {
	return &Scanner{ctors: ctors}
}

func (s *Scanner) DescriptorFor(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("nil type")
	}

	d := &Descriptor{Type: t}

	registered := s.ctors.Lookup(t)
	switch len(registered) {
	case 0:
		if !zeroConstructible(t) {
			return nil, fmt.Errorf("%w for %s", ErrNoConstructor, t)
		}
	case 1:
		d.Ctor = registered[0]
	default:
		return nil, fmt.Errorf("%w for %s (%d found)", ErrAmbiguousConstructor, t, len(registered))
	}

	base := t
	if base.Kind() == reflect.Ptr {
		base = base.Elem()
	}

	if base.Kind() == reflect.Struct {
		fields, err := scanFields(base, nil)
		if err != nil {
			return nil, err
		}
		d.Fields = fields
	}

	if t.Kind() == reflect.Ptr && base.Kind() == reflect.Struct {
		methods, err := scanMethods(t)
		if err != nil {
			return nil, err
		}
		d.Methods = methods
	}

	return d, nil
}

// zeroConstructible reports whether t can be built without a constructor.
// Struct and pointer-to-struct kinds default to their zero value; everything
// else needs a registered constructor or a binding.
func zeroConstructible(t reflect.Type) bool {
	if t.Kind() == reflect.Struct {
		return true
	}
	return t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct
}

// scanFields walks t's fields in declaration order, recursing into anonymous
// embedded structs first so that embedded-struct fields precede the outer
// struct's own fields.
func scanFields(t reflect.Type, index []int) ([]Field, error) {
	var embedded, own []Field

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		path := append(append([]int(nil), index...), i)

		tag, tagged := sf.Tag.Lookup(TagKey)

		if sf.Anonymous && !tagged {
			et := sf.Type
			if et.Kind() == reflect.Ptr {
				et = et.Elem()
			}
			if et.Kind() != reflect.Struct || sf.Type.Kind() == reflect.Ptr {
				// Embedded pointers are not traversed; the nested struct may
				// be nil at injection time.
				continue
			}
			nested, err := scanFields(et, path)
			if err != nil {
				return nil, err
			}
			embedded = append(embedded, nested...)
			continue
		}

		if !tagged {
			continue
		}

		if sf.PkgPath != "" {
			return nil, fmt.Errorf("injectable field %s.%s is unexported", t, sf.Name)
		}

		optional, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t, sf.Name, err)
		}

		own = append(own, Field{
			Index:    path,
			Name:     sf.Name,
			Type:     sf.Type,
			Optional: optional,
		})
	}

	return append(embedded, own...), nil
}

func parseTag(tag string) (optional bool, err error) {
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		return false, fmt.Errorf("named bindings are not supported, got tag %q", tag)
	}

	for _, opt := range parts[1:] {
		switch opt {
		case "optional":
			optional = true
		default:
			return false, fmt.Errorf("unknown tag option %q", opt)
		}
	}

	return optional, nil
}

// scanMethods collects Inject-prefixed methods from t's method set. Ordering
// follows reflect, which sorts methods by name.
func scanMethods(t reflect.Type) ([]Method, error) {
	var methods []Method

	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !strings.HasPrefix(m.Name, MethodPrefix) || m.Name == MethodPrefix {
			continue
		}

		mt := m.Type

		returnsError := false
		switch mt.NumOut() {
		case 0:
		case 1:
			if !mt.Out(0).Implements(errorType) {
				return nil, fmt.Errorf("injectable method %s.%s must return nothing or error, got %s", t, m.Name, mt.Out(0))
			}
			returnsError = true
		default:
			return nil, fmt.Errorf("injectable method %s.%s must return nothing or error, got %d return values", t, m.Name, mt.NumOut())
		}

		// In(0) is the receiver.
		params := make([]reflect.Type, mt.NumIn()-1)
		for j := range params {
			params[j] = mt.In(j + 1)
		}

		methods = append(methods, Method{
			Name:         m.Name,
			Index:        m.Index,
			Params:       params,
			ReturnsError: returnsError,
		})
	}

	return methods, nil
}
