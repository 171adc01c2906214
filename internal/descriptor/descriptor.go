// Package descriptor computes injection metadata for types: the constructor
// chosen for reflective construction, the ordered injectable fields, and the
// ordered injectable methods. Descriptors are expensive to compute and are
// cached for the life of the process by Cache.
package descriptor

import (
	"errors"
	"reflect"
)

// TagKey is the struct tag that marks a field as injectable.
const TagKey = "rivet"

// MethodPrefix marks a pointer-receiver method as injectable. Every
// parameter of such a method is resolved and the method is invoked during
// member injection.
const MethodPrefix = "Inject"

var (
	// ErrNoConstructor is returned when a type has no registered constructor
	// and no usable default (non-struct kinds cannot be zero-constructed).
	ErrNoConstructor = errors.New("no usable constructor")

	// ErrAmbiguousConstructor is returned when more than one constructor is
	// registered for the same type. This is a configuration error, never a
	// silent pick.
	ErrAmbiguousConstructor = errors.New("multiple constructors registered")
)

// Field describes one injectable struct field.
type Field struct {
	// Index is the reflect field index path; more than one element means the
	// field is declared on an embedded struct.
	Index []int
	Name  string
	Type  reflect.Type
	// Optional fields tolerate an unresolvable dependency and are skipped
	// instead of failing the whole injection.
	Optional bool
}

// Method describes one injectable method.
type Method struct {
	Name   string
	Index  int
	Params []reflect.Type
	// ReturnsError is set when the method's single return value is an error.
	ReturnsError bool
}

// Descriptor is the cached injection metadata for one type.
type Descriptor struct {
	Type reflect.Type

	// Ctor is the registered constructor, or nil when the type falls back to
	// zero-value construction (struct and pointer-to-struct kinds only).
	Ctor *Constructor

	// Fields in injection order: embedded-struct fields first, then the
	// outer struct's own fields, each group in declaration order.
	Fields []Field

	// Methods in reflect's method-set order (sorted by name).
	Methods []Method
}

// Provider yields descriptors for types. Implementations must be safe for
// concurrent use. The default chain is NewCache(NewScanner(ctors)).
type Provider interface {
	DescriptorFor(t reflect.Type) (*Descriptor, error)
}
