// Package typekey derives stable string keys for reflect types. Keys are
// used in error messages, debug output, and observer hooks.
package typekey

import (
	"fmt"
	"reflect"
	"sync"
)

var keyCache sync.Map

// For returns the canonical key for t, e.g. "*github.com/acme/app.Config".
func For(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if cached, ok := keyCache.Load(t); ok {
		return cached.(string)
	}

	key := build(t)
	keyCache.Store(t, key)
	return key
}

func build(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + build(t.Elem())
	case reflect.Slice:
		return "[]" + build(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), build(t.Elem()))
	case reflect.Map:
		return "map[" + build(t.Key()) + "]" + build(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + build(t.Elem())
		case reflect.SendDir:
			return "chan<- " + build(t.Elem())
		default:
			return "chan " + build(t.Elem())
		}
	case reflect.Func:
		return t.String()
	default:
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		return t.String()
	}
}

// ForValue returns the key for v's dynamic type.
func ForValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	return For(reflect.TypeOf(v))
}

// Of returns the reflect type for T. Works for interface types, where
// reflect.TypeOf on a zero value would yield nil.
func Of[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t
}

// Name returns the short display name for t (package-qualified, without the
// full import path).
func Name(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// IsNil reports whether v is nil or wraps a nil pointer, map, slice, chan,
// func, or interface value.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
