// Package rivettest provides test helpers around a rivet.Injector: a
// cleanup-managed injector plus Must/Assert wrappers that fail the test
// instead of returning errors.
package rivettest

import (
	"reflect"

	"github.com/rivetdi/rivet"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Cleanup(f func())
}

type TestInjector struct {
	*rivet.Injector
	tb TB
}

func New(tb TB, opts ...rivet.Option) *TestInjector {
	tb.Helper()

	in := rivet.New(opts...)
	ti := &TestInjector{
		Injector: in,
		tb:       tb,
	}

	tb.Cleanup(in.Reset)

	return ti
}

// MustBind binds value and fails the test on error.
func MustBind[T any](ti *TestInjector, value T) {
	ti.tb.Helper()

	if err := rivet.Bind(ti.Injector, value); err != nil {
		ti.tb.Fatalf("failed to bind %T: %v", value, err)
	}
}

// MustProvide registers a constructor for T and fails the test on error.
func MustProvide[T any](ti *TestInjector, ctor any) {
	ti.tb.Helper()

	if err := rivet.Provide[T](ti.Injector, ctor); err != nil {
		ti.tb.Fatalf("failed to provide constructor: %v", err)
	}
}

// MustInstance resolves T and fails the test on error.
func MustInstance[T any](ti *TestInjector) T {
	ti.tb.Helper()

	v, err := rivet.Instance[T](ti.Injector)
	if err != nil {
		ti.tb.Fatalf("failed to resolve %s: %v", reflect.TypeOf((*T)(nil)).Elem(), err)
	}
	return v
}

// RequireInject runs member injection on target and fails the test on error.
func (ti *TestInjector) RequireInject(target any) {
	ti.tb.Helper()

	if err := ti.InjectMembers(target); err != nil {
		ti.tb.Fatalf("failed to inject members into %T: %v", target, err)
	}
}

func AssertBound[T any](ti *TestInjector) {
	ti.tb.Helper()

	if !rivet.IsBound[T](ti.Injector) {
		ti.tb.Fatalf("expected a binding for %s", reflect.TypeOf((*T)(nil)).Elem())
	}
}

func AssertNotBound[T any](ti *TestInjector) {
	ti.tb.Helper()

	if rivet.IsBound[T](ti.Injector) {
		ti.tb.Fatalf("expected no binding for %s", reflect.TypeOf((*T)(nil)).Elem())
	}
}
