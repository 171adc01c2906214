package rivet

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorCodeString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeUnknown, "UNKNOWN"},
		{ErrCodeNilType, "NIL_TYPE"},
		{ErrCodeNilTarget, "NIL_TARGET"},
		{ErrCodeNoUsableConstructor, "NO_USABLE_CONSTRUCTOR"},
		{ErrCodeCircularDependency, "CIRCULAR_DEPENDENCY"},
		{ErrCodeInstantiationFailed, "INSTANTIATION_FAILED"},
		{ErrCodeMemberInjectionFailed, "MEMBER_INJECTION_FAILED"},
		{ErrCodeIncompatibleBinding, "INCOMPATIBLE_BINDING"},
		{ErrorCode(999), "UNKNOWN(999)"},
	}

	for _, tc := range cases {
		if got := tc.code.String(); got != tc.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying")
	err := errInstantiationFailed("pkg.Widget", cause)

	msg := err.Error()
	if !strings.Contains(msg, "INSTANTIATION_FAILED") {
		t.Errorf("expected the code in the message, got %q", msg)
	}
	if !strings.Contains(msg, "pkg.Widget") {
		t.Errorf("expected the type in the message, got %q", msg)
	}
	if !strings.Contains(msg, "underlying") {
		t.Errorf("expected the cause in the message, got %q", msg)
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := errMemberInjectionFailed("pkg.Widget", fmt.Errorf("field X: %w", cause))

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the root cause")
	}
}

func TestErrorIsMatchesOnCode(t *testing.T) {
	t.Parallel()

	a := errNoUsableConstructor("pkg.A", nil)
	b := errNoUsableConstructor("pkg.B", nil)

	if !errors.Is(a, b) {
		t.Error("expected two errors with the same code to match")
	}

	c := errNilTarget()
	if errors.Is(a, c) {
		t.Error("expected errors with different codes not to match")
	}
}

func TestCircularDependencyChain(t *testing.T) {
	t.Parallel()

	err := errCircularDependency([]string{"pkg.A", "pkg.B", "pkg.A"})

	if !strings.Contains(err.Error(), "pkg.A -> pkg.B -> pkg.A") {
		t.Errorf("expected the rendered chain, got %q", err.Error())
	}
	if err.Type != "pkg.A" {
		t.Errorf("expected the repeated type as Type, got %q", err.Type)
	}
}
