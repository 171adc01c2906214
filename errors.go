package rivet

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNilType
	ErrCodeNilTarget
	ErrCodeNoUsableConstructor
	ErrCodeCircularDependency
	ErrCodeInstantiationFailed
	ErrCodeMemberInjectionFailed
	ErrCodeIncompatibleBinding
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:               "UNKNOWN",
	ErrCodeNilType:               "NIL_TYPE",
	ErrCodeNilTarget:             "NIL_TARGET",
	ErrCodeNoUsableConstructor:   "NO_USABLE_CONSTRUCTOR",
	ErrCodeCircularDependency:    "CIRCULAR_DEPENDENCY",
	ErrCodeInstantiationFailed:   "INSTANTIATION_FAILED",
	ErrCodeMemberInjectionFailed: "MEMBER_INJECTION_FAILED",
	ErrCodeIncompatibleBinding:   "INCOMPATIBLE_BINDING",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the error type surfaced by every Injector entry point. Type names
// the requested or target type; Chain carries the full resolution chain for
// circular-dependency errors, in insertion order with the repeated type last.
type Error struct {
	Code    ErrorCode
	Message string
	Type    string
	Chain   []string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Type != "" {
		b.WriteString(fmt.Sprintf(" type=%q:", e.Type))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithType(typeName string) *Error {
	e.Type = typeName
	return e
}

func (e *Error) WithChain(chain []string) *Error {
	e.Chain = chain
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errNilType() *Error {
	return newError(ErrCodeNilType, "requested type is nil", nil)
}

func errNilTarget() *Error {
	return newError(ErrCodeNilTarget, "injection target is nil", nil)
}

func errNoUsableConstructor(typeName string, cause error) *Error {
	return newError(
		ErrCodeNoUsableConstructor,
		fmt.Sprintf("no usable constructor for %s", typeName),
		cause,
	).WithType(typeName)
}

func errCircularDependency(chain []string) *Error {
	return newError(
		ErrCodeCircularDependency,
		fmt.Sprintf("circular dependency detected: %s", strings.Join(chain, " -> ")),
		nil,
	).WithType(chain[len(chain)-1]).WithChain(chain)
}

func errInstantiationFailed(typeName string, cause error) *Error {
	return newError(
		ErrCodeInstantiationFailed,
		fmt.Sprintf("failed to instantiate %s", typeName),
		cause,
	).WithType(typeName)
}

func errMemberInjectionFailed(typeName string, cause error) *Error {
	return newError(
		ErrCodeMemberInjectionFailed,
		fmt.Sprintf("member injection failed for %s", typeName),
		cause,
	).WithType(typeName)
}

func errIncompatibleBinding(typeName, instanceTypeName string) *Error {
	return newError(
		ErrCodeIncompatibleBinding,
		fmt.Sprintf("instance of type %s is not assignable to %s", instanceTypeName, typeName),
		nil,
	).WithType(typeName)
}

func IsNilType(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNilType
}

func IsNilTarget(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNilTarget
}

func IsNoUsableConstructor(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNoUsableConstructor
}

func IsCircularDependency(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeCircularDependency
}

func IsInstantiationFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInstantiationFailed
}

func IsMemberInjectionFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeMemberInjectionFailed
}

func IsIncompatibleBinding(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeIncompatibleBinding
}
