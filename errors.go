package inject

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/junioryono/inject/internal/reflection"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================

var (
	ErrClassNil    = errors.New("class cannot be nil")
	ErrRegistryNil = errors.New("registry cannot be nil")
	ErrTypeNil     = errors.New("type cannot be nil")
	ErrNameEmpty   = errors.New("name cannot be empty")
)

var (
	_ error = NoConstructorError{}
	_ error = TypeHintError{}
	_ error = UntypedParametersError{}
	_ error = NoTypeHintError{}
	_ error = ForwardReferenceError{}
	_ error = DependencyNotFoundError{}
	_ error = InstanceCreationError{}
	_ error = DuplicateTypeError{}
)

// Error types produced by the constructor machinery.
type (
	// UnexpectedParameterError reports values supplied for names the constructor does not accept.
	UnexpectedParameterError = reflection.UnexpectedParameterError

	// TypeMismatchError reports a supplied value that cannot be assigned to its parameter.
	TypeMismatchError = reflection.MismatchError

	// PanicError captures a panic raised by a constructor, with its stack.
	PanicError = reflection.PanicError
)

// injectError is implemented by every error kind of the resolution taxonomy.
type injectError interface {
	error
	injectError()
}

// ========================================
// Typed Errors
// ========================================

// NoConstructorError indicates a class has no constructor of its own to validate.
type NoConstructorError struct {
	Class string
}

func (e NoConstructorError) Error() string {
	return fmt.Sprintf("class %s has no constructor", e.Class)
}

// TypeHintError indicates the constructor signature could not be introspected,
// for reasons other than a type reference that is not declared yet.
type TypeHintError struct {
	Class string
	Cause error
}

func (e TypeHintError) Error() string {
	return fmt.Sprintf("failed to read type hints of %s: %v", e.Class, e.Cause)
}

func (e TypeHintError) Unwrap() error {
	return e.Cause
}

// UntypedParametersError lists every non-variadic constructor parameter that declares no type.
type UntypedParametersError struct {
	Class  string
	Params []string
}

func (e UntypedParametersError) Error() string {
	return fmt.Sprintf("class %s has untyped constructor parameters: %s", e.Class, strings.Join(e.Params, ", "))
}

// NoTypeHintError indicates a required parameter has no type to resolve against.
type NoTypeHintError struct {
	Class string
	Param string
}

func (e NoTypeHintError) Error() string {
	return fmt.Sprintf("parameter %q of %s has no type hint", e.Param, e.Class)
}

// ForwardReferenceError indicates a type reference could not be found in the class's module.
type ForwardReferenceError struct {
	Class string
	Param string
	Ref   string
}

func (e ForwardReferenceError) Error() string {
	return fmt.Sprintf("parameter %q of %s: cannot resolve type reference %q", e.Param, e.Class, e.Ref)
}

// DependencyNotFoundError indicates the registry holds no instance of the required type.
type DependencyNotFoundError struct {
	Class    string
	Param    string
	TypeName string
}

func (e DependencyNotFoundError) Error() string {
	return fmt.Sprintf("dependency %s not found for parameter %q of %s", e.TypeName, e.Param, e.Class)
}

// InstanceCreationError wraps a failure of the constructor itself.
type InstanceCreationError struct {
	Class string
	Cause error
}

func (e InstanceCreationError) Error() string {
	return fmt.Sprintf("failed to create %s: %v", e.Class, e.Cause)
}

func (e InstanceCreationError) Unwrap() error {
	return e.Cause
}

// DuplicateTypeError indicates a module name is already declared with a different type.
type DuplicateTypeError struct {
	Module   string
	Name     string
	Existing reflect.Type
	Type     reflect.Type
}

func (e DuplicateTypeError) Error() string {
	return fmt.Sprintf("type %s already declared in module %q as %s, cannot redeclare as %s",
		e.Name, e.Module, formatType(e.Existing), formatType(e.Type))
}

func (NoConstructorError) injectError()      {}
func (TypeHintError) injectError()           {}
func (UntypedParametersError) injectError()  {}
func (NoTypeHintError) injectError()         {}
func (ForwardReferenceError) injectError()   {}
func (DependencyNotFoundError) injectError() {}
func (InstanceCreationError) injectError()   {}

// IsInjectError reports whether err is, or wraps, one of the resolution error kinds.
func IsInjectError(err error) bool {
	var ie injectError
	return errors.As(err, &ie)
}

// IsNotFound reports whether err is, or wraps, a [DependencyNotFoundError].
func IsNotFound(err error) bool {
	var nf DependencyNotFoundError
	return errors.As(err, &nf)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + formatType(t.Elem())
	case reflect.Slice:
		return "[]" + formatType(t.Elem())
	case reflect.Map:
		return "map[" + formatType(t.Key()) + "]" + formatType(t.Elem())
	case reflect.Interface:
		if t.Name() != "" {
			return t.Name()
		}
		if t.NumMethod() == 0 {
			return "any"
		}
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
