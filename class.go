package inject

import (
	"reflect"

	"github.com/junioryono/inject/internal/reflection"
)

// Params may be embedded in a constructor's parameter struct to mark it as such.
// Embedding is optional; any struct taken as the sole non-variadic argument is
// treated as the parameter struct.
//
// Each exported field is one constructor parameter. The field is configured
// with struct tags:
//   - `inject:"name"` - parameter name (defaults to the field name)
//   - `inject:",optional"` - the parameter has a default (its zero value)
//   - `inject:",type=Cache"` - the type is named by reference, resolved in the class's module
//   - `inject:",rest"` - a map[string]any that receives values matching no other parameter
//   - `inject:"-"` - the field is not a parameter
//   - `default:"30"` - the parameter's default value, decoded into the field type
//
// Example:
//
//	type WidgetParams struct {
//	    inject.Params
//
//	    DB      *Database     `inject:"db"`
//	    Cache   Cache         `inject:"cache"`
//	    Timeout time.Duration `inject:"timeout" default:"30s"`
//	}
//
//	func NewWidget(p WidgetParams) (*Widget, error)
type Params = reflection.Params

// ParamKind classifies a constructor parameter.
type ParamKind = reflection.Kind

const (
	// KindOrdinary is a named parameter backed by a parameter struct field.
	KindOrdinary = reflection.Ordinary

	// KindVariadic is the constructor's Go variadic tail. It is named "args".
	KindVariadic = reflection.Variadic

	// KindRest is a map[string]any field receiving unmatched named values.
	KindRest = reflection.Rest
)

// Parameter describes one constructor parameter.
type Parameter struct {
	Name string
	Kind ParamKind

	// Type is the declared type, nil when the parameter declares none or
	// declares it by reference.
	Type reflect.Type

	// Ref is the raw type reference text, if any.
	Ref string

	// Default is the default value; nil for optional parameters without a default tag.
	Default    any
	HasDefault bool
}

// Class describes a constructible type: its name, defining module and constructor.
type Class struct {
	name    string
	module  string
	typ     reflect.Type
	ctor    reflect.Value
	hasCtor bool
}

// ClassOption configures a [Class] created by [ClassOf].
type ClassOption interface {
	applyClass(*Class)
}

type classOptionFunc func(*Class)

func (f classOptionFunc) applyClass(c *Class) {
	f(c)
}

// Named overrides the class name used in errors and logs.
func Named(name string) ClassOption {
	return classOptionFunc(func(c *Class) {
		if name != "" {
			c.name = name
		}
	})
}

// ClassOf describes class T built by ctor.
//
// The constructor must return T or *T, optionally followed by an error. It may
// take a single parameter struct and a variadic tail. A nil ctor describes a
// class without a constructor of its own; building it yields a pointer to a
// zero value.
// The class's module defaults to T's package path.
//
// ClassOf does not validate the constructor; [MarkInjectable],
// [ExtractAnnotations] and [ResolveDependencies] report signature problems.
func ClassOf[T any](ctor any, opts ...ClassOption) *Class {
	t := reflect.TypeFor[T]()

	c := &Class{
		name:   TypeName(t),
		module: modulePath(t),
		typ:    t,
	}

	if ctor != nil {
		c.ctor = reflect.ValueOf(ctor)
		c.hasCtor = c.ctor.Kind() != reflect.Func || !c.ctor.IsNil()
	}

	for _, opt := range opts {
		if opt != nil {
			opt.applyClass(c)
		}
	}

	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Type returns the class's type.
func (c *Class) Type() reflect.Type {
	return c.typ
}

// Module returns the module path type references are resolved in.
func (c *Class) Module() string {
	return c.module
}

// HasConstructor reports whether the class has a constructor of its own.
func (c *Class) HasConstructor() bool {
	return c.hasCtor
}

// String returns the class name.
func (c *Class) String() string {
	return c.name
}

// Parameters returns the constructor parameters in declaration order.
func (c *Class) Parameters() ([]Parameter, error) {
	sig, err := c.signature()
	if err != nil {
		return nil, err
	}

	params := make([]Parameter, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = Parameter{
			Name:       p.Name,
			Kind:       p.Kind,
			Type:       p.Type,
			Ref:        p.Ref,
			HasDefault: p.HasDefault,
		}
		if p.Default.IsValid() {
			params[i].Default = p.Default.Interface()
		}
	}

	return params, nil
}

// signature analyzes the constructor. A class without a constructor has an
// empty signature.
func (c *Class) signature() (*reflection.Signature, error) {
	if !c.hasCtor {
		return &reflection.Signature{}, nil
	}

	sig, err := reflection.Analyze(c.ctor, c.typ)
	if err != nil {
		return nil, TypeHintError{Class: c.name, Cause: err}
	}

	return sig, nil
}

// modulePath returns the package path of t, looking through pointers and slices.
func modulePath(t reflect.Type) string {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	return t.PkgPath()
}
