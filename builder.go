package inject

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Args holds explicit constructor parameter values by name.
type Args map[string]any

// CreateInstance builds an instance of c.
//
// Constructor parameters are resolved from reg as by [ResolveDependencies] in
// strict mode, except for those named in overrides, which the caller supplies.
// Overrides always take precedence over registry instances. Names that match
// no parameter are passed to the constructor's rest parameter, if there is one.
//
// Resolution errors are returned unchanged. A constructor that returns an
// error or panics yields an [InstanceCreationError], unless its error is
// itself one of this package's error kinds, which is returned as is.
func CreateInstance(c *Class, reg Registry, overrides Args) (any, error) {
	if c == nil {
		return nil, ErrClassNil
	}

	deps, err := ResolveDependencies(c, reg, withSupplied(overrides))
	if err != nil {
		return nil, err
	}

	values := make(map[string]any, len(deps)+len(overrides))
	for name, val := range deps {
		values[name] = val
	}
	for name, val := range overrides {
		values[name] = val
	}

	log := Logger().With().Str("class", c.name).Logger()

	instance, err := construct(c, values)
	if err != nil {
		log.Debug().Err(err).Msg("instance creation failed")
		return nil, err
	}

	log.Debug().Int("params", len(values)).Msg("instance created")
	return instance, nil
}

// Create builds an instance of c and returns it as T.
//
// Example:
//
//	widget, err := inject.Create[*Widget](widgetClass, store, inject.Args{"cache": cache})
func Create[T any](c *Class, reg Registry, overrides Args) (T, error) {
	var zero T

	instance, err := CreateInstance(c, reg, overrides)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, InstanceCreationError{
			Class: c.name,
			Cause: fmt.Errorf("instance is %s, not %s", formatType(reflect.TypeOf(instance)), formatType(reflect.TypeFor[T]())),
		}
	}

	return typed, nil
}

// construct calls the constructor of c with values.
func construct(c *Class, values map[string]any) (any, error) {
	if !c.hasCtor {
		return constructZero(c, values)
	}

	sig, err := c.signature()
	if err != nil {
		return nil, err
	}

	instance, err := sig.Invoke(values)
	if err == nil {
		return instance, nil
	}

	var panicErr PanicError
	if errors.As(err, &panicErr) {
		if ie, ok := panicErr.Value.(error); ok && IsInjectError(ie) {
			return nil, ie
		}
		return nil, InstanceCreationError{Class: c.name, Cause: err}
	}

	if IsInjectError(err) {
		return nil, err
	}

	return nil, InstanceCreationError{Class: c.name, Cause: err}
}

// constructZero builds a class that has no constructor of its own as a
// pointer to a zero value.
func constructZero(c *Class, values map[string]any) (any, error) {
	if len(values) > 0 {
		return nil, InstanceCreationError{
			Class: c.name,
			Cause: fmt.Errorf("%s takes no parameters: %w", c.name, UnexpectedParameterError{Names: slices.Sorted(maps.Keys(values))}),
		}
	}

	if c.typ.Kind() == reflect.Pointer {
		return reflect.New(c.typ.Elem()).Interface(), nil
	}
	return reflect.New(c.typ).Interface(), nil
}
