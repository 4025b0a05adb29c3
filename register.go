package inject

import (
	"fmt"
	"reflect"
)

// RegisterOption configures [Register].
type RegisterOption interface {
	applyRegister(*registerOptions)
}

type registerOptions struct {
	name string
}

type registerOptionFunc func(*registerOptions)

func (f registerOptionFunc) applyRegister(opts *registerOptions) {
	f(opts)
}

// WithName registers the instance under name instead of the type's own name.
func WithName(name string) RegisterOption {
	return registerOptionFunc(func(opts *registerOptions) {
		opts.name = name
	})
}

// Register stores instance in reg under type t.
//
// The instance is registered under the name given with [WithName], or under
// [TypeName] of t. The instance is not checked against t.
func Register(reg Registry, t reflect.Type, instance any, opts ...RegisterOption) error {
	if reg == nil {
		return ErrRegistryNil
	}
	if t == nil {
		return ErrTypeNil
	}

	options := registerOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyRegister(&options)
		}
	}
	if options.name == "" {
		options.name = TypeName(t)
	}

	if err := reg.RegisterType(t, instance, options.name); err != nil {
		return fmt.Errorf("register %s as %q: %w", formatType(t), options.name, err)
	}

	Logger().Debug().
		Str("type", formatType(t)).
		Str("name", options.name).
		Msg("instance registered")

	return nil
}

// RegisterAs stores instance in reg under type T.
//
// Example:
//
//	err := inject.RegisterAs[Cache](store, redisCache)
func RegisterAs[T any](reg Registry, instance T, opts ...RegisterOption) error {
	return Register(reg, reflect.TypeFor[T](), instance, opts...)
}
