package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/dig"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Dig adapts a go.uber.org/dig container to the registry contract.
//
// Instances are provided as constant constructors, so a type can be
// registered only once; dig reports a second registration as an error.
type Dig struct {
	container *dig.Container
	mu        sync.Mutex
	log       zerolog.Logger
}

// NewDig wraps container. A nil container is replaced by a new one.
func NewDig(container *dig.Container, opts ...Option) *Dig {
	if container == nil {
		container = dig.New()
	}

	o := newOptions(opts)
	return &Dig{
		container: container,
		log:       o.logger.With().Str("registry", "dig").Logger(),
	}
}

// Container returns the wrapped dig container.
func (d *Dig) Container() *dig.Container {
	return d.container
}

// RegisterType provides instance as t, and as t named name when name is not empty.
func (d *Dig) RegisterType(t reflect.Type, instance any, name string) error {
	if t == nil {
		return ErrTypeNil
	}
	if instance != nil && !reflect.TypeOf(instance).AssignableTo(t) {
		return fmt.Errorf("dig provide %s: %w", t, ErrNotAssignable)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.container.Provide(constant(t, instance)); err != nil {
		return fmt.Errorf("dig provide %s: %w", t, err)
	}

	if name != "" {
		if err := d.container.Provide(constant(t, instance), dig.Name(name)); err != nil {
			return fmt.Errorf("dig provide %s named %q: %w", t, name, err)
		}
	}

	d.log.Debug().Str("type", t.String()).Str("name", name).Msg("type provided")
	return nil
}

// GetByType invokes the container for an instance of t.
func (d *Dig) GetByType(t reflect.Type) (any, bool) {
	if t == nil {
		return nil, false
	}

	var result any
	fnType := reflect.FuncOf([]reflect.Type{t}, []reflect.Type{errorType}, false)
	fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		result = args[0].Interface()
		return []reflect.Value{reflect.Zero(errorType)}
	})

	d.mu.Lock()
	err := d.container.Invoke(fn.Interface())
	d.mu.Unlock()

	if err != nil {
		d.log.Debug().Str("type", t.String()).Err(err).Msg("type not resolvable")
		return nil, false
	}

	return result, true
}

// GetByName invokes the container for the instance of t provided under name.
func (d *Dig) GetByName(t reflect.Type, name string) (any, bool) {
	if t == nil {
		return nil, false
	}

	paramType := reflect.StructOf([]reflect.StructField{
		{
			Name:      "In",
			Type:      reflect.TypeOf(dig.In{}),
			Anonymous: true,
		},
		{
			Name: "Service",
			Type: t,
			Tag:  reflect.StructTag(fmt.Sprintf(`name:"%s"`, name)),
		},
	})

	var result any
	fnType := reflect.FuncOf([]reflect.Type{paramType}, []reflect.Type{errorType}, false)
	fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		result = args[0].FieldByName("Service").Interface()
		return []reflect.Value{reflect.Zero(errorType)}
	})

	d.mu.Lock()
	err := d.container.Invoke(fn.Interface())
	d.mu.Unlock()

	if err != nil {
		return nil, false
	}

	return result, true
}

// constant returns a dig constructor of type func() t that always returns instance.
func constant(t reflect.Type, instance any) any {
	fnType := reflect.FuncOf(nil, []reflect.Type{t}, false)
	return reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		v := reflect.New(t).Elem()
		if instance != nil {
			v.Set(reflect.ValueOf(instance))
		}
		return []reflect.Value{v}
	}).Interface()
}
