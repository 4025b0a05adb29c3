package inject

import (
	"reflect"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Modules are process-wide type namespaces. A class resolves its type
// references in its own module, which defaults to the package path of the
// class type. Types are declared into a module with [Declare] or [DeclareType],
// typically from an init function, and may be declared after the classes that
// reference them.

type moduleKey struct {
	module string
	name   string
}

var moduleTypes = xsync.NewMapOf[moduleKey, reflect.Type]()

// ModuleOption selects the module for [ClassOf] and [Declare].
type ModuleOption interface {
	ClassOption
	DeclareOption
}

// DeclareOption configures [Declare].
type DeclareOption interface {
	applyDeclare(*declareOptions)
}

type declareOptions struct {
	module string
	name   string
}

type moduleOption string

func (o moduleOption) applyClass(c *Class) {
	c.module = string(o)
}

func (o moduleOption) applyDeclare(opts *declareOptions) {
	opts.module = string(o)
}

// InModule places a class or a declared type in the given module.
func InModule(path string) ModuleOption {
	return moduleOption(path)
}

type declareNameOption string

func (o declareNameOption) applyDeclare(opts *declareOptions) {
	opts.name = string(o)
}

// As declares a type under the given name instead of its own.
//
// The name may be qualified ("store.Engine") to mirror how the type would be
// written in the referencing package.
func As(name string) DeclareOption {
	return declareNameOption(name)
}

// Declare makes T resolvable by name from type references.
//
// By default T is declared under its own name in the module of its package.
//
// Example:
//
//	func init() {
//	    inject.MustDeclare[Cache]()
//	    inject.MustDeclare[*redis.Client](inject.As("redis.Client"), inject.InModule("example.com/app"))
//	}
func Declare[T any](opts ...DeclareOption) error {
	t := reflect.TypeFor[T]()

	options := declareOptions{
		module: modulePath(t),
		name:   TypeName(t),
	}
	for _, opt := range opts {
		if opt != nil {
			opt.applyDeclare(&options)
		}
	}

	return DeclareType(options.module, options.name, t)
}

// MustDeclare is like [Declare] but panics on error.
func MustDeclare[T any](opts ...DeclareOption) {
	if err := Declare[T](opts...); err != nil {
		panic(err)
	}
}

// DeclareType declares t under name in module.
//
// Redeclaring a name with the same type is a no-op; redeclaring it with a
// different type returns a [DuplicateTypeError].
func DeclareType(module, name string, t reflect.Type) error {
	if t == nil {
		return ErrTypeNil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameEmpty
	}

	key := moduleKey{module: module, name: name}
	existing, loaded := moduleTypes.LoadOrStore(key, t)
	if loaded && existing != t {
		return DuplicateTypeError{Module: module, Name: name, Existing: existing, Type: t}
	}

	if !loaded {
		Logger().Debug().
			Str("module", module).
			Str("name", name).
			Str("type", formatType(t)).
			Msg("type declared")
	}

	return nil
}

// LookupType returns the type declared under name in module.
func LookupType(module, name string) (reflect.Type, bool) {
	return moduleTypes.Load(moduleKey{module: module, name: name})
}

// TypeName returns the name of t without pointer or slice decoration,
// so *Database and []Database are both named "Database".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	base := t
	for base.Kind() == reflect.Pointer || base.Kind() == reflect.Slice {
		base = base.Elem()
	}

	if base.Name() != "" {
		return base.Name()
	}
	return formatType(t)
}
