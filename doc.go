// Package inject resolves constructor dependencies against a service registry.
// A class is described by its type and its constructor; inject reads the
// constructor's declared parameters, looks each one up in a registry by type,
// and calls the constructor with the results merged with explicit overrides.
//
// # Overview
//
// The package provides:
//   - Parameter introspection of constructors with parameter structs
//   - Type references by name for parameters whose type cannot be imported
//   - Strict and tolerant dependency resolution
//   - Instance creation with explicit overrides
//   - Validation of classes before use
//   - An in-memory registry and a go.uber.org/dig adapter in package registry
//
// # Basic Usage
//
// Describe a class, register its dependencies, and create it:
//
//	type WidgetParams struct {
//	    inject.Params
//
//	    DB      *Database `inject:"db"`
//	    Cache   Cache     `inject:"cache"`
//	    Timeout int       `inject:"timeout" default:"30"`
//	}
//
//	func NewWidget(p WidgetParams) *Widget
//
//	var widgetClass = inject.MustMarkInjectable(inject.ClassOf[*Widget](NewWidget))
//
//	store := registry.New()
//	_ = inject.RegisterAs(store, db)
//	_ = inject.RegisterAs[Cache](store, cache)
//
//	widget, err := inject.Create[*Widget](widgetClass, store, nil)
//
// # Parameters
//
// Each exported field of the parameter struct is one parameter, named by its
// inject tag or by the field name. A parameter with a default tag or the
// optional flag is never looked up; the registry is only consulted for
// required parameters. A map[string]any field tagged rest collects named
// values that match no other parameter, and a Go variadic tail is exposed as
// a parameter named "args". Neither is ever resolved.
//
// # Type References
//
// A field of interface type may name its type by reference:
//
//	Engine any `inject:"engine,type=*store.Engine"`
//
// The name is looked up in the class's module, populated with [Declare]:
//
//	func init() {
//	    inject.MustDeclare[store.Engine](inject.As("store.Engine"), inject.InModule("example.com/app"))
//	}
//
// A name that is not declared yet does not make the class invalid. It is
// resolved again each time the class's dependencies are resolved.
//
// # Resolution Modes
//
// [ResolveDependencies] fails on the first parameter it cannot resolve. With
// [AllowMissing] those parameters are left out and the caller provides them.
// [CreateInstance] resolves strictly, treating every parameter named in its
// overrides as provided.
//
// # Error Handling
//
// Failures are typed. Use errors.As to inspect them:
//
//	var notFound inject.DependencyNotFoundError
//	if errors.As(err, &notFound) {
//	    log.Printf("%s needs a %s for %q", notFound.Class, notFound.TypeName, notFound.Param)
//	}
//
// # Logging
//
// Resolution decisions are logged at debug level through zerolog. Use
// [SetLogger] to install a logger; the default discards everything.
//
// # Thread Safety
//
// All package-level functions are safe for concurrent use. Type declarations
// and injectable marks are process-wide.
package inject
