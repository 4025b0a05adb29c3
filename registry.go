package inject

import "reflect"

// Registry is the component store dependencies are looked up in.
//
// The inject package never creates, locks or disposes a Registry; its
// implementation is responsible for its own concurrency safety. Package
// registry provides an in-memory store and an adapter for go.uber.org/dig.
type Registry interface {
	// GetByType returns the instance registered for t, or false if there is none.
	GetByType(t reflect.Type) (any, bool)

	// RegisterType stores instance under type t and name.
	RegisterType(t reflect.Type, instance any, name string) error
}
