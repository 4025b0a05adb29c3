package testutil

import (
	"reflect"
	"sync"

	"github.com/junioryono/inject/registry"
)

// RecordingRegistry wraps a registry.Store and records every type looked up.
type RecordingRegistry struct {
	*registry.Store

	mu      sync.Mutex
	lookups []reflect.Type
}

// NewRecordingRegistry creates an empty RecordingRegistry.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{Store: registry.New()}
}

// GetByType records t and delegates to the store.
func (r *RecordingRegistry) GetByType(t reflect.Type) (any, bool) {
	r.mu.Lock()
	r.lookups = append(r.lookups, t)
	r.mu.Unlock()
	return r.Store.GetByType(t)
}

// Lookups returns the types looked up so far, in order.
func (r *RecordingRegistry) Lookups() []reflect.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]reflect.Type(nil), r.lookups...)
}

// LookupCount returns how many times t was looked up.
func (r *RecordingRegistry) LookupCount(t reflect.Type) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.lookups {
		if l == t {
			n++
		}
	}
	return n
}

// Reset forgets recorded lookups.
func (r *RecordingRegistry) Reset() {
	r.mu.Lock()
	r.lookups = nil
	r.mu.Unlock()
}
