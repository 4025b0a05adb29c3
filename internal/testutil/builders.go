package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/junioryono/inject"
	"github.com/junioryono/inject/registry"
)

// RegistryBuilder provides a fluent interface for building test registries
type RegistryBuilder struct {
	t     *testing.T
	store *RecordingRegistry
}

// NewRegistryBuilder creates a new RegistryBuilder
func NewRegistryBuilder(t *testing.T) *RegistryBuilder {
	return &RegistryBuilder{
		t:     t,
		store: NewRecordingRegistry(),
	}
}

// With registers instance under type T
func With[T any](b *RegistryBuilder, instance T, opts ...inject.RegisterOption) *RegistryBuilder {
	b.t.Helper()
	require.NoError(b.t, inject.RegisterAs[T](b.store, instance, opts...))
	return b
}

// WithDatabase registers db as *Database
func (b *RegistryBuilder) WithDatabase(db *Database) *RegistryBuilder {
	b.t.Helper()
	return With(b, db)
}

// WithCache registers cache as Cache
func (b *RegistryBuilder) WithCache(cache Cache) *RegistryBuilder {
	b.t.Helper()
	return With(b, cache)
}

// Build returns the registry
func (b *RegistryBuilder) Build() *RecordingRegistry {
	return b.store
}

// Store returns the underlying store
func (b *RegistryBuilder) Store() *registry.Store {
	return b.store.Store
}
