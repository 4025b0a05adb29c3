package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/inject"
)

// AssertCreatable checks that c builds and returns the instance as T
func AssertCreatable[T any](t *testing.T, c *inject.Class, reg inject.Registry, overrides inject.Args) T {
	t.Helper()
	instance, err := inject.Create[T](c, reg, overrides)
	require.NoError(t, err, "failed to create %s", c)
	require.NotNil(t, instance, "created instance is nil")
	return instance
}

// AssertNotFound checks that err is a DependencyNotFoundError for param of type typeName
func AssertNotFound(t *testing.T, err error, class, param, typeName string) {
	t.Helper()
	require.Error(t, err)
	var nf inject.DependencyNotFoundError
	require.ErrorAs(t, err, &nf, "expected DependencyNotFoundError, got %T", err)
	assert.Equal(t, class, nf.Class)
	assert.Equal(t, param, nf.Param)
	assert.Equal(t, typeName, nf.TypeName)
}

// AssertCreationError checks that err is an InstanceCreationError for class and returns its cause
func AssertCreationError(t *testing.T, err error, class string) error {
	t.Helper()
	require.Error(t, err)
	var ce inject.InstanceCreationError
	require.ErrorAs(t, err, &ce, "expected InstanceCreationError, got %T", err)
	assert.Equal(t, class, ce.Class)
	return ce.Cause
}
