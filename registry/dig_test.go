package registry_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/junioryono/inject/registry"
)

func TestDig(t *testing.T) {
	t.Parallel()

	t.Run("register and get", func(t *testing.T) {
		t.Parallel()

		d := registry.NewDig(nil)
		svc := &service{ID: "dig"}
		require.NoError(t, d.RegisterType(serviceType, svc, ""))

		got, ok := d.GetByType(serviceType)
		require.True(t, ok)
		assert.Same(t, svc, got)
	})

	t.Run("named instance", func(t *testing.T) {
		t.Parallel()

		d := registry.NewDig(nil)
		svc := &service{ID: "named"}
		require.NoError(t, d.RegisterType(serviceType, svc, "primary"))

		got, ok := d.GetByName(serviceType, "primary")
		require.True(t, ok)
		assert.Same(t, svc, got)

		_, ok = d.GetByName(serviceType, "secondary")
		assert.False(t, ok)
	})

	t.Run("interface type", func(t *testing.T) {
		t.Parallel()

		d := registry.NewDig(nil)
		require.NoError(t, d.RegisterType(greeterType, english{}, ""))

		got, ok := d.GetByType(greeterType)
		require.True(t, ok)
		assert.Equal(t, "hello", got.(greeter).Greet())
	})

	t.Run("nil instance", func(t *testing.T) {
		t.Parallel()

		d := registry.NewDig(nil)
		require.NoError(t, d.RegisterType(greeterType, nil, ""))

		got, ok := d.GetByType(greeterType)
		require.True(t, ok)
		assert.Nil(t, got)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		d := registry.NewDig(nil)
		_, ok := d.GetByType(serviceType)
		assert.False(t, ok)
		_, ok = d.GetByType(nil)
		assert.False(t, ok)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		t.Parallel()

		d := registry.NewDig(nil)
		require.NoError(t, d.RegisterType(serviceType, &service{}, ""))
		assert.Error(t, d.RegisterType(serviceType, &service{}, ""))
	})

	t.Run("invalid registration", func(t *testing.T) {
		t.Parallel()

		d := registry.NewDig(nil)
		assert.ErrorIs(t, d.RegisterType(nil, 1, ""), registry.ErrTypeNil)
		assert.ErrorIs(t, d.RegisterType(greeterType, 1, ""), registry.ErrNotAssignable)
	})
}

func TestDigSharesContainer(t *testing.T) {
	t.Parallel()

	container := dig.New()
	require.NoError(t, container.Provide(func() *service { return &service{ID: "provided"} }))

	d := registry.NewDig(container)
	assert.Same(t, container, d.Container())

	got, ok := d.GetByType(serviceType)
	require.True(t, ok)
	assert.Equal(t, "provided", got.(*service).ID)

	require.NoError(t, d.RegisterType(greeterType, english{}, ""))
	require.NoError(t, container.Invoke(func(g greeter) {
		assert.Equal(t, "hello", g.Greet())
	}))
}

func TestDigLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := registry.NewDig(nil, registry.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	require.NoError(t, d.RegisterType(serviceType, &service{}, ""))
	_, _ = d.GetByType(reflect.TypeFor[greeter]())

	out := buf.String()
	assert.Contains(t, out, `"registry":"dig"`)
	assert.Contains(t, out, "type provided")
	assert.Contains(t, out, "type not resolvable")
}
