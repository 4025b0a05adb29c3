package inject_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/inject"
	"github.com/junioryono/inject/internal/testutil"
)

func TestClassOf(t *testing.T) {
	t.Parallel()

	t.Run("describes the class", func(t *testing.T) {
		t.Parallel()

		class := widgetClass()
		assert.Equal(t, "Widget", class.Name())
		assert.Equal(t, "Widget", class.String())
		assert.Equal(t, reflect.TypeFor[*testutil.Widget](), class.Type())
		assert.Equal(t, "github.com/junioryono/inject/internal/testutil", class.Module())
		assert.True(t, class.HasConstructor())
	})

	t.Run("options", func(t *testing.T) {
		t.Parallel()

		class := widgetClass(inject.Named("FancyWidget"), inject.InModule("example.com/app"), nil)
		assert.Equal(t, "FancyWidget", class.Name())
		assert.Equal(t, "example.com/app", class.Module())
	})

	t.Run("without constructor", func(t *testing.T) {
		t.Parallel()

		assert.False(t, inject.ClassOf[testutil.Plain](nil).HasConstructor())
		assert.False(t, inject.ClassOf[testutil.Plain]((func() testutil.Plain)(nil)).HasConstructor())
	})
}

func TestClassParameters(t *testing.T) {
	t.Parallel()

	params, err := inject.ClassOf[*testutil.Gadget](testutil.NewGadget).Parameters()
	require.NoError(t, err)

	assert.Equal(t, []inject.Parameter{
		{Name: "db", Kind: inject.KindOrdinary, Type: reflect.TypeFor[*testutil.Database]()},
		{Name: "retries", Kind: inject.KindOrdinary, Type: reflect.TypeFor[int](), Default: 3, HasDefault: true},
		{Name: "label", Kind: inject.KindOrdinary, Type: reflect.TypeFor[string](), HasDefault: true},
		{Name: "extra", Kind: inject.KindRest, Type: reflect.TypeFor[map[string]any]()},
		{Name: "args", Kind: inject.KindVariadic, Type: reflect.TypeFor[string]()},
	}, params)

	params, err = reportClass("example.com/app").Parameters()
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Nil(t, params[1].Type)
	assert.Equal(t, "Logger", params[1].Ref)

	_, err = inject.ClassOf[Report](42).Parameters()
	assert.ErrorAs(t, err, new(inject.TypeHintError))
}
