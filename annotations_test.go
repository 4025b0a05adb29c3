package inject_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/inject"
	"github.com/junioryono/inject/internal/testutil"
)

func TestExtractAnnotations(t *testing.T) {
	t.Parallel()

	t.Run("concrete types", func(t *testing.T) {
		t.Parallel()

		anns, err := inject.ExtractAnnotations(widgetClass())
		require.NoError(t, err)

		assert.Equal(t, inject.Annotations{
			"db":      {Type: reflect.TypeFor[*testutil.Database]()},
			"cache":   {Type: reflect.TypeFor[testutil.Cache]()},
			"timeout": {Type: reflect.TypeFor[int]()},
		}, anns)
	})

	t.Run("undeclared reference is kept as text", func(t *testing.T) {
		t.Parallel()

		anns, err := inject.ExtractAnnotations(reportClass(uniqueModule(t)))
		require.NoError(t, err)
		require.Len(t, anns, 2)

		assert.True(t, anns["db"].Resolved())
		assert.Equal(t, reflect.TypeFor[*testutil.Database](), anns["db"].Type)

		logger := anns["logger"]
		assert.False(t, logger.Resolved())
		assert.Equal(t, "Logger", logger.Ref)
		assert.Equal(t, `"Logger"`, logger.String())
	})

	t.Run("declared reference resolves", func(t *testing.T) {
		t.Parallel()

		module := uniqueModule(t)
		require.NoError(t, inject.DeclareType(module, "Logger", loggerType()))

		anns, err := inject.ExtractAnnotations(reportClass(module))
		require.NoError(t, err)
		assert.True(t, anns["logger"].Resolved())
		assert.Equal(t, loggerType(), anns["logger"].Type)
		assert.Equal(t, "Logger", anns["logger"].String())
	})

	t.Run("reference declared after first extraction", func(t *testing.T) {
		t.Parallel()

		module := uniqueModule(t)
		class := reportClass(module)

		anns, err := inject.ExtractAnnotations(class)
		require.NoError(t, err)
		assert.False(t, anns["logger"].Resolved())

		require.NoError(t, inject.DeclareType(module, "Logger", loggerType()))

		anns, err = inject.ExtractAnnotations(class)
		require.NoError(t, err)
		assert.True(t, anns["logger"].Resolved())
	})

	t.Run("pointer and slice references wrap the declared type", func(t *testing.T) {
		t.Parallel()

		type params struct {
			DB   any `inject:"db,type=*Database"`
			Many any `inject:"many,type=[]*Database"`
		}
		module := uniqueModule(t)
		require.NoError(t, inject.DeclareType(module, "Database", reflect.TypeFor[testutil.Database]()))

		class := inject.ClassOf[Report](func(params) Report { return Report{} }, inject.InModule(module))
		anns, err := inject.ExtractAnnotations(class)
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeFor[*testutil.Database](), anns["db"].Type)
		assert.Equal(t, reflect.TypeFor[[]*testutil.Database](), anns["many"].Type)
	})

	t.Run("one undeclared reference defers all of them", func(t *testing.T) {
		t.Parallel()

		type params struct {
			Known   any `inject:"known,type=Logger"`
			Unknown any `inject:"unknown,type=Missing"`
		}
		module := uniqueModule(t)
		require.NoError(t, inject.DeclareType(module, "Logger", loggerType()))

		class := inject.ClassOf[Report](func(params) Report { return Report{} }, inject.InModule(module))
		anns, err := inject.ExtractAnnotations(class)
		require.NoError(t, err)
		assert.Equal(t, inject.Annotation{Ref: "Logger"}, anns["known"])
		assert.Equal(t, inject.Annotation{Ref: "Missing"}, anns["unknown"])
	})

	t.Run("untyped parameters are absent", func(t *testing.T) {
		t.Parallel()

		anns, err := inject.ExtractAnnotations(inject.ClassOf[*Loose](NewLoose))
		require.NoError(t, err)
		assert.Empty(t, anns)
	})

	t.Run("class without constructor", func(t *testing.T) {
		t.Parallel()

		anns, err := inject.ExtractAnnotations(inject.ClassOf[testutil.Plain](nil))
		require.NoError(t, err)
		assert.Empty(t, anns)
	})
}

func TestExtractAnnotationsErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil class", func(t *testing.T) {
		t.Parallel()

		_, err := inject.ExtractAnnotations(nil)
		assert.ErrorIs(t, err, inject.ErrClassNil)
	})

	t.Run("malformed reference", func(t *testing.T) {
		t.Parallel()

		type params struct {
			Logger any `inject:"logger,type=Logger["`
		}
		class := inject.ClassOf[Report](func(params) Report { return Report{} }, inject.InModule(uniqueModule(t)))

		_, err := inject.ExtractAnnotations(class)
		var hintErr inject.TypeHintError
		require.ErrorAs(t, err, &hintErr)
		assert.Equal(t, "Report", hintErr.Class)
		assert.Contains(t, err.Error(), "malformed type reference")
	})

	t.Run("constructor is not a function", func(t *testing.T) {
		t.Parallel()

		_, err := inject.ExtractAnnotations(inject.ClassOf[Report]("NewReport"))
		var hintErr inject.TypeHintError
		require.ErrorAs(t, err, &hintErr)
		assert.True(t, inject.IsInjectError(err))
	})

	t.Run("constructor returns another type", func(t *testing.T) {
		t.Parallel()

		_, err := inject.ExtractAnnotations(inject.ClassOf[Report](testutil.NewDatabase))
		assert.ErrorAs(t, err, new(inject.TypeHintError))
	})
}
