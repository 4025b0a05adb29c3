package inject_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/inject"
	"github.com/junioryono/inject/internal/testutil"
)

func TestLogger(t *testing.T) {
	// Save original logger to restore after tests
	original := *inject.Logger()
	t.Cleanup(func() {
		inject.SetLogger(original)
	})

	t.Run("default discards", func(t *testing.T) {
		assert.Equal(t, zerolog.Disabled, inject.Logger().GetLevel())
	})

	t.Run("records resolution decisions", func(t *testing.T) {
		var buf bytes.Buffer
		inject.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

		reg := testutil.NewRegistryBuilder(t).
			WithDatabase(testutil.NewDatabase()).
			WithCache(testutil.NewMemoryCache()).
			Build()

		_, err := inject.MarkInjectable(widgetClass())
		require.NoError(t, err)
		_, err = inject.CreateInstance(widgetClass(), reg, nil)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "class marked injectable")
		assert.Contains(t, out, "instance registered")
		assert.Contains(t, out, "dependency resolved")
		assert.Contains(t, out, "instance created")
	})

	t.Run("creation failures are logged", func(t *testing.T) {
		var buf bytes.Buffer
		inject.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

		class := inject.ClassOf[Report](func() (Report, error) { return Report{}, testutil.ErrConstructor })
		_, err := inject.CreateInstance(class, testutil.NewRecordingRegistry(), nil)
		require.Error(t, err)
		assert.Contains(t, buf.String(), "instance creation failed")
	})
}
