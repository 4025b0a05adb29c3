package inject_test

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/junioryono/inject"
	"github.com/junioryono/inject/internal/testutil"
)

// ============================================================================
// Shared Test Types
// ============================================================================

// Report depends on a Logger declared by reference.
type Report struct {
	DB     *testutil.Database
	Logger testutil.Logger
}

type ReportParams struct {
	DB     *testutil.Database `inject:"db"`
	Logger any                `inject:"logger,type=Logger"`
}

func NewReport(p ReportParams) *Report {
	r := &Report{DB: p.DB}
	if l, ok := p.Logger.(testutil.Logger); ok {
		r.Logger = l
	}
	return r
}

type stdoutLogger struct{ lines []string }

func (l *stdoutLogger) Log(msg string) { l.lines = append(l.lines, msg) }

// Loose takes parameters that declare no type.
type Loose struct{}

type LooseParams struct {
	A any `inject:"a"`
	B any `inject:"b"`
	C any `inject:"c"`
}

func NewLoose(p LooseParams, args ...any) *Loose { return &Loose{} }

// ============================================================================
// Helpers
// ============================================================================

// uniqueModule returns a module path no other test declares types in.
func uniqueModule(t *testing.T) string {
	t.Helper()
	return "test/" + t.Name() + "/" + uuid.NewString()
}

func loggerType() reflect.Type {
	return reflect.TypeFor[testutil.Logger]()
}

func widgetClass(opts ...inject.ClassOption) *inject.Class {
	return inject.ClassOf[*testutil.Widget](testutil.NewWidget, opts...)
}

func reportClass(module string) *inject.Class {
	return inject.ClassOf[*Report](NewReport, inject.InModule(module))
}
