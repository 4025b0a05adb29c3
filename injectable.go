package inject

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/junioryono/inject/internal/reflection"
)

var injectables = xsync.NewMapOf[*Class, struct{}]()

// MarkInjectable validates that c follows the constructor injection
// conventions and marks it as injectable.
//
// The class must have its own constructor ([NoConstructorError]), its
// signature must be introspectable ([TypeHintError]) and every non-variadic
// parameter must declare a type, directly or by reference. All untyped
// parameters are reported together in one [UntypedParametersError]. Type
// references that are not declared yet are accepted.
//
// On success c itself is returned, unchanged. Marking a class again is a no-op.
func MarkInjectable(c *Class) (*Class, error) {
	if c == nil {
		return nil, ErrClassNil
	}

	if !c.hasCtor {
		return nil, NoConstructorError{Class: c.name}
	}

	sig, err := c.signature()
	if err != nil {
		return nil, err
	}

	var untyped []string
	for _, p := range sig.Params {
		if p.Kind != reflection.Ordinary {
			continue
		}
		if !p.Typed() {
			untyped = append(untyped, p.Name)
		}
	}
	if len(untyped) > 0 {
		return nil, UntypedParametersError{Class: c.name, Params: untyped}
	}

	if _, err := extractAnnotations(c, sig); err != nil {
		return nil, err
	}

	if _, loaded := injectables.LoadOrStore(c, struct{}{}); !loaded {
		Logger().Debug().Str("class", c.name).Msg("class marked injectable")
	}

	return c, nil
}

// MustMarkInjectable is like [MarkInjectable] but panics on error.
// It is intended for package-level class declarations:
//
//	var widgetClass = inject.MustMarkInjectable(inject.ClassOf[Widget](NewWidget))
func MustMarkInjectable(c *Class) *Class {
	marked, err := MarkInjectable(c)
	if err != nil {
		panic(fmt.Sprintf("inject: %v", err))
	}
	return marked
}

// IsInjectable reports whether c has been marked by [MarkInjectable].
func IsInjectable(c *Class) bool {
	if c == nil {
		return false
	}
	_, ok := injectables.Load(c)
	return ok
}
