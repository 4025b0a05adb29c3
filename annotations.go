package inject

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/junioryono/inject/internal/reflection"
)

// Annotation is the declared type of a constructor parameter.
//
// Either Type is set, or Ref holds the text of a type reference that could not
// be resolved yet.
type Annotation struct {
	Type reflect.Type
	Ref  string
}

// Resolved reports whether the annotation holds a real type.
func (a Annotation) Resolved() bool {
	return a.Type != nil
}

func (a Annotation) String() string {
	if a.Type != nil {
		return formatType(a.Type)
	}
	return fmt.Sprintf("%q", a.Ref)
}

// Annotations maps constructor parameter names to their declared types.
// Parameters that declare no type are absent.
type Annotations map[string]Annotation

// unresolvedRefError signals a type reference whose name is not declared (yet).
type unresolvedRefError struct {
	ref string
}

func (e unresolvedRefError) Error() string {
	return fmt.Sprintf("type %q is not declared", e.ref)
}

// ExtractAnnotations returns the declared type of every constructor parameter of c.
//
// Type references are resolved in the class's module. If a referenced name is
// not declared yet, extraction does not fail: every reference is kept as its
// text and resolution is deferred to [ResolveDependencies]. A signature that
// cannot be introspected, or a malformed reference, returns a [TypeHintError].
func ExtractAnnotations(c *Class) (Annotations, error) {
	if c == nil {
		return nil, ErrClassNil
	}

	sig, err := c.signature()
	if err != nil {
		return nil, err
	}

	return extractAnnotations(c, sig)
}

func extractAnnotations(c *Class, sig *reflection.Signature) (Annotations, error) {
	anns, err := evaluateAnnotations(c, sig)
	if err == nil {
		return anns, nil
	}

	var unresolved unresolvedRefError
	if !errors.As(err, &unresolved) {
		return nil, TypeHintError{Class: c.name, Cause: err}
	}

	Logger().Debug().
		Str("class", c.name).
		Str("ref", unresolved.ref).
		Msg("deferring unresolved type references")

	return rawAnnotations(sig), nil
}

// evaluateAnnotations resolves every parameter's type, failing on the first
// reference that cannot be resolved. Malformed references are reported before
// undeclared ones.
func evaluateAnnotations(c *Class, sig *reflection.Signature) (Annotations, error) {
	refs := make(map[string]*reflection.TypeRef)
	for _, p := range sig.Params {
		if p.Ref == "" {
			continue
		}
		ref, err := reflection.ParseTypeRef(p.Ref)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: malformed type reference %q: %w", p.Name, p.Ref, err)
		}
		refs[p.Name] = ref
	}

	anns := make(Annotations, len(sig.Params))
	for _, p := range sig.Params {
		switch {
		case p.Type != nil:
			anns[p.Name] = Annotation{Type: p.Type}
		case p.Ref != "":
			t, ok := lookupRef(c.module, refs[p.Name])
			if !ok {
				return nil, unresolvedRefError{ref: p.Ref}
			}
			anns[p.Name] = Annotation{Type: t}
		}
	}

	return anns, nil
}

// rawAnnotations reads the declared types straight off the signature,
// keeping every type reference as text.
func rawAnnotations(sig *reflection.Signature) Annotations {
	anns := make(Annotations, len(sig.Params))
	for _, p := range sig.Params {
		switch {
		case p.Type != nil:
			anns[p.Name] = Annotation{Type: p.Type}
		case p.Ref != "":
			anns[p.Name] = Annotation{Ref: p.Ref}
		}
	}
	return anns
}

// resolveRef parses and looks up a type reference in module.
func resolveRef(module, text string) (reflect.Type, bool) {
	ref, err := reflection.ParseTypeRef(text)
	if err != nil {
		return nil, false
	}
	return lookupRef(module, ref)
}

func lookupRef(module string, ref *reflection.TypeRef) (reflect.Type, bool) {
	base, ok := LookupType(module, ref.Base())
	if !ok {
		return nil, false
	}
	return ref.Wrap(base), true
}
