package reflection

import (
	"reflect"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// TypeRef is a parsed type reference such as "Cache", "*store.Engine" or "[]Plugin".
type TypeRef struct {
	Mods      []string `parser:"@(Star | Slice)*"`
	Name      string   `parser:"@Ident"`
	Qualified string   `parser:"( '.' @Ident )?"`
}

var typeRefParser = participle.MustBuild[TypeRef](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{Nd}_]*`},
		{Name: "Slice", Pattern: `\[\]`},
		{Name: "Star", Pattern: `\*`},
		{Name: "Punct", Pattern: `\.`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// ParseTypeRef parses a type reference.
func ParseTypeRef(text string) (*TypeRef, error) {
	return typeRefParser.ParseString("", text)
}

// Base returns the referenced type name without pointer or slice decoration.
func (r *TypeRef) Base() string {
	if r.Qualified != "" {
		return r.Name + "." + r.Qualified
	}
	return r.Name
}

// Wrap applies the reference's pointer and slice decoration to base.
func (r *TypeRef) Wrap(base reflect.Type) reflect.Type {
	t := base
	for i := len(r.Mods) - 1; i >= 0; i-- {
		if r.Mods[i] == "*" {
			t = reflect.PointerTo(t)
		} else {
			t = reflect.SliceOf(t)
		}
	}
	return t
}

// String returns the canonical form of the reference.
func (r *TypeRef) String() string {
	return strings.Join(r.Mods, "") + r.Base()
}
