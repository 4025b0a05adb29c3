package reflection

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Params is embedded in a parameter struct to mark it as a constructor parameter object.
type Params struct{}

// Kind classifies a constructor parameter.
type Kind int

const (
	// Ordinary is a named parameter backed by a parameter struct field.
	Ordinary Kind = iota

	// Variadic is the Go variadic tail of the constructor.
	Variadic

	// Rest is a map[string]any field that collects unmatched named values.
	Rest
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Ordinary:
		return "ordinary"
	case Variadic:
		return "variadic"
	case Rest:
		return "rest"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// VariadicName is the parameter name assigned to a constructor's variadic tail.
const VariadicName = "args"

var (
	paramsType = reflect.TypeOf(Params{})
	errType    = reflect.TypeOf((*error)(nil)).Elem()
	restType   = reflect.TypeOf(map[string]any(nil))
)

// Param describes one constructor parameter.
type Param struct {
	Name string
	Kind Kind

	// Type is the declared Go type. It is nil for fields of the empty interface
	// type and for fields that name their type through a reference.
	Type reflect.Type

	// Ref is the raw type reference from the tag, if any.
	Ref string

	// FieldType is the Go type of the backing field (or slice type for Variadic).
	FieldType reflect.Type

	// FieldIndex is the struct field index, or -1 for the variadic tail.
	FieldIndex int

	// Default holds the decoded default value when HasDefault is set.
	// It is the zero Value for optional parameters.
	Default    reflect.Value
	HasDefault bool
}

// Typed reports whether the parameter declares a type, directly or by reference.
func (p Param) Typed() bool {
	return p.Type != nil || p.Ref != ""
}

// Signature is the analyzed shape of a constructor function.
type Signature struct {
	Func       reflect.Value
	FuncType   reflect.Type
	ParamsType reflect.Type // nil when the constructor takes no parameter struct
	Params     []Param
	Result     reflect.Type
	HasError   bool
}

// Param returns the parameter with the given name.
func (s *Signature) Param(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// RestParam returns the Rest parameter, if the signature has one.
func (s *Signature) RestParam() (Param, bool) {
	for _, p := range s.Params {
		if p.Kind == Rest {
			return p, true
		}
	}
	return Param{}, false
}

// TagInfo contains parsed inject tag information.
type TagInfo struct {
	Name     string
	Ref      string
	Optional bool
	Rest     bool
	Ignore   bool
}

// Analyze inspects a constructor producing target (or *target) and returns its signature.
//
// Supported shapes are func(P) R, func(P) (R, error), func() R, and any of these
// with a trailing variadic parameter, where P is a struct and R is target or *target.
func Analyze(ctor reflect.Value, target reflect.Type) (*Signature, error) {
	if !ctor.IsValid() || ctor.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %s", kindOf(ctor))
	}
	if ctor.IsNil() {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	fnType := ctor.Type()
	sig := &Signature{
		Func:     ctor,
		FuncType: fnType,
	}

	if err := analyzeReturns(sig, target); err != nil {
		return nil, err
	}

	numIn := fnType.NumIn()
	if fnType.IsVariadic() {
		numIn--
	}

	switch numIn {
	case 0:
	case 1:
		if err := analyzeParamObject(sig, fnType.In(0)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("constructor must take at most one parameter struct, got %d parameters", numIn)
	}

	if fnType.IsVariadic() {
		tail := fnType.In(fnType.NumIn() - 1)
		if _, exists := sig.Param(VariadicName); exists {
			return nil, fmt.Errorf("duplicate parameter name %q", VariadicName)
		}
		sig.Params = append(sig.Params, Param{
			Name:       VariadicName,
			Kind:       Variadic,
			Type:       declaredType(tail.Elem()),
			FieldType:  tail,
			FieldIndex: -1,
		})
	}

	return sig, nil
}

func analyzeReturns(sig *Signature, target reflect.Type) error {
	fnType := sig.FuncType

	switch {
	case fnType.NumOut() == 1:
	case fnType.NumOut() == 2 && fnType.Out(1) == errType:
		sig.HasError = true
	default:
		return fmt.Errorf("constructor must return %s or (%s, error)", target, target)
	}

	out := fnType.Out(0)
	if out != target && out != reflect.PointerTo(target) {
		return fmt.Errorf("constructor returns %s, want %s or *%s", out, target, target)
	}

	sig.Result = out
	return nil
}

// analyzeParamObject analyzes the parameter struct's fields.
func analyzeParamObject(sig *Signature, structType reflect.Type) error {
	if structType.Kind() != reflect.Struct {
		return fmt.Errorf("constructor parameter must be a struct, got %s", structType)
	}

	sig.ParamsType = structType
	seen := make(map[string]struct{}, structType.NumField())
	hasRest := false

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		// Skip the embedded marker
		if field.Anonymous && field.Type == paramsType {
			continue
		}

		tagInfo, err := ParseFieldTag(field)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		if tagInfo.Ignore {
			continue
		}

		if _, dup := seen[tagInfo.Name]; dup {
			return fmt.Errorf("field %s: duplicate parameter name %q", field.Name, tagInfo.Name)
		}
		seen[tagInfo.Name] = struct{}{}

		param := Param{
			Name:       tagInfo.Name,
			Kind:       Ordinary,
			Type:       declaredType(field.Type),
			Ref:        tagInfo.Ref,
			FieldType:  field.Type,
			FieldIndex: i,
			HasDefault: tagInfo.Optional,
		}

		if tagInfo.Rest {
			if field.Type != restType {
				return fmt.Errorf("field %s: rest parameter must be map[string]any, got %s", field.Name, field.Type)
			}
			if hasRest {
				return fmt.Errorf("field %s: only one rest parameter is allowed", field.Name)
			}
			hasRest = true
			param.Kind = Rest
		}

		if tagInfo.Ref != "" {
			if field.Type.Kind() != reflect.Interface {
				return fmt.Errorf("field %s: type reference %q requires an interface field, got %s", field.Name, tagInfo.Ref, field.Type)
			}
			param.Type = nil
		}

		if raw, ok := field.Tag.Lookup("default"); ok {
			def, err := decodeDefault(raw, field.Type)
			if err != nil {
				return fmt.Errorf("field %s: default %q: %w", field.Name, raw, err)
			}
			param.Default = def
			param.HasDefault = true
		}

		sig.Params = append(sig.Params, param)
	}

	return nil
}

// ParseFieldTag parses the inject tag of a parameter struct field.
//
// The tag has the form `inject:"name,opt,..."` where the options are
// optional, rest and type=Ref. An empty name falls back to the field name.
func ParseFieldTag(field reflect.StructField) (TagInfo, error) {
	info := TagInfo{Name: field.Name}

	tag, ok := field.Tag.Lookup("inject")
	if !ok {
		return info, nil
	}
	if tag == "-" {
		info.Ignore = true
		return info, nil
	}

	parts := strings.Split(tag, ",")
	if name := strings.TrimSpace(parts[0]); name != "" {
		info.Name = name
	}

	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "":
		case opt == "optional":
			info.Optional = true
		case opt == "rest":
			info.Rest = true
		case strings.HasPrefix(opt, "type="):
			info.Ref = strings.TrimSpace(strings.TrimPrefix(opt, "type="))
			if info.Ref == "" {
				return info, fmt.Errorf("empty type reference")
			}
		default:
			return info, fmt.Errorf("unknown inject tag option %q", opt)
		}
	}

	return info, nil
}

// declaredType returns t, or nil when t is the empty interface and so carries no type.
func declaredType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return nil
	}
	return t
}

// decodeDefault decodes a default tag value into a value of type t.
func decodeDefault(raw string, t reflect.Type) (reflect.Value, error) {
	ptr := reflect.New(t)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           ptr.Interface(),
	})
	if err != nil {
		return reflect.Value{}, err
	}

	if err := decoder.Decode(raw); err != nil {
		return reflect.Value{}, err
	}

	return ptr.Elem(), nil
}

func kindOf(v reflect.Value) string {
	if !v.IsValid() {
		return "<nil>"
	}
	return v.Type().String()
}
