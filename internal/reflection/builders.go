package reflection

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"sort"
)

// UnexpectedParameterError is returned when a value is supplied for a name the
// constructor does not accept.
type UnexpectedParameterError struct {
	Names []string
}

func (e UnexpectedParameterError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("unexpected parameter %q", e.Names[0])
	}
	return fmt.Sprintf("unexpected parameters %q", e.Names)
}

// MismatchError is returned when a supplied value cannot be assigned to its parameter.
type MismatchError struct {
	Param string
	Want  reflect.Type
	Got   reflect.Type
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("parameter %q: cannot use %s as %s", e.Param, e.Got, e.Want)
}

// PanicError captures a panic raised by a constructor.
type PanicError struct {
	Value any
	Stack []byte
}

func (e PanicError) Error() string {
	return fmt.Sprintf("constructor panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// BuildParamObject creates and populates the parameter struct.
//
// Values are matched to parameters by name. Parameters without a value take
// their default, names without a parameter go to the Rest field. An untyped
// nil value sets the zero value.
func (s *Signature) BuildParamObject(values map[string]any) (reflect.Value, error) {
	var unexpected []string

	if s.ParamsType == nil {
		for name := range values {
			unexpected = append(unexpected, name)
		}
		if len(unexpected) > 0 {
			sort.Strings(unexpected)
			return reflect.Value{}, UnexpectedParameterError{Names: unexpected}
		}
		return reflect.Value{}, nil
	}

	structValue := reflect.New(s.ParamsType).Elem()
	rest, hasRest := s.RestParam()
	var extra map[string]any

	for name, val := range values {
		param, ok := s.Param(name)
		if !ok || param.Kind == Variadic {
			if !hasRest {
				unexpected = append(unexpected, name)
				continue
			}
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[name] = val
			continue
		}

		fieldValue, err := assignable(param, val)
		if err != nil {
			return reflect.Value{}, err
		}
		structValue.Field(param.FieldIndex).Set(fieldValue)
	}

	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return reflect.Value{}, UnexpectedParameterError{Names: unexpected}
	}

	for _, param := range s.Params {
		if param.Kind != Ordinary || !param.HasDefault || !param.Default.IsValid() {
			continue
		}
		if _, supplied := values[param.Name]; supplied {
			continue
		}
		structValue.Field(param.FieldIndex).Set(param.Default)
	}

	if extra != nil {
		// A value supplied under the rest parameter's own name is merged first.
		field := structValue.Field(rest.FieldIndex)
		if !field.IsNil() {
			for k, v := range field.Interface().(map[string]any) {
				if _, exists := extra[k]; !exists {
					extra[k] = v
				}
			}
		}
		field.Set(reflect.ValueOf(extra))
	}

	return structValue, nil
}

// Invoke builds the parameter struct from values and calls the constructor.
//
// The returned error is a build error, the constructor's own error, or a
// PanicError when the constructor panicked.
func (s *Signature) Invoke(values map[string]any) (result any, err error) {
	paramObject, err := s.BuildParamObject(values)
	if err != nil {
		return nil, err
	}

	var args []reflect.Value
	if paramObject.IsValid() {
		args = []reflect.Value{paramObject}
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	out := s.Func.Call(args)

	if s.HasError && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}

	return out[0].Interface(), nil
}

func assignable(param Param, val any) (reflect.Value, error) {
	if val == nil {
		return reflect.Zero(param.FieldType), nil
	}

	v := reflect.ValueOf(val)
	if !v.Type().AssignableTo(param.FieldType) {
		return reflect.Value{}, MismatchError{Param: param.Name, Want: param.FieldType, Got: v.Type()}
	}

	return v, nil
}
