package core

import (
	"fmt"
	"reflect"
)

// Defaults supplies the value returned for a result type when no stub or delegate answers.
type Defaults interface {
	Default(t reflect.Type) any
}

// DefaultsFunc adapts a function to the Defaults interface.
type DefaultsFunc func(t reflect.Type) any

// Default calls f.
func (f DefaultsFunc) Default(t reflect.Type) any {
	return f(t)
}

// DefaultsMap overrides the default for specific types and falls back to zero values.
type DefaultsMap map[reflect.Type]any

// Default returns the override for t, or the zero value of t.
func (d DefaultsMap) Default(t reflect.Type) any {
	if v, ok := d[t]; ok {
		return v
	}

	return ZeroDefaults.Default(t)
}

// ZeroDefaults returns Go zero values: false, 0, "", and nil for nillable kinds.
//
//nolint:gochecknoglobals // stateless default provider
var ZeroDefaults Defaults = DefaultsFunc(zeroValue)

// defaultResults builds the default result list for a method.
func defaultResults(defaults Defaults, method *Method) ([]any, error) {
	out := make([]any, len(method.Out))

	for i, t := range method.Out {
		v, err := coerce(defaults.Default(t), t)
		if err != nil {
			return nil, fmt.Errorf("default for result %d of %s: %w", i, method.QualifiedName(), err)
		}

		out[i] = v
	}

	return out, nil
}

func zeroValue(t reflect.Type) any {
	if t == nil {
		return nil
	}

	return reflect.Zero(t).Interface()
}
