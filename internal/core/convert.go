package core

import (
	"fmt"
	"reflect"
)

// Result extracts result i from a routed call as a T. Generated stand-ins use it
// to turn the router's []any into typed returns.
func Result[T any](out []any, i int) T {
	if i >= len(out) || out[i] == nil {
		var zero T

		return zero
	}

	v, ok := out[i].(T)
	if !ok {
		// Route coerces results before returning them, so this is a router bug.
		panic(fmt.Sprintf("standin: result %d is %T, not %v", i, out[i], reflect.TypeFor[T]()))
	}

	return v
}

// coerce converts v so that it can be returned as a value of type t.
// nil is accepted for nillable kinds; numeric values convert between numeric kinds.
func coerce(v any, t reflect.Type) (any, error) {
	if v == nil {
		if !isNillable(t.Kind()) {
			return nil, fmt.Errorf("%w: nil is not a valid %v", ErrWrongReturnType, t)
		}

		return reflect.Zero(t).Interface(), nil
	}

	rv := reflect.ValueOf(v)

	if rv.Type().AssignableTo(t) {
		if t.Kind() == reflect.Interface {
			return v, nil
		}

		return rv.Convert(t).Interface(), nil
	}

	if isNumeric(rv.Kind()) && isNumeric(t.Kind()) && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t).Interface(), nil
	}

	return nil, fmt.Errorf("%w: %T is not assignable to %v", ErrWrongReturnType, v, t)
}

// coerceAll converts a whole result list for a method.
func coerceAll(values []any, method *Method) ([]any, error) {
	if len(values) != len(method.Out) {
		return nil, fmt.Errorf("%w: %s returns %d values, got %d",
			ErrWrongReturnType, method.QualifiedName(), len(method.Out), len(values))
	}

	out := make([]any, len(values))

	for i, v := range values {
		converted, err := coerce(v, method.Out[i])
		if err != nil {
			return nil, fmt.Errorf("result %d of %s: %w", i, method.QualifiedName(), err)
		}

		out[i] = converted
	}

	return out, nil
}

// argValue turns a recorded argument into a reflect.Value of type t for reflective calls.
func argValue(arg any, t reflect.Type) reflect.Value {
	if arg == nil {
		return reflect.Zero(t)
	}

	rv := reflect.ValueOf(arg)
	if rv.Type() != t && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t)
	}

	return rv
}

func isNillable(kind reflect.Kind) bool {
	switch kind { //nolint:exhaustive // only nillable kinds matter
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice,
		reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func isNumeric(kind reflect.Kind) bool {
	return kind >= reflect.Int && kind <= reflect.Complex128
}
