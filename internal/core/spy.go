package core

import (
	"fmt"
	"reflect"
	"strings"
)

// Constructors lists candidate functions for building a spy's delegate. Each
// returns the delegate, optionally followed by an error.
type Constructors []any

// Construct calls the first constructor whose parameters accept args and whose
// first result is assignable to target.
func Construct(target reflect.Type, ctors Constructors, args []any) (reflect.Value, error) {
	for _, ctor := range ctors {
		fn := reflect.ValueOf(ctor)
		if !fn.IsValid() || fn.Kind() != reflect.Func || !constructorFits(fn.Type(), target, args) {
			continue
		}

		return callConstructor(fn, args)
	}

	types := make([]string, len(args))
	for i, arg := range args {
		types[i] = fmt.Sprintf("%T", arg)
	}

	return reflect.Value{}, fmt.Errorf("%w: none of %d constructors builds a %v from (%s)",
		ErrNoMatchingConstructor, len(ctors), target, strings.Join(types, ", "))
}

// NewSpy creates a stand-in for target that forwards unstubbed calls to delegate.
func NewSpy(target reflect.Type, delegate any, opts ...Option) (StandIn, error) {
	if isNil(delegate) {
		return nil, fmt.Errorf("%w: spy on %v needs a value to forward to", ErrNilDelegate, target)
	}

	return New(target, reflect.ValueOf(delegate), opts...)
}

func callConstructor(fn reflect.Value, args []any) (result reflect.Value, err error) {
	ft := fn.Type()

	defer func() {
		if p := recover(); p != nil {
			result = reflect.Value{}
			err = fmt.Errorf("%w: %v panicked: %v", ErrConstructorFailed, ft, p)
		}
	}()

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = argValue(arg, ft.In(i))
	}

	out := fn.Call(in)

	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %v: %w", ErrConstructorFailed, ft, out[1].Interface().(error)) //nolint:forcetypeassert,lll // checked by constructorFits
	}

	if isNillable(out[0].Kind()) && out[0].IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %v returned nil", ErrConstructorFailed, ft)
	}

	if out[0].Kind() == reflect.Interface {
		return out[0].Elem(), nil
	}

	return out[0], nil
}

func constructorFits(ft, target reflect.Type, args []any) bool {
	if ft.IsVariadic() || ft.NumIn() != len(args) {
		return false
	}

	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return false
		}
	default:
		return false
	}

	if !ft.Out(0).AssignableTo(target) {
		return false
	}

	for i, arg := range args {
		if arg == nil {
			if !isNillable(ft.In(i).Kind()) {
				return false
			}

			continue
		}

		if !reflect.TypeOf(arg).AssignableTo(ft.In(i)) {
			return false
		}
	}

	return true
}
