package core

import (
	"fmt"
	"reflect"
)

// delegateMethod finds the delegate's method equivalent to method.
// A missing or differently typed method is an internal inconsistency and panics.
func (r *Router) delegateMethod(method *Method) reflect.Value {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fn, ok := r.delegates[method.Key]; ok {
		return fn
	}

	fn := r.delegate.MethodByName(method.Key.Name)
	if !fn.IsValid() || fn.Type() != method.Type {
		panic(fmt.Errorf("%w: %v has no method %s", ErrDelegateMethodMissing, r.delegate.Type(), method.Key))
	}

	r.delegates[method.Key] = fn

	return fn
}
