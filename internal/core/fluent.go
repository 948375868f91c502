package core

import (
	"fmt"
	"slices"
	"sync/atomic"
)

// ResetAll forgets the pending call and drops any staged matchers.
// Stubs and histories of individual stand-ins are untouched.
func ResetAll() {
	lastTouched.Store(nil)
	clearStaged()
}

// When turns the most recent stand-in call into a stubbing. The call is removed
// from its stand-in's history. Matchers staged while its arguments were evaluated
// replace literal argument matching.
//
// With no pending call When panics with ErrNoPendingCall: there is no stand-in,
// and so no reporter, to fail through.
func When() *Stubbing {
	r := lastTouched.Swap(nil)
	if r == nil {
		clearStaged()
		panic(fmt.Errorf("%w: call a stand-in method inside When, e.g. When(m.Get(1))", ErrNoPendingCall))
	}

	matchers := drainStaged()

	rec, ok := r.hist.rollbackLast()
	if !ok {
		r.fail(fmt.Errorf("%w: the last call on %s was already consumed", ErrNoPendingCall, r.owner))

		return detachedStubbing(r)
	}

	method := r.method(rec.Key.Name)

	if len(matchers) == 0 {
		matchers = make([]Matcher, len(rec.Args))
		for i, arg := range rec.Args {
			matchers[i] = EqualMatcher(arg)
		}
	} else {
		aligned, err := alignMatchers(r.qualified(method), method, matchers, rec.Args)
		if err != nil {
			r.fail(err)

			return detachedStubbing(r)
		}

		matchers = aligned
	}

	return &Stubbing{router: r, method: method, matchers: matchers, chain: &chain{}}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // the fluent API hands the last call from the stand-in to When
	lastTouched atomic.Pointer[Router]
)

// alignMatchers fits staged matchers to a call's recorded arguments. For a
// variadic method, one matcher per fixed argument plus one per variadic element
// matches element-wise; otherwise there must be one matcher per parameter.
func alignMatchers(name string, method *Method, matchers []Matcher, args []any) ([]Matcher, error) {
	if method.Variadic && len(args) == len(method.In) {
		fixed := len(method.In) - 1

		elems, ok := sliceElems(args[fixed])
		if ok && len(matchers) == fixed+len(elems) {
			aligned := slices.Clone(matchers[:fixed])

			return append(aligned, variadicMatcher{elems: slices.Clone(matchers[fixed:])}), nil
		}
	}

	if len(matchers) == len(args) {
		return matchers, nil
	}

	return nil, fmt.Errorf(
		"%w: %s takes %d arguments but %d matchers were staged; "+
			"when any argument uses a matcher, wrap literal values with match.Eq",
		ErrMatcherArityMismatch, name, len(args), len(matchers))
}

// detachedStubbing absorbs Then* calls after a reported usage error.
func detachedStubbing(r *Router) *Stubbing {
	return &Stubbing{router: r, detached: true}
}

func setLastTouched(r *Router) {
	lastTouched.Store(r)
}
