// Package match provides argument matchers for standin's When and Verify.
// Each helper stages a matcher and returns a placeholder of the parameter type,
// so it can stand in the argument position of a stand-in call. This package is
// designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/standin/match"
//	)
//
//	standin.When(store.Get(AnyString())).ThenReturn("v", nil)
//	standin.Verify(store, standin.Once()).Put(Eq("k"), That[int](BeNumerically(">", 0)))
//
// When any argument of a call uses a matcher, every argument must: wrap literal
// values with Eq.
package match

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/toejough/standin/internal/core"
)

// Captor collects the arguments a Capture matcher sees.
type Captor[T any] = core.Captor[T]

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher = core.Matcher

// Any matches every value, including nil.
func Any[T any]() T {
	return stage[T](core.AnyMatcher())
}

// AnyBool matches any bool.
func AnyBool() bool {
	return IsA[bool]()
}

// AnyByte matches any byte.
func AnyByte() byte {
	return IsA[byte]()
}

// AnyFloat64 matches any float64.
func AnyFloat64() float64 {
	return IsA[float64]()
}

// AnyInt matches any int.
func AnyInt() int {
	return IsA[int]()
}

// AnyInt64 matches any int64.
func AnyInt64() int64 {
	return IsA[int64]()
}

// AnyRune matches any rune.
func AnyRune() rune {
	return IsA[rune]()
}

// AnyString matches any string.
func AnyString() string {
	return IsA[string]()
}

// Capture matches every value and adds it to c. Values are only captured from
// calls whose other arguments matched.
func Capture[T any](c *Captor[T]) T {
	return stage[T](core.CaptureMatcher(c))
}

// Eq matches values deeply equal to v. A nil v matches nil values.
func Eq[T any](v T) T {
	core.Stage(core.EqualMatcher(v))

	return v
}

// IsA matches non-nil values whose dynamic type is assignable to T.
func IsA[T any]() T {
	return stage[T](core.AssignableMatcher(reflect.TypeFor[T]()))
}

// IsNil matches nil values.
func IsNil[T any]() T {
	return stage[T](core.NilMatcher())
}

// Matches matches values of type T for which pred returns true.
func Matches[T any](pred func(T) bool) T {
	return stage[T](core.PredicateMatcher(describePredicate[T](pred), func(v T) error {
		if !pred(v) {
			return errNoMatch
		}

		return nil
	}))
}

// NewCaptor returns an empty Captor for use with Capture.
func NewCaptor[T any]() *Captor[T] {
	return core.NewCaptor[T]()
}

// NotNil matches any value that is not nil.
func NotNil[T any]() T {
	return stage[T](core.NotNilMatcher())
}

// Satisfies uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	standin.When(calc.Div(AnyInt(), Satisfies(func(x int) error {
//	    if x == 0 { return errors.New("zero divisor") }
//	    return nil
//	}))).ThenReturn(0)
func Satisfies[T any](pred func(T) error) T {
	return stage[T](core.PredicateMatcher(describePredicate[T](pred), pred))
}

// That adapts any Matcher, typically a gomega matcher, to an argument position.
func That[T any](m Matcher) T {
	return stage[T](m)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // sentinel for boolean predicates
	errNoMatch = errors.New("predicate returned false")
)

// describePredicate names a predicate by its parameter type and function.
func describePredicate[T any](pred any) string {
	return fmt.Sprintf("<%v predicate %p>", reflect.TypeFor[T](), pred)
}

func stage[T any](m Matcher) T {
	core.Stage(m)

	var zero T

	return zero
}
