package core

import (
	"errors"
	"fmt"
	"strings"
)

// Exported variables.
var (
	// ErrConstructorFailed wraps an error returned (or a panic raised) by a spy constructor.
	ErrConstructorFailed = errors.New("constructor failed")
	// ErrDelegateMethodMissing means a spy's delegate has no method matching the intercepted one.
	ErrDelegateMethodMissing = errors.New("delegate method missing")
	// ErrInvalidAnswer means an answer function does not fit the stubbed method.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrMatcherArityMismatch means the number of staged matchers differs from the call's arguments.
	ErrMatcherArityMismatch = errors.New("matcher arity mismatch")
	// ErrNilDelegate means a spy was requested around a nil value.
	ErrNilDelegate = errors.New("nil delegate")
	// ErrNoMatchingConstructor means no constructor accepts the supplied arguments.
	ErrNoMatchingConstructor = errors.New("no matching constructor")
	// ErrNoPendingCall means When was used without a preceding call on a stand-in.
	ErrNoPendingCall = errors.New("no pending call")
	// ErrNotAMock means a stand-in operation was applied to a value that is not a stand-in.
	ErrNotAMock = errors.New("not a mock")
	// ErrNotMockable means no stand-in can be produced for the requested type.
	ErrNotMockable = errors.New("not mockable")
	// ErrUnknownMethod means generated code routed a method the target type does not declare.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrVerificationFailed is the sentinel wrapped by every VerificationError.
	ErrVerificationFailed = errors.New("verification failed")
	// ErrWrongReturnType means a stubbed value cannot be used as the method's result.
	ErrWrongReturnType = errors.New("wrong return type")
)

// VerificationError reports a Verify whose count predicate rejected the observed count.
type VerificationError struct {
	Method   string   // e.g. "Ops.Add"
	Args     []string // literal arguments or matcher descriptions
	Expected string   // count predicate description
	Actual   int
	Calls    []string // recorded calls of the method, in order
}

func (e *VerificationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%v: expected %s(%s) to be called %s, but was called %s",
		ErrVerificationFailed, e.Method, strings.Join(e.Args, ", "), e.Expected, pluralTimes(e.Actual))

	if len(e.Calls) == 0 {
		b.WriteString("; no calls were recorded")

		return b.String()
	}

	b.WriteString("; recorded calls:")

	for _, call := range e.Calls {
		b.WriteString("\n    ")
		b.WriteString(call)
	}

	return b.String()
}

// Unwrap lets errors.Is match ErrVerificationFailed.
func (e *VerificationError) Unwrap() error {
	return ErrVerificationFailed
}

func pluralTimes(n int) string {
	if n == 1 {
		return "1 time"
	}

	return fmt.Sprintf("%d times", n)
}
