// Package standin provides runtime test doubles for Go interfaces.
//
// A stand-in implements an interface by routing every call through a router that
// records it, answers it from programmed stubs, forwards it to a real value (for
// spies), or returns defaults. Stand-in types are generated with standgen:
//
//	//go:generate standgen Store
//
// Stubbing and verification use the stand-in's own methods:
//
//	store := standin.Mock[Store](t)
//	standin.When(store.Get("k")).ThenReturn("v", nil)
//	standin.Verify(store, standin.Once()).Get("k")
//
// This is the public API entry point. Implementation lives in internal/core.
package standin

import (
	"log/slog"
	"reflect"

	"github.com/toejough/standin/internal/core"
)

// CallRecord is one intercepted call.
type CallRecord = core.CallRecord

// Captor collects the values a capture matcher sees.
type Captor[T any] = core.Captor[T]

// Constructors lists candidate constructors for SpyNew.
type Constructors = core.Constructors

// Count is a predicate over the number of observed calls.
type Count = core.Count

// Defaults supplies results for calls nothing else answers.
type Defaults = core.Defaults

// DefaultsFunc adapts a function to Defaults.
type DefaultsFunc = core.DefaultsFunc

// DefaultsMap overrides defaults per result type.
type DefaultsMap = core.DefaultsMap

// Matcher defines the interface for flexible value matching.
type Matcher = core.Matcher

// MethodKey identifies a method by name and signature.
type MethodKey = core.MethodKey

// Option configures a stand-in at creation.
type Option = core.Option

// Router is the call router embedded in every generated stand-in.
type Router = core.Router

// StandIn is implemented by every generated stand-in.
type StandIn = core.StandIn

// Stubbing programs the responses for a call captured by When.
type Stubbing = core.Stubbing

// TestReporter is the minimal interface standin needs from test frameworks.
type TestReporter = core.TestReporter

// VerificationError reports a failed Verify.
type VerificationError = core.VerificationError

// Errors re-exported from internal/core.
//
//nolint:gochecknoglobals // sentinel errors
var (
	ErrConstructorFailed     = core.ErrConstructorFailed
	ErrDelegateMethodMissing = core.ErrDelegateMethodMissing
	ErrInvalidAnswer         = core.ErrInvalidAnswer
	ErrMatcherArityMismatch  = core.ErrMatcherArityMismatch
	ErrNilDelegate           = core.ErrNilDelegate
	ErrNoMatchingConstructor = core.ErrNoMatchingConstructor
	ErrNoPendingCall         = core.ErrNoPendingCall
	ErrNotAMock              = core.ErrNotAMock
	ErrNotMockable           = core.ErrNotMockable
	ErrUnknownMethod         = core.ErrUnknownMethod
	ErrVerificationFailed    = core.ErrVerificationFailed
	ErrWrongReturnType       = core.ErrWrongReturnType
)

// ZeroDefaults returns Go zero values for every result.
//
//nolint:gochecknoglobals // stateless default provider
var ZeroDefaults = core.ZeroDefaults

// AtLeast accepts n or more calls.
func AtLeast(n int) Count {
	return core.AtLeast(n)
}

// AtMost accepts n or fewer calls.
func AtMost(n int) Count {
	return core.AtMost(n)
}

// Calls returns the calls recorded by a stand-in, oldest first.
func Calls(m any) []CallRecord {
	return core.Calls(m)
}

// CountThat accepts counts for which check returns true.
func CountThat(desc string, check func(n int) bool) Count {
	return core.CountThat(desc, check)
}

// FewerThan accepts strictly fewer than n calls.
func FewerThan(n int) Count {
	return core.FewerThan(n)
}

// Mock returns a stand-in for T with no programmed behavior. Unstubbed calls
// return defaults. Failures are reported through t; a nil t panics instead.
func Mock[T any](t TestReporter, opts ...Option) T {
	if t != nil {
		t.Helper()
	}

	standIn, err := core.New(reflect.TypeFor[T](), reflect.Value{}, withReporter(t, opts)...)

	return asTarget[T](t, standIn, err)
}

// MoreThan accepts strictly more than n calls.
func MoreThan(n int) Count {
	return core.MoreThan(n)
}

// Never accepts only zero calls.
func Never() Count {
	return core.Never()
}

// Once accepts exactly one call.
func Once() Count {
	return core.Once()
}

// Register records the generated stand-in for T. Generated code calls it from init.
func Register[T any](factory func() StandIn) {
	core.Register(reflect.TypeFor[T](), factory)
}

// Reset clears a stand-in's stubs and call history.
func Reset(m any) {
	core.Reset(m)
}

// ResetAll forgets the pending call and any staged matchers.
func ResetAll() {
	core.ResetAll()
}

// Result extracts result i of a routed call as a T.
func Result[T any](out []any, i int) T {
	return core.Result[T](out, i)
}

// Spy returns a stand-in for T that forwards unstubbed calls to impl.
func Spy[T any](t TestReporter, impl T, opts ...Option) T {
	if t != nil {
		t.Helper()
	}

	standIn, err := core.NewSpy(reflect.TypeFor[T](), impl, withReporter(t, opts)...)

	return asTarget[T](t, standIn, err)
}

// SpyNew builds the delegate with the first constructor in ctors that accepts
// args, then spies on it with opts.
func SpyNew[T any](t TestReporter, ctors Constructors, args []any, opts ...Option) T {
	if t != nil {
		t.Helper()
	}

	delegate, err := core.Construct(reflect.TypeFor[T](), ctors, args)
	if err != nil {
		return asTarget[T](t, nil, err)
	}

	standIn, err := core.NewSpy(reflect.TypeFor[T](), delegate.Interface(), withReporter(t, opts)...)

	return asTarget[T](t, standIn, err)
}

// Times accepts exactly n calls.
func Times(n int) Count {
	return core.Times(n)
}

// Verify arms m so that its next method call checks the recorded calls against
// count instead of executing:
//
//	standin.Verify(store, standin.Times(2)).Get("k")
func Verify[T any](m T, count Count) T {
	core.Verify(m, count)

	return m
}

// When turns the stand-in call evaluated as its argument into a stubbing. The
// call's own results are ignored, so methods with any number of results fit:
//
//	standin.When(store.Get("k")).ThenReturn("v", nil)
//	store.Close(); standin.When().ThenThrow(io.ErrClosedPipe)
func When(...any) *Stubbing {
	return core.When()
}

// WithDefaults replaces the provider of unstubbed results.
func WithDefaults(d Defaults) Option {
	return core.WithDefaults(d)
}

// WithLogger traces routed calls at debug level.
func WithLogger(l *slog.Logger) Option {
	return core.WithLogger(l)
}

// WithName sets the stand-in's name in failure messages.
func WithName(name string) Option {
	return core.WithName(name)
}

// WithoutHistory keeps only the latest call of each method.
func WithoutHistory() Option {
	return core.WithoutHistory()
}

func asTarget[T any](t TestReporter, standIn core.StandIn, err error) T {
	var zero T

	if err != nil {
		if t == nil {
			panic(err)
		}

		t.Helper()
		t.Fatalf("%v", err)

		return zero
	}

	target, ok := standIn.(T)
	if !ok {
		// Generate checks that the stand-in implements T.
		panic("standin: registered stand-in does not implement its target")
	}

	return target
}

func withReporter(t TestReporter, opts []Option) []Option {
	if t == nil {
		return opts
	}

	return append([]Option{core.WithReporter(t)}, opts...)
}
