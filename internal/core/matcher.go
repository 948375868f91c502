package core

import (
	"fmt"
	"reflect"
	"strings"
)

// Capturer is a matcher that records the values it is shown.
// Capture matchers always match; the engine feeds them only values from calls
// whose other arguments matched.
type Capturer interface {
	Matcher
	Capture(actual any)
}

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// AnyMatcher matches every value, including nil.
func AnyMatcher() Matcher {
	return anyMatcher{}
}

// AssignableMatcher matches non-nil values whose dynamic type is assignable to t.
func AssignableMatcher(t reflect.Type) Matcher {
	return assignableMatcher{typ: t}
}

// DescribeMatcher renders a matcher for messages.
func DescribeMatcher(m Matcher) string {
	if s, ok := m.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T%+v", m, m)
}

// EqualMatcher matches values reflect.DeepEqual to expected. A nil expected matches nil values.
func EqualMatcher(expected any) Matcher {
	return equalMatcher{expected: expected}
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses reflect.DeepEqual for comparison.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	// Check if expected is a Matcher
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	// Fall back to reflect.DeepEqual for non-matchers
	if valuesEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %v, got %v", expected, actual)
}

// NilMatcher matches nil values, including typed nils held in interfaces.
func NilMatcher() Matcher {
	return nilMatcher{negate: false}
}

// NotNilMatcher matches any value that is not nil.
func NotNilMatcher() Matcher {
	return nilMatcher{negate: true}
}

// PredicateMatcher matches values of type T for which pred returns nil.
// Values of other types never match.
func PredicateMatcher[T any](desc string, pred func(T) error) Matcher {
	return &predicateMatcher[T]{desc: desc, pred: pred}
}

type anyMatcher struct{}

// FailureMessage returns an empty string since anyMatcher always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

func (m anyMatcher) signature() (string, bool) {
	return m.String(), true
}

func (anyMatcher) String() string {
	return "<any>"
}

type assignableMatcher struct {
	typ reflect.Type
}

func (m assignableMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected a %v, got %T", m.typ, actual)
}

func (m assignableMatcher) Match(actual any) (bool, error) {
	if isNil(actual) {
		return false, nil
	}

	return reflect.TypeOf(actual).AssignableTo(m.typ), nil
}

func (m assignableMatcher) signature() (string, bool) {
	return m.String(), true
}

func (m assignableMatcher) String() string {
	return fmt.Sprintf("<%v>", m.typ)
}

type equalMatcher struct {
	expected any
}

func (m equalMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %#v, got %#v", m.expected, actual)
}

func (m equalMatcher) Match(actual any) (bool, error) {
	if m.expected == nil {
		return isNil(actual), nil
	}

	return valuesEqual(actual, m.expected), nil
}

// signature refuses func values: their rendering is a code address shared by
// every closure of one literal.
func (m equalMatcher) signature() (string, bool) {
	if m.expected != nil && reflect.TypeOf(m.expected).Kind() == reflect.Func {
		return "", false
	}

	return m.String(), true
}

func (m equalMatcher) String() string {
	return formatArg(m.expected)
}

type nilMatcher struct {
	negate bool
}

func (m nilMatcher) FailureMessage(actual any) string {
	if m.negate {
		return "expected a non-nil value"
	}

	return fmt.Sprintf("expected nil, got %#v", actual)
}

func (m nilMatcher) Match(actual any) (bool, error) {
	return isNil(actual) != m.negate, nil
}

func (m nilMatcher) signature() (string, bool) {
	return m.String(), true
}

func (m nilMatcher) String() string {
	if m.negate {
		return "<not nil>"
	}

	return "<nil>"
}

type predicateMatcher[T any] struct {
	desc string
	pred func(T) error
}

func (m *predicateMatcher[T]) FailureMessage(actual any) string {
	val, ok := actual.(T)
	if !ok {
		return fmt.Sprintf("expected %v, got %T", reflect.TypeFor[T](), actual)
	}

	if err := m.pred(val); err != nil {
		return fmt.Sprintf("value %v does not satisfy %s: %v", actual, m.desc, err)
	}

	return ""
}

// Match is type guarded: a value that is not a T is a mismatch, not an error.
func (m *predicateMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)
	if !ok {
		return false, nil
	}

	return m.pred(val) == nil, nil
}

func (m *predicateMatcher[T]) String() string {
	return m.desc
}

// describeAll renders a matcher list.
func describeAll(matchers []Matcher) []string {
	out := make([]string, len(matchers))
	for i, m := range matchers {
		out[i] = DescribeMatcher(m)
	}

	return out
}

// formatArg renders an argument value for messages.
func formatArg(v any) string {
	if v == nil {
		return "nil"
	}

	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}

	return fmt.Sprintf("%#v", v)
}

// formatArgs renders an argument list for messages.
func formatArgs(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = formatArg(a)
	}

	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	return isNillable(rv.Kind()) && rv.IsNil()
}

// matchArgs reports whether args satisfy matchers position by position.
// Capture matchers are fed only after every other matcher accepted.
func matchArgs(matchers []Matcher, args []any) bool {
	if len(matchers) != len(args) {
		return false
	}

	var captures []int

	for i, m := range matchers {
		if _, ok := m.(Capturer); ok {
			captures = append(captures, i)

			continue
		}

		ok, err := m.Match(args[i])
		if err != nil || !ok {
			return false
		}
	}

	for _, i := range captures {
		matchers[i].(Capturer).Capture(args[i]) //nolint:forcetypeassert // filtered above
	}

	return true
}

// signatureOf renders a matcher set into a comparable stub signature. It
// reports false when any matcher has no value identity, such as a predicate or
// a gomega matcher; such a set never equals another.
func signatureOf(key MethodKey, matchers []Matcher) (string, bool) {
	parts, ok := signatures(matchers)
	if !ok {
		return "", false
	}

	return key.String() + "[" + strings.Join(parts, ", ") + "]", true
}

func signatures(matchers []Matcher) ([]string, bool) {
	out := make([]string, len(matchers))

	for i, m := range matchers {
		s, ok := m.(signer)
		if !ok {
			return nil, false
		}

		if out[i], ok = s.signature(); !ok {
			return nil, false
		}
	}

	return out, true
}

// signer is a matcher whose behavior is fully determined by its signature.
// Two stubs whose matchers all sign alike replace each other.
type signer interface {
	signature() (string, bool)
}

// valuesEqual checks if two values are equal using reflect.DeepEqual.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// variadicMatcher matches a variadic slice argument element by element.
type variadicMatcher struct {
	elems []Matcher
}

func (m variadicMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected variadic arguments matching [%s], got %#v",
		strings.Join(describeAll(m.elems), ", "), actual)
}

func (m variadicMatcher) Match(actual any) (bool, error) {
	elems, ok := sliceElems(actual)
	if !ok {
		return false, nil
	}

	return matchArgs(m.elems, elems), nil
}

func (m variadicMatcher) signature() (string, bool) {
	parts, ok := signatures(m.elems)

	return strings.Join(parts, ", ") + "...", ok
}

func (m variadicMatcher) String() string {
	return strings.Join(describeAll(m.elems), ", ") + "..."
}

// sliceElems unpacks a slice argument into its elements.
func sliceElems(v any) ([]any, bool) {
	if v == nil {
		return nil, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}
