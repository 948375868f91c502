package core

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Answer is one programmed response in a stub chain.
type Answer struct {
	kind    answerKind
	values  []any
	compute func(args []any) []any
	err     error
	panicV  any
}

// Stubbing programs the responses for the call captured by When.
// Each Then* call appends one response; the last one repeats forever.
type Stubbing struct {
	router   *Router
	method   *Method
	matchers []Matcher
	chain    *chain
	once     sync.Once
	detached bool
}

// ThenAnswer appends a computed response. fn receives the call's arguments and
// returns the method's results.
func (s *Stubbing) ThenAnswer(fn func(args []any) []any) *Stubbing {
	if s.detached {
		return s
	}

	if fn == nil {
		s.router.fail(fmt.Errorf("%w: nil answer for %s", ErrInvalidAnswer, s.method.QualifiedName()))

		return s
	}

	return s.add(Answer{kind: answerCompute, compute: fn})
}

// ThenCall appends a response computed by fn, which must have the stubbed
// method's own signature.
func (s *Stubbing) ThenCall(fn any) *Stubbing {
	if s.detached {
		return s
	}

	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.Type() != s.method.Type {
		s.router.fail(fmt.Errorf("%w: %s needs a %v, got %T",
			ErrInvalidAnswer, s.method.QualifiedName(), s.method.Type, fn))

		return s
	}

	method := s.method

	return s.add(Answer{kind: answerCompute, compute: func(args []any) []any {
		return callReflect(fv, method, args)
	}})
}

// ThenPanic appends a response that panics with v.
func (s *Stubbing) ThenPanic(v any) *Stubbing {
	if s.detached {
		return s
	}

	return s.add(Answer{kind: answerPanic, panicV: v})
}

// ThenReturn appends a response returning values, one per result of the method.
func (s *Stubbing) ThenReturn(values ...any) *Stubbing {
	if s.detached {
		return s
	}

	out, err := coerceAll(values, s.method)
	if err != nil {
		s.router.fail(err)

		return s
	}

	return s.add(Answer{kind: answerReturn, values: out})
}

// ThenThrow appends a failing response. For methods whose last result is an
// error, the call returns zero values and err; other methods panic with err.
func (s *Stubbing) ThenThrow(err error) *Stubbing {
	if s.detached {
		return s
	}

	if !s.method.HasErrorResult() {
		return s.ThenPanic(err)
	}

	return s.add(Answer{kind: answerThrow, err: err})
}

// add appends an answer, installing the chain on the router the first time.
func (s *Stubbing) add(a Answer) *Stubbing {
	s.chain.push(a)
	s.once.Do(func() {
		s.router.install(s.method, s.matchers, s.chain)
	})

	return s
}

type answerKind int

const (
	answerReturn answerKind = iota
	answerCompute
	answerThrow
	answerPanic
)

// binding ties a matcher set for one method to its chain. The signature is
// empty for matcher sets that cannot be compared.
type binding struct {
	signature string
	matchers  []Matcher
	chain     *chain
}

// chain is a FIFO of answers whose last entry is sticky.
type chain struct {
	mu      sync.Mutex
	answers []Answer
}

// next removes and returns the head answer, or returns it without removal
// when it is the only one left.
func (c *chain) next() (Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch len(c.answers) {
	case 0:
		return Answer{}, false
	case 1:
		return c.answers[0], true
	default:
		head := c.answers[0]
		c.answers = c.answers[1:]

		return head, true
	}
}

func (c *chain) push(a Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.answers = append(c.answers, a)
}

// run executes an answer for a call. Throw fills the trailing error result.
func (a Answer) run(method *Method, args []any) ([]any, error) {
	switch a.kind {
	case answerReturn:
		return slices.Clone(a.values), nil
	case answerCompute:
		return coerceAll(a.compute(args), method)
	case answerThrow:
		out := make([]any, len(method.Out))
		for i, t := range method.Out {
			out[i] = zeroValue(t)
		}

		out[len(out)-1] = a.err

		return out, nil
	case answerPanic:
		panic(a.panicV)
	default:
		return nil, fmt.Errorf("%w: unknown answer kind %d", ErrInvalidAnswer, a.kind)
	}
}

// callReflect calls fn with recorded args, spreading a trailing variadic slice.
func callReflect(fn reflect.Value, method *Method, args []any) []any {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = argValue(arg, method.In[i])
	}

	var results []reflect.Value
	if method.Variadic {
		results = fn.CallSlice(in)
	} else {
		results = fn.Call(in)
	}

	out := make([]any, len(results))
	for i, r := range results {
		out[i] = r.Interface()
	}

	return out
}
