package core

import (
	"fmt"
	"reflect"
)

// Calls returns the calls recorded by a stand-in, oldest first.
func Calls(target any) []CallRecord {
	return mustRouter(target).hist.calls()
}

// Reset clears the stubs and call history of a stand-in. A pending Verify stays armed.
func Reset(target any) {
	mustRouter(target).reset()
}

// RouterOf returns the router behind a stand-in, or ErrNotAMock.
func RouterOf(target any) (*Router, error) {
	standIn, ok := target.(StandIn)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a stand-in", ErrNotAMock, target)
	}

	if rv := reflect.ValueOf(standIn); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, fmt.Errorf("%w: nil %T", ErrNotAMock, target)
	}

	r := standIn.StandInRouter()
	if r == nil {
		return nil, fmt.Errorf("%w: %T was not created by Mock or Spy", ErrNotAMock, target)
	}

	return r, nil
}

// Verify arms target so that its next call checks the recorded history against
// count instead of executing. Matchers staged while that call's arguments are
// evaluated select which calls are counted.
func Verify(target any, count Count) {
	r := mustRouter(target)

	if count == nil {
		r.fail(fmt.Errorf("%w: nil count", ErrVerificationFailed))

		return
	}

	clearStaged()
	r.arm(count)
}

type gateState int

const (
	gateIdle gateState = iota
	gateArmed
)

// gate is the one-shot verification switch of a router.
type gate struct {
	state gateState
	count Count
}

func (r *Router) arm(count Count) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gate = gate{state: gateArmed, count: count}
}

// disarm returns the armed count and returns the gate to idle.
func (r *Router) disarm() (Count, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gate.state != gateArmed {
		return nil, false
	}

	count := r.gate.count
	r.gate = gate{}

	return count, true
}

// verify counts the recorded calls the verification call describes and reports
// a VerificationError when count rejects the total.
func (r *Router) verify(method *Method, count Count, args []any) {
	matchers := drainStaged()

	var (
		observed  int
		described []string
	)

	if len(matchers) == 0 {
		observed = r.hist.countExact(method.Key, args)
		described = formatArgs(args)
	} else {
		aligned, err := alignMatchers(r.qualified(method), method, matchers, args)
		if err != nil {
			r.fail(err)

			return
		}

		observed = r.hist.countMatching(method.Key, aligned)
		described = describeAll(aligned)
	}

	if r.logger != nil {
		r.logger.Debug("standin verify",
			"method", r.qualified(method),
			"expected", count.String(),
			"observed", observed,
		)
	}

	if count.Check(observed) {
		return
	}

	records := r.hist.records(method.Key)
	calls := make([]string, len(records))

	for i, rec := range records {
		calls[i] = rec.String()
	}

	r.fail(&VerificationError{
		Method:   r.qualified(method),
		Args:     described,
		Expected: count.String(),
		Actual:   observed,
		Calls:    calls,
	})
}

// mustRouter panics with ErrNotAMock: without a router there is no reporter.
func mustRouter(target any) *Router {
	r, err := RouterOf(target)
	if err != nil {
		panic(err)
	}

	return r
}
