package core

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
)

// Router is embedded (by pointer) in every stand-in. Each intercepted call is
// routed to a pending verification, a programmed stub, the spy delegate, or the
// default values, in that order.
type Router struct {
	info     *TypeInfo
	owner    string
	t        TestReporter
	defaults Defaults
	delegate reflect.Value
	hist     *history
	logger   *slog.Logger

	mu        sync.Mutex // Protects stubs, gate and delegates
	stubs     map[MethodKey][]*binding
	gate      gate
	delegates map[MethodKey]reflect.Value
}

// Route handles one intercepted call of the named method and returns its
// results, one element per declared result.
func (r *Router) Route(name string, args ...any) []any {
	if r == nil {
		panic(fmt.Errorf("%w: %s called on a stand-in without a router; create it with standin.Mock or standin.Spy",
			ErrNotAMock, name))
	}

	method := r.method(name)

	if args == nil {
		args = []any{}
	}

	if count, armed := r.disarm(); armed {
		r.verify(method, count, args)

		return r.defaultResults(method)
	}

	setLastTouched(r)
	r.hist.record(method.Key, args)

	dec := r.decide(method, args)
	r.trace(method, dec, args)

	switch dec.kind {
	case stubHit:
		out, err := dec.answer.run(method, args)
		if err != nil {
			r.fail(err)

			return r.defaultResults(method)
		}

		return out
	case delegateHit:
		return callReflect(dec.fn, method, args)
	case defaultHit:
		return r.defaultResults(method)
	default:
		panic(fmt.Sprintf("standin: unknown routing decision %d", dec.kind))
	}
}

// Type returns the target interface type of the stand-in owning this router.
func (r *Router) Type() reflect.Type {
	return r.info.Target
}

type decisionKind int

const (
	defaultHit decisionKind = iota
	stubHit
	delegateHit
)

func (k decisionKind) String() string {
	switch k {
	case stubHit:
		return "stub"
	case delegateHit:
		return "delegate"
	case defaultHit:
		return "default"
	default:
		return fmt.Sprintf("decision(%d)", int(k))
	}
}

// decision is the outcome of routing one call.
type decision struct {
	kind   decisionKind
	answer Answer
	fn     reflect.Value
}

func newRouter(info *TypeInfo, delegate reflect.Value, cfg Config) *Router {
	owner := cfg.Name
	if owner == "" {
		owner = info.Target.Name()
	}

	defaults := cfg.Defaults
	if defaults == nil {
		defaults = ZeroDefaults
	}

	return &Router{
		info:      info,
		owner:     owner,
		t:         cfg.Reporter,
		defaults:  defaults,
		delegate:  delegate,
		hist:      newHistory(!cfg.WithoutHistory),
		logger:    cfg.Logger,
		stubs:     make(map[MethodKey][]*binding),
		delegates: make(map[MethodKey]reflect.Value),
	}
}

// decide picks the response source for a call. Matchers run outside the lock
// because they are user code.
func (r *Router) decide(method *Method, args []any) decision {
	r.mu.Lock()
	bindings := slices.Clone(r.stubs[method.Key])
	r.mu.Unlock()

	for _, b := range bindings {
		if !matchArgs(b.matchers, args) {
			continue
		}

		if answer, ok := b.chain.next(); ok {
			return decision{kind: stubHit, answer: answer}
		}
	}

	if r.delegate.IsValid() {
		return decision{kind: delegateHit, fn: r.delegateMethod(method)}
	}

	return decision{kind: defaultHit}
}

// defaultResults returns the Defaults values for the method's results.
func (r *Router) defaultResults(method *Method) []any {
	out, err := defaultResults(r.defaults, method)
	if err != nil {
		r.fail(err)

		out = make([]any, len(method.Out))
		for i, t := range method.Out {
			out[i] = zeroValue(t)
		}
	}

	return out
}

// fail reports a usage error through the reporter, or panics without one.
func (r *Router) fail(err error) {
	if r.t == nil {
		panic(err)
	}

	r.t.Helper()
	r.t.Fatalf("%v", err)
}

// install registers a chain, replacing any chain with the same matcher signature.
// A matcher set without a signature always adds a new binding.
func (r *Router) install(method *Method, matchers []Matcher, c *chain) {
	sig, signed := signatureOf(method.Key, matchers)
	b := &binding{signature: sig, matchers: matchers, chain: c}

	r.mu.Lock()
	defer r.mu.Unlock()

	bindings := r.stubs[method.Key]
	for i, existing := range bindings {
		if signed && existing.signature == sig {
			bindings[i] = b

			return
		}
	}

	r.stubs[method.Key] = append(bindings, b)
}

// method looks up a routed method; generated code out of sync with its interface panics.
func (r *Router) method(name string) *Method {
	method, ok := r.info.Methods[name]
	if !ok {
		panic(fmt.Errorf("%w: %v has no method %s; regenerate the stand-in", ErrUnknownMethod, r.info.Target, name))
	}

	return method
}

// reset drops every stub and all recorded history.
func (r *Router) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stubs = make(map[MethodKey][]*binding)
	r.hist.reset()
}

func (r *Router) trace(method *Method, dec decision, args []any) {
	if r.logger == nil {
		return
	}

	r.logger.Debug("standin call",
		slog.String("method", r.qualified(method)),
		slog.String("decision", dec.kind.String()),
		slog.Any("args", formatArgs(args)),
	)
}

// qualified names the method with this router's owner name.
func (r *Router) qualified(method *Method) string {
	return r.owner + "." + method.Key.Name
}
