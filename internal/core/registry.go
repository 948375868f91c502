package core

import (
	"fmt"
	"reflect"
	"sync"
)

// StandIn is implemented by every generated stand-in. The router accessors are
// the only methods a stand-in adds beyond its target interface.
type StandIn interface {
	StandInRouter() *Router
	SetStandInRouter(r *Router)
}

// TypeInfo describes a target interface and the generated type standing in for it.
// It is built once per target and cached.
type TypeInfo struct {
	Target  reflect.Type
	StandIn reflect.Type
	Methods map[string]*Method

	factory func() StandIn
}

// Generate returns the TypeInfo for target, building and caching it on first use.
func Generate(target reflect.Type) (*TypeInfo, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotMockable)
	}

	registryMu.RLock()
	info, ok := typeInfos[target]
	factory, registered := factories[target]
	registryMu.RUnlock()

	if ok {
		return info, nil
	}

	if target.Kind() != reflect.Interface {
		return nil, fmt.Errorf("%w: %v is a %v; only interfaces have stand-ins", ErrNotMockable, target, target.Kind())
	}

	if !registered {
		return nil, fmt.Errorf("%w: no stand-in registered for %v; run standgen for it", ErrNotMockable, target)
	}

	info, err := buildTypeInfo(target, factory)
	if err != nil {
		return nil, err
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	// Another goroutine may have built it meanwhile; keep the first.
	if existing, ok := typeInfos[target]; ok {
		return existing, nil
	}

	typeInfos[target] = info

	return info, nil
}

// New creates a stand-in for target. A valid delegate makes it a spy.
func New(target reflect.Type, delegate reflect.Value, opts ...Option) (StandIn, error) {
	info, err := Generate(target)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	r := newRouter(info, delegate, cfg)

	if cr, ok := cfg.Reporter.(cleanupRegistrar); ok {
		cr.Cleanup(func() { releaseRouter(r) })
	}

	standIn := info.factory()
	standIn.SetStandInRouter(r)

	return standIn, nil
}

// Register records the generated stand-in factory for target. Generated code
// calls it from init.
func Register(target reflect.Type, factory func() StandIn) {
	if target == nil || target.Kind() != reflect.Interface {
		panic(fmt.Sprintf("standin: Register needs an interface type, got %v", target))
	}

	if factory == nil {
		panic(fmt.Sprintf("standin: nil factory for %v", target))
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	factories[target] = factory
	delete(typeInfos, target)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // generated stand-ins register from init
	factories = make(map[reflect.Type]func() StandIn)
	//nolint:gochecknoglobals // built once per target, shared by every stand-in of it
	typeInfos = make(map[reflect.Type]*TypeInfo)
	//nolint:gochecknoglobals // Mutex for factories and typeInfos
	registryMu sync.RWMutex
)

func buildTypeInfo(target reflect.Type, factory func() StandIn) (*TypeInfo, error) {
	sample := factory()
	if sample == nil {
		return nil, fmt.Errorf("%w: stand-in factory for %v returned nil", ErrNotMockable, target)
	}

	standInType := reflect.TypeOf(sample)
	if !standInType.Implements(target) {
		return nil, fmt.Errorf("%w: %v does not implement %v; regenerate it", ErrNotMockable, standInType, target)
	}

	info := &TypeInfo{
		Target:  target,
		StandIn: standInType,
		Methods: make(map[string]*Method, target.NumMethod()),
		factory: factory,
	}

	for i := range target.NumMethod() {
		m := target.Method(i)
		if !m.IsExported() {
			return nil, fmt.Errorf("%w: %v has unexported method %s", ErrNotMockable, target, m.Name)
		}

		info.Methods[m.Name] = newMethod(target.Name(), m)
	}

	return info, nil
}

// releaseRouter runs at test cleanup so a finished test cannot leak its
// pending call or staged matchers into the next one.
func releaseRouter(r *Router) {
	lastTouched.CompareAndSwap(r, nil)
	clearStaged()
}
