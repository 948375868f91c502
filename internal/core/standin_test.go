package core

import (
	"reflect"
)

// greeter is the target interface of the stand-in used by this package's tests.
type greeter interface {
	Greet(name string) string
	Join(sep string, parts ...string) (string, error)
	Ping()
}

// greeterStandIn is written the way standgen would generate it.
type greeterStandIn struct {
	router *Router
}

func (s *greeterStandIn) Greet(name string) string {
	out := s.router.Route("Greet", name)

	return Result[string](out, 0)
}

func (s *greeterStandIn) Join(sep string, parts ...string) (string, error) {
	out := s.router.Route("Join", sep, parts)

	return Result[string](out, 0), Result[error](out, 1)
}

func (s *greeterStandIn) Ping() {
	s.router.Route("Ping")
}

func (s *greeterStandIn) SetStandInRouter(r *Router) {
	s.router = r
}

func (s *greeterStandIn) StandInRouter() *Router {
	return s.router
}

// politeGreeter is a real greeter for spy tests.
type politeGreeter struct {
	pings int
}

func (p *politeGreeter) Greet(name string) string {
	return "hello, " + name
}

func (p *politeGreeter) Join(sep string, parts ...string) (string, error) {
	out := ""

	for i, part := range parts {
		if i > 0 {
			out += sep
		}

		out += part
	}

	return out, nil
}

func (p *politeGreeter) Ping() {
	p.pings++
}

// unexported variables.
var (
	_ greeter = (*greeterStandIn)(nil)

	//nolint:gochecknoglobals // reflect type of the test target
	greeterType = reflect.TypeFor[greeter]()
	//nolint:gochecknoglobals // reflect type of string results
	stringType = reflect.TypeFor[string]()
)

func init() {
	Register(greeterType, func() StandIn { return &greeterStandIn{} })
}

// newGreeter builds a mock greeter reporting through t.
func newGreeter(t TestReporter, opts ...Option) *greeterStandIn {
	standIn, err := New(greeterType, reflect.Value{}, append([]Option{WithReporter(t)}, opts...)...)
	if err != nil {
		panic(err)
	}

	return standIn.(*greeterStandIn) //nolint:forcetypeassert // registered factory
}

// greeterMethod returns the Method for a greeter method name.
func greeterMethod(name string) *Method {
	info, err := Generate(greeterType)
	if err != nil {
		panic(err)
	}

	return info.Methods[name]
}

// reflectMethod returns the bound method name of v.
func reflectMethod(v any, name string) reflect.Value {
	return reflect.ValueOf(v).MethodByName(name)
}
