package core

import (
	"io"
	"reflect"
	"testing"

	. "github.com/onsi/gomega"
)

// unregistered has no stand-in.
type unregistered interface {
	Nothing()
}

// sealedGreeter has a method no spy delegate can expose through reflection.
type sealedGreeter interface {
	Greet(name string) string
	seal()
}

type sealedStandIn struct {
	greeterStandIn
}

func (*sealedStandIn) seal() {}

// mislabeled is registered with a factory for a different interface.
type mislabeled interface {
	Missing() int
}

func TestGenerateCachesTypeInfo(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	first, err := Generate(greeterType)
	g.Expect(err).NotTo(HaveOccurred())

	second, err := Generate(greeterType)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(second).To(BeIdenticalTo(first))
	g.Expect(first.Target).To(Equal(greeterType))
	g.Expect(first.StandIn).To(Equal(reflect.TypeFor[*greeterStandIn]()))
	g.Expect(first.Methods).To(HaveKey("Greet"))
	g.Expect(first.Methods).To(HaveKey("Join"))
	g.Expect(first.Methods).To(HaveKey("Ping"))
}

func TestGenerateDescribesMethods(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	join := greeterMethod("Join")

	g.Expect(join.Variadic).To(BeTrue())
	g.Expect(join.In).To(Equal([]reflect.Type{stringType, reflect.TypeFor[[]string]()}))
	g.Expect(join.HasErrorResult()).To(BeTrue())
	g.Expect(join.QualifiedName()).To(Equal("greeter.Join"))
	g.Expect(join.Key.String()).To(Equal("Join(string, ...string) (string, error)"))
	g.Expect(join.Describe([]string{`","`, "<any>..."})).To(Equal(`greeter.Join(",", <any>...)`))
	g.Expect(greeterMethod("Ping").HasErrorResult()).To(BeFalse())
}

func TestGenerateRejectsUnmockableTypes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := Generate(nil)
	g.Expect(err).To(MatchError(ErrNotMockable))

	_, err = Generate(reflect.TypeFor[politeGreeter]())
	g.Expect(err).To(MatchError(ContainSubstring("only interfaces have stand-ins")))

	_, err = Generate(reflect.TypeFor[unregistered]())
	g.Expect(err).To(MatchError(ContainSubstring("run standgen")))
}

func TestGenerateRejectsAFactoryForAnotherInterface(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	target := reflect.TypeFor[mislabeled]()

	Register(target, func() StandIn { return &greeterStandIn{} })

	_, err := Generate(target)

	g.Expect(err).To(MatchError(ErrNotMockable))
	g.Expect(err).To(MatchError(ContainSubstring("does not implement")))
}

func TestGenerateRejectsUnexportedMethods(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	target := reflect.TypeFor[sealedGreeter]()

	Register(target, func() StandIn { return &sealedStandIn{} })

	_, err := Generate(target)

	g.Expect(err).To(MatchError(ErrNotMockable))
	g.Expect(err).To(MatchError(ContainSubstring("unexported method seal")))
}

func TestGenerateRejectsANilStandIn(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	target := reflect.TypeFor[io.ByteScanner]()

	Register(target, func() StandIn { return nil })

	_, err := Generate(target)

	g.Expect(err).To(MatchError(ContainSubstring("returned nil")))
}

func TestRegisterRejectsBadInput(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() { Register(reflect.TypeFor[int](), func() StandIn { return nil }) }).To(Panic())
	g.Expect(func() { Register(reflect.TypeFor[io.Reader](), nil) }).To(Panic())
}

func TestNewAttachesAFreshRouter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	first := newGreeter(t)
	second := newGreeter(t)

	g.Expect(first.router).NotTo(BeNil())
	g.Expect(first.router).NotTo(BeIdenticalTo(second.router))
	g.Expect(first.router.delegate.IsValid()).To(BeFalse())
}

func TestNewReportsUnmockableTypes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := New(reflect.TypeFor[unregistered](), reflect.Value{})

	g.Expect(err).To(MatchError(ErrNotMockable))
}

func TestNewRegistersCleanup(t *testing.T) {
	g := NewWithT(t)

	var cleanups []func()

	rep := &cleanupReporter{cleanup: func(f func()) { cleanups = append(cleanups, f) }}
	standIn, err := New(greeterType, reflect.Value{}, WithReporter(rep))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cleanups).To(HaveLen(1))

	standIn.(*greeterStandIn).Ping() //nolint:forcetypeassert // registered factory
	Stage(AnyMatcher())
	cleanups[0]()

	g.Expect(lastTouched.Load()).To(BeNil())
	g.Expect(Staged()).To(Equal(0))
}

type cleanupReporter struct {
	cleanup func(func())
}

func (r *cleanupReporter) Cleanup(f func()) { r.cleanup(f) }

func (r *cleanupReporter) Fatalf(string, ...any) {}

func (r *cleanupReporter) Helper() {}
