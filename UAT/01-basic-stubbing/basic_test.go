package basic_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/standin"
	basic "github.com/toejough/standin/UAT/01-basic-stubbing"
	"github.com/toejough/standin/standintest"
)

//go:generate go run ../../standgen/main.go basic.Ops

// Fluent stubbing hands calls through process-wide state, so these tests do not
// call t.Parallel.

func TestStubbedCallsReturnProgrammedValues(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	standin.When(ops.Add(1, 2)).ThenReturn(3)
	standin.When(ops.Store("sum", 3)).ThenReturn(7, nil)

	slot, err := basic.PerformOps(ops)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(slot).To(Equal(7))
}

func TestUnstubbedCallsReturnZeroValues(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	g.Expect(ops.Add(4, 5)).To(Equal(0))

	slot, err := ops.Store("k", "v")
	g.Expect(slot).To(Equal(0))
	g.Expect(err).To(BeNil())
	g.Expect(ops.Finish()).To(BeFalse())
	g.Expect(ops.Notify("x", 1, 2)).To(BeFalse())
}

func TestStubOnlyAnswersMatchingArguments(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	standin.When(ops.Add(1, 2)).ThenReturn(3)

	g.Expect(ops.Add(1, 2)).To(Equal(3))
	g.Expect(ops.Add(2, 1)).To(Equal(0))
}

func TestChainedAnswersAreConsumedInOrderAndTheLastRepeats(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	standin.When(ops.Finish()).ThenReturn(false).ThenReturn(false).ThenReturn(true)

	g.Expect(ops.Finish()).To(BeFalse())
	g.Expect(ops.Finish()).To(BeFalse())
	g.Expect(ops.Finish()).To(BeTrue())
	g.Expect(ops.Finish()).To(BeTrue())
	g.Expect(ops.Finish()).To(BeTrue())
}

func TestRestubbingTheSameCallReplacesTheChain(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	standin.When(ops.Add(1, 1)).ThenReturn(10).ThenReturn(20)
	g.Expect(ops.Add(1, 1)).To(Equal(10))

	standin.When(ops.Add(1, 1)).ThenReturn(99)

	g.Expect(ops.Add(1, 1)).To(Equal(99))
	g.Expect(ops.Add(1, 1)).To(Equal(99))
}

func TestThenThrowFillsTheErrorResult(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)
	errFull := errors.New("disk full")

	standin.When(ops.Add(1, 2)).ThenReturn(3)
	standin.When(ops.Store("sum", 3)).ThenThrow(errFull)

	slot, err := basic.PerformOps(ops)

	g.Expect(err).To(MatchError(errFull))
	g.Expect(slot).To(Equal(0))
}

func TestThenThrowOnAVoidMethodPanics(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)
	errBroken := errors.New("log sink broken")

	ops.Log("x")
	standin.When().ThenThrow(errBroken)

	g.Expect(func() { ops.Log("x") }).To(PanicWith(errBroken))
	g.Expect(func() { ops.Log("y") }).NotTo(Panic())
}

func TestThenPanicPanicsWithTheValue(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	standin.When(ops.Finish()).ThenPanic("boom")

	g.Expect(func() { ops.Finish() }).To(PanicWith("boom"))
}

func TestThenAnswerComputesResultsFromArguments(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	standin.When(ops.Add(2, 3)).ThenAnswer(func(args []any) []any {
		a, _ := args[0].(int)
		b, _ := args[1].(int)

		return []any{a * b}
	})

	g.Expect(ops.Add(2, 3)).To(Equal(6))
}

func TestThenCallUsesAFunctionWithTheMethodSignature(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	var seen []int

	standin.When(ops.Notify("ping", 1, 2)).ThenCall(func(message string, ids ...int) bool {
		seen = append(seen, ids...)

		return message == "ping"
	})

	g.Expect(ops.Notify("ping", 1, 2)).To(BeTrue())
	g.Expect(seen).To(Equal([]int{1, 2}))
}

func TestAnswerKindsMixInOneChain(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)
	errFirst := errors.New("first")

	standin.When(ops.Store("k", 1)).
		ThenThrow(errFirst).
		ThenAnswer(func([]any) []any { return []any{5, nil} }).
		ThenReturn(6, nil)

	_, err := ops.Store("k", 1)
	g.Expect(err).To(MatchError(errFirst))

	slot, err := ops.Store("k", 1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(slot).To(Equal(5))

	slot, _ = ops.Store("k", 1)
	g.Expect(slot).To(Equal(6))
}

func TestTheStubbingCallIsNotRecorded(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	ops.Add(9, 9)
	standin.When(ops.Add(1, 2)).ThenReturn(3)

	calls := standin.Calls(ops)
	g.Expect(calls).To(HaveLen(1))
	g.Expect(calls[0].Args).To(Equal([]any{9, 9}))
}

func TestVariadicArgumentsArePartOfTheStubbedCall(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	standin.When(ops.Notify("alert", 1, 2, 3)).ThenReturn(true)

	g.Expect(ops.Notify("alert", 1, 2, 3)).To(BeTrue())
	g.Expect(ops.Notify("alert", 1, 2)).To(BeFalse())
	g.Expect(ops.Notify("alert")).To(BeFalse())
}

func TestNumericReturnValuesAreConverted(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](t)

	standin.When(ops.Add(1, 1)).ThenReturn(int64(2))

	g.Expect(ops.Add(1, 1)).To(Equal(2))
}

func TestWrongReturnTypeIsReported(t *testing.T) {
	g := NewWithT(t)
	rep := &standintest.Reporter{}
	ops := standin.Mock[basic.Ops](rep)

	standin.When(ops.Add(1, 2)).ThenReturn("three")

	g.Expect(rep.Err()).To(MatchError(standin.ErrWrongReturnType))
	g.Expect(ops.Add(1, 2)).To(Equal(0))
}

func TestWrongNumberOfReturnValuesIsReported(t *testing.T) {
	g := NewWithT(t)
	rep := &standintest.Reporter{}
	ops := standin.Mock[basic.Ops](rep)

	standin.When(ops.Store("k", 1)).ThenReturn(1)

	g.Expect(rep.Err()).To(MatchError(standin.ErrWrongReturnType))
	g.Expect(rep.Message()).To(ContainSubstring("Ops.Store returns 2 values, got 1"))
}

func TestThenCallWithTheWrongSignatureIsReported(t *testing.T) {
	g := NewWithT(t)
	rep := &standintest.Reporter{}
	ops := standin.Mock[basic.Ops](rep)

	standin.When(ops.Add(1, 2)).ThenCall(func(a int) int { return a })

	g.Expect(rep.Err()).To(MatchError(standin.ErrInvalidAnswer))
}

func TestWhenWithoutAPendingCallPanics(t *testing.T) {
	g := NewWithT(t)
	standin.ResetAll()

	g.Expect(func() { standin.When() }).To(PanicWith(MatchError(standin.ErrNoPendingCall)))
}

func TestWhenTwiceForOneCallIsReported(t *testing.T) {
	g := NewWithT(t)
	rep := &standintest.Reporter{}
	ops := standin.Mock[basic.Ops](rep)

	ops.Finish()
	standin.When().ThenReturn(true)

	g.Expect(func() { standin.When().ThenReturn(false) }).To(PanicWith(MatchError(standin.ErrNoPendingCall)))
	g.Expect(ops.Finish()).To(BeTrue())
}

func TestMockWithoutAReporterPanicsOnMisuse(t *testing.T) {
	g := NewWithT(t)
	ops := standin.Mock[basic.Ops](nil)

	g.Expect(func() {
		standin.When(ops.Add(1, 2)).ThenReturn("three")
	}).To(PanicWith(MatchError(standin.ErrWrongReturnType)))
}

func TestZeroValueStandInIsNotAMock(t *testing.T) {
	g := NewWithT(t)

	var ops OpsStandIn

	g.Expect(func() { ops.Finish() }).To(PanicWith(MatchError(standin.ErrNotAMock)))
	g.Expect(func() { standin.Calls(&ops) }).To(PanicWith(MatchError(standin.ErrNotAMock)))
}
