package core

import "fmt"

// Count is a predicate over the number of times a call was observed.
type Count interface {
	Check(n int) bool
	String() string
}

// AtLeast accepts n or more calls.
func AtLeast(n int) Count {
	return countFunc{desc: "at least " + pluralTimes(n), check: func(c int) bool { return c >= n }}
}

// AtMost accepts n or fewer calls.
func AtMost(n int) Count {
	return countFunc{desc: "at most " + pluralTimes(n), check: func(c int) bool { return c <= n }}
}

// CountThat accepts counts satisfying check; desc appears in failure messages.
func CountThat(desc string, check func(n int) bool) Count {
	return countFunc{desc: desc, check: check}
}

// FewerThan accepts strictly fewer than n calls.
func FewerThan(n int) Count {
	return countFunc{desc: "fewer than " + pluralTimes(n), check: func(c int) bool { return c < n }}
}

// MoreThan accepts strictly more than n calls.
func MoreThan(n int) Count {
	return countFunc{desc: "more than " + pluralTimes(n), check: func(c int) bool { return c > n }}
}

// Never accepts only zero calls.
func Never() Count {
	return countFunc{desc: pluralTimes(0), check: func(c int) bool { return c == 0 }}
}

// Once accepts exactly one call.
func Once() Count {
	return Times(1)
}

// Times accepts exactly n calls.
func Times(n int) Count {
	if n < 0 {
		panic(fmt.Sprintf("standin: Times(%d): count cannot be negative", n))
	}

	return countFunc{desc: pluralTimes(n), check: func(c int) bool { return c == n }}
}

type countFunc struct {
	desc  string
	check func(n int) bool
}

func (c countFunc) Check(n int) bool {
	return c.check(n)
}

func (c countFunc) String() string {
	return c.desc
}
