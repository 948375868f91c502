package spies

import (
	"errors"
	"fmt"
)

// Exported variables.
var (
	// ErrNegativeStart is returned by NewTallyChecked for a negative start.
	ErrNegativeStart = errors.New("negative start")
)

// Counter is the interface the spies wrap.
type Counter interface {
	Inc(n int) int
	Total() int
}

// Tally is a real Counter.
type Tally struct {
	total int
}

// Inc adds n and returns the new total. A negative n panics.
func (t *Tally) Inc(n int) int {
	if n < 0 {
		panic(fmt.Sprintf("tally: cannot add %d", n))
	}

	t.total += n

	return t.total
}

// Total returns the running total.
func (t *Tally) Total() int {
	return t.total
}

// NewNamedTally returns a Tally for a named counter. An empty name panics.
func NewNamedTally(name string, start int) Counter {
	if name == "" {
		panic("tally: empty name")
	}

	return &Tally{total: start}
}

// NewTally returns a Tally starting at start.
func NewTally(start int) *Tally {
	return &Tally{total: start}
}

// NewTallyChecked is NewTally that rejects a negative start.
func NewTallyChecked(start int) (*Tally, error) {
	if start < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeStart, start)
	}

	return &Tally{total: start}, nil
}
