package core

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Captor collects the arguments seen by a capture matcher, in call order.
type Captor[T any] struct {
	mu     sync.Mutex
	values []T
}

// NewCaptor returns an empty Captor.
func NewCaptor[T any]() *Captor[T] {
	return &Captor[T]{}
}

// CaptureMatcher returns a matcher that accepts every value and adds it to c.
func CaptureMatcher[T any](c *Captor[T]) Capturer {
	return captureMatcher[T]{captor: c}
}

// Captured returns every captured value, oldest first.
func (c *Captor[T]) Captured() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.values)
}

// Len returns how many values were captured.
func (c *Captor[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.values)
}

// Tail returns the most recently captured value, or the zero value if none was.
func (c *Captor[T]) Tail() T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.values) == 0 {
		var zero T

		return zero
	}

	return c.values[len(c.values)-1]
}

func (c *Captor[T]) add(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values = append(c.values, v)
}

type captureMatcher[T any] struct {
	captor *Captor[T]
}

// Capture stores actual. A nil actual is stored as the zero T.
func (m captureMatcher[T]) Capture(actual any) {
	if actual == nil {
		var zero T

		m.captor.add(zero)

		return
	}

	if v, ok := actual.(T); ok {
		m.captor.add(v)
	}
}

func (captureMatcher[T]) FailureMessage(any) string {
	return ""
}

func (captureMatcher[T]) Match(any) (bool, error) {
	return true, nil
}

// signature includes the captor's address, so only the same captor signs alike.
func (m captureMatcher[T]) signature() (string, bool) {
	return m.String(), true
}

func (m captureMatcher[T]) String() string {
	return fmt.Sprintf("<capture %v %p>", reflect.TypeFor[T](), m.captor)
}
