// Package standintest provides a TestReporter that records failures instead of
// stopping the test, for checking how stand-ins report misuse and failed
// verifications.
package standintest

import (
	"fmt"
	"sync"
)

// Reporter records every Fatalf call. It satisfies standin.TestReporter.
type Reporter struct {
	mu       sync.Mutex
	failures []Failure
}

// Failure is one recorded Fatalf call.
type Failure struct {
	Message string
	Err     error // the first error argument, if any
}

// Err returns the error of the most recent failure, or nil.
func (r *Reporter) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.failures) == 0 {
		return nil
	}

	return r.failures[len(r.failures)-1].Err
}

// Failed reports whether Fatalf was called.
func (r *Reporter) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.failures) > 0
}

// Failures returns every recorded failure, oldest first.
func (r *Reporter) Failures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Failure(nil), r.failures...)
}

// Fatalf records the failure. Unlike testing.T it does not stop the goroutine.
func (r *Reporter) Fatalf(format string, args ...any) {
	failure := Failure{Message: fmt.Sprintf(format, args...)}

	for _, arg := range args {
		if err, ok := arg.(error); ok {
			failure.Err = err

			break
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures = append(r.failures, failure)
}

// Helper does nothing; it exists to satisfy the reporter interface.
func (r *Reporter) Helper() {}

// Message returns the message of the most recent failure, or "".
func (r *Reporter) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.failures) == 0 {
		return ""
	}

	return r.failures[len(r.failures)-1].Message
}

// Reset forgets every recorded failure.
func (r *Reporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures = nil
}
