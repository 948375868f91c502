package core

import "sync"

// Stage appends a matcher to the process-wide staging list. Matcher helpers call
// it while the arguments of a stubbing or verification call are evaluated, so
// matchers land in argument order.
func Stage(m Matcher) {
	stagingMu.Lock()
	defer stagingMu.Unlock()

	staged = append(staged, m)
}

// Staged returns the number of matchers waiting to be drained.
func Staged() int {
	stagingMu.Lock()
	defer stagingMu.Unlock()

	return len(staged)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // the fluent API needs process-wide matcher staging
	staged []Matcher
	//nolint:gochecknoglobals // Mutex for staged
	stagingMu sync.Mutex
)

// clearStaged drops any matchers left over from an unrelated call.
func clearStaged() {
	stagingMu.Lock()
	defer stagingMu.Unlock()

	staged = nil
}

// drainStaged returns the staged matchers and empties the list.
func drainStaged() []Matcher {
	stagingMu.Lock()
	defer stagingMu.Unlock()

	out := staged
	staged = nil

	return out
}
