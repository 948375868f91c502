package basic

// Ops demonstrates the core stubbing features of standin.
// It covers single and multiple return values, void methods, variadic
// arguments and methods without parameters.
type Ops interface {
	// Add demonstrates a simple method with parameters and a single return value.
	Add(a, b int) int

	// Store demonstrates a method with multiple return values (common for error handling).
	Store(key string, value any) (int, error)

	// Log demonstrates a void method (no return values).
	Log(message string)

	// Notify demonstrates variadic arguments.
	Notify(message string, ids ...int) bool

	// Finish demonstrates a method with no parameters.
	Finish() bool
}

// PerformOps is the code under test: it adds, stores the sum and reports the slot.
func PerformOps(ops Ops) (int, error) {
	const (
		val1 = 1
		val2 = 2
	)

	sum := ops.Add(val1, val2)

	slot, err := ops.Store("sum", sum)
	if err != nil {
		ops.Log("store failed: " + err.Error())

		return 0, err
	}

	ops.Notify("stored", slot)
	ops.Finish()

	return slot, nil
}
