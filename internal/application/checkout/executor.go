package checkout

import "math/rand"

type Executor interface {
	Execute() bool
}

// RandomExecutor declines FailurePercent of rolls, independent of input.
// Zero disables the failure injection entirely.
type RandomExecutor struct {
	FailurePercent int
}

func (r *RandomExecutor) Execute() bool {
	if r.FailurePercent <= 0 {
		return true
	}
	return rand.Intn(100) >= r.FailurePercent
}
