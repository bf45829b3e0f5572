package sim

import "fmt"

// Policy decides which ready process runs next and for how long.
// The Simulator owns the clock and the pending arrivals; a Policy only ever
// sees processes that have already arrived and are not complete.
type Policy interface {
	// Name returns the algorithm name ("rr", "srtf").
	Name() string

	// Preemptive reports whether a running slice ends at the next arrival so
	// that the policy can reconsider. Non-preemptive policies observe
	// arrivals only at the end of a slice.
	Preemptive() bool

	// OnArrival makes p ready.
	OnArrival(p *Process, now int64)

	// SelectNext removes and returns the process to dispatch at now, together
	// with the longest slice the policy grants it (1 <= slice <= RemainingTime).
	// Returns (nil, 0) when nothing is ready.
	SelectNext(now int64) (*Process, int64)

	// Requeue returns p to the ready set after a slice that did not complete it.
	Requeue(p *Process, now int64)

	// Len returns the number of ready processes.
	Len() int
}

// NewPolicy creates a Policy for a validated RunConfig.
// Returns ErrInvalidConfiguration for unknown algorithms or a bad quantum.
func NewPolicy(cfg RunConfig) (Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Algorithm {
	case AlgorithmRoundRobin:
		return NewRoundRobin(cfg.Quantum), nil
	case AlgorithmSRTF:
		return NewSRTF(), nil
	default:
		panic(fmt.Sprintf("unhandled algorithm %q", cfg.Algorithm))
	}
}
