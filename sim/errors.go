package sim

import "errors"

// Error kinds returned by the simulator. Callers match them with errors.Is;
// every returned error wraps exactly one of these with context.
var (
	// ErrInvalidProcess reports a malformed process descriptor: empty or
	// reserved ID, duplicate ID, negative arrival or non-positive burst.
	ErrInvalidProcess = errors.New("invalid process")

	// ErrInvalidConfiguration reports an unknown algorithm name or a
	// non-positive round-robin quantum.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNoProcesses is returned when a run is requested over an empty process set.
	ErrNoProcesses = errors.New("no processes")

	// ErrOverconsumption means a policy tried to run a process past its
	// remaining time. It is always a defect in policy logic and aborts the run.
	ErrOverconsumption = errors.New("overconsumption")

	// ErrMetricInvariant means a derived metric came out negative or the
	// timeline disagrees with the process states. Like ErrOverconsumption it
	// indicates a bug, never bad input.
	ErrMetricInvariant = errors.New("metric invariant violated")

	// ErrSequenceTooLong is returned when a per-tick expansion of a timeline
	// would exceed MaxSequenceTicks entries.
	ErrSequenceTooLong = errors.New("execution sequence too long")
)
