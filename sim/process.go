// Defines the Process struct that models one unit of CPU work in the simulation.
// Tracks the immutable input record (arrival, burst) and the mutable run state.

package sim

import (
	"fmt"
)

// IdleID is the ProcessID carried by timeline intervals during which no
// process was ready. No real process may use it.
const IdleID = "IDLE"

// Process models a single process's lifecycle in the simulation.
// ID, ArrivalTime and BurstTime are fixed at construction; the remaining
// fields are owned by the Simulator running it.
type Process struct {
	ID          string // Unique identifier, stable for the process's lifetime
	ArrivalTime int64  // Tick at which the process becomes ready
	BurstTime   int64  // Total CPU ticks required

	RemainingTime  int64 // Ticks of work left; reaches 0 exactly once
	Started        bool  // Tracks whether FirstStartTime has been set
	FirstStartTime int64 // Tick of the first dispatch
	Completed      bool  // Tracks whether CompletionTime has been set
	CompletionTime int64 // Tick at which RemainingTime reached 0

	// Index is the submission position inside the run's input slice.
	// Simultaneous arrivals are admitted in Index order.
	Index int
}

// NewProcess validates the input record and returns a fresh, unstarted Process.
func NewProcess(id string, arrivalTime, burstTime int64) (*Process, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidProcess)
	}
	if id == IdleID {
		return nil, fmt.Errorf("%w: id %q is reserved for idle intervals", ErrInvalidProcess, id)
	}
	if arrivalTime < 0 {
		return nil, fmt.Errorf("%w: process %s has negative arrival time %d", ErrInvalidProcess, id, arrivalTime)
	}
	if burstTime <= 0 {
		return nil, fmt.Errorf("%w: process %s has non-positive burst time %d", ErrInvalidProcess, id, burstTime)
	}
	return &Process{
		ID:            id,
		ArrivalTime:   arrivalTime,
		BurstTime:     burstTime,
		RemainingTime: burstTime,
	}, nil
}

// IsComplete reports whether the process has no work left.
func (p *Process) IsComplete() bool {
	return p.RemainingTime == 0
}

// Consume charges amount ticks of CPU time to the process.
// Running a process past its remaining time is a policy defect and
// returns ErrOverconsumption without changing state.
func (p *Process) Consume(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: process %s asked to consume %d ticks", ErrOverconsumption, p.ID, amount)
	}
	if amount > p.RemainingTime {
		return fmt.Errorf("%w: process %s asked to consume %d ticks with %d remaining",
			ErrOverconsumption, p.ID, amount, p.RemainingTime)
	}
	p.RemainingTime = max(p.RemainingTime-amount, 0)
	return nil
}

// RecordFirstStart sets FirstStartTime on the first call; later calls are no-ops.
func (p *Process) RecordFirstStart(t int64) {
	if p.Started {
		return
	}
	p.Started = true
	p.FirstStartTime = t
}

// RecordCompletion marks the process complete at t.
func (p *Process) RecordCompletion(t int64) {
	p.Completed = true
	p.CompletionTime = t
}

// Clone returns an unstarted copy carrying the same input record.
// Used to give every concurrent run its own process set.
func (p *Process) Clone() *Process {
	return &Process{
		ID:            p.ID,
		ArrivalTime:   p.ArrivalTime,
		BurstTime:     p.BurstTime,
		RemainingTime: p.BurstTime,
		Index:         p.Index,
	}
}

// pristine reports whether the process has never been touched by a run.
func (p *Process) pristine() bool {
	return p.RemainingTime == p.BurstTime && !p.Started && !p.Completed
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %s, ArrivalTime: %d, BurstTime: %d, RemainingTime: %d)",
		p.ID, p.ArrivalTime, p.BurstTime, p.RemainingTime)
}

// CloneAll clones every process in procs, preserving order.
func CloneAll(procs []*Process) []*Process {
	out := make([]*Process, len(procs))
	for i, p := range procs {
		out[i] = p.Clone()
	}
	return out
}
