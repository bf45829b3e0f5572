// sim/simulator.go
package sim

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/procsched/procsched/sim/trace"
)

// Simulator is the core object that holds simulated time, the pending
// arrivals, the active policy and the timeline for one run.
// A Simulator runs once; its processes are mutated in place.
type Simulator struct {
	Clock  int64
	Config RunConfig
	// Processes in submission order. Owned by this run.
	Processes []*Process
	Timeline  *Timeline
	// Trace collects dispatch and preemption decisions; nil disables tracing.
	Trace *trace.SimulationTrace
	// StepCount counts dispatches.
	StepCount int

	policy    Policy
	arrivals  *ArrivalQueue
	completed int
	// lastRun is the process whose slice just ended without completing it.
	lastRun *Process
	ran     bool
}

// NewSimulator validates cfg and procs and prepares a run.
// Returns ErrNoProcesses for an empty set, ErrInvalidProcess for duplicate
// IDs, processes that were already simulated or a set whose schedule would
// not fit in int64 ticks, and ErrInvalidConfiguration for a bad cfg.
// On success the processes' Index fields are set to their position; on
// error the input is left untouched.
func NewSimulator(cfg RunConfig, procs []*Process) (*Simulator, error) {
	policy, err := NewPolicy(cfg)
	if err != nil {
		return nil, err
	}
	if len(procs) == 0 {
		return nil, ErrNoProcesses
	}
	seen := make(map[string]bool, len(procs))
	for i, p := range procs {
		if p == nil {
			return nil, fmt.Errorf("%w: nil process at position %d", ErrInvalidProcess, i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidProcess, p.ID)
		}
		seen[p.ID] = true
		if !p.pristine() {
			return nil, fmt.Errorf("%w: process %s has already been simulated; clone it first", ErrInvalidProcess, p.ID)
		}
	}
	if err := checkHorizon(procs); err != nil {
		return nil, err
	}
	for i, p := range procs {
		p.Index = i
	}
	return &Simulator{
		Config:    cfg,
		Processes: procs,
		Timeline:  NewTimeline(),
		policy:    policy,
		arrivals:  NewArrivalQueue(procs),
	}, nil
}

// checkHorizon rejects sets whose last completion does not fit in int64.
// The CPU never idles while work is pending, so in arrival order the
// makespan is max(previous end, arrival) + burst.
func checkHorizon(procs []*Process) error {
	byArrival := slices.Clone(procs)
	slices.SortStableFunc(byArrival, func(a, b *Process) int {
		return cmp.Compare(a.ArrivalTime, b.ArrivalTime)
	})
	var end int64
	for _, p := range byArrival {
		end = max(end, p.ArrivalTime)
		if p.BurstTime > math.MaxInt64-end {
			return fmt.Errorf("%w: process %s would complete past tick %d", ErrInvalidProcess, p.ID, int64(math.MaxInt64))
		}
		end += p.BurstTime
	}
	return nil
}

// Policy returns the active scheduling policy.
func (sim *Simulator) Policy() Policy {
	return sim.policy
}

// Run drives the simulation until every process has completed.
// Time advances by jumps to the next decision point (slice end, arrival or
// completion), never tick by tick.
func (sim *Simulator) Run() error {
	if sim.ran {
		return fmt.Errorf("simulator for %s has already run", sim.Config.Label())
	}
	sim.ran = true

	sim.Clock = sim.arrivals.Peek().Timestamp()
	logrus.Infof("[tick %07d] Starting %s simulation with %d processes", sim.Clock, sim.Config.Label(), len(sim.Processes))
	sim.admit()

	for sim.completed < len(sim.Processes) {
		p, slice := sim.policy.SelectNext(sim.Clock)
		if p == nil {
			next := sim.arrivals.Peek()
			if next == nil {
				return fmt.Errorf("simulation stalled at tick %d: nothing ready and no arrivals pending with %d of %d processes incomplete",
					sim.Clock, len(sim.Processes)-sim.completed, len(sim.Processes))
			}
			sim.idle(next.Timestamp())
			continue
		}
		if err := sim.dispatch(p, slice); err != nil {
			return err
		}
	}

	logrus.Infof("[tick %07d] Simulation ended after %d dispatches", sim.Clock, sim.StepCount)
	return nil
}

// admit hands every arrival due at the current clock to the policy, in
// arrival order.
func (sim *Simulator) admit() {
	for _, p := range sim.arrivals.PopDue(sim.Clock) {
		logrus.Debugf("[tick %07d] << Arrival: %s (burst %d)", sim.Clock, p.ID, p.BurstTime)
		sim.policy.OnArrival(p, sim.Clock)
	}
}

// idle records an idle gap up to until and admits the arrivals found there.
func (sim *Simulator) idle(until int64) {
	logrus.Debugf("[tick %07d] CPU idle until %d", sim.Clock, until)
	sim.Timeline.Append(IdleID, sim.Clock, until)
	sim.Clock = until
	sim.admit()
}

// dispatch runs p for at most slice ticks, cutting the slice at the next
// arrival when the policy is preemptive.
func (sim *Simulator) dispatch(p *Process, slice int64) error {
	sim.StepCount++
	if prev := sim.lastRun; prev != nil && prev != p {
		sim.recordPreemption(prev, p)
	}
	sim.lastRun = nil

	start := sim.Clock
	end := start + slice
	if sim.policy.Preemptive() {
		if next := sim.arrivals.Peek(); next != nil && next.Timestamp() < end {
			end = next.Timestamp()
		}
	}

	p.RecordFirstStart(start)
	if err := p.Consume(end - start); err != nil {
		return fmt.Errorf("%s dispatch of %s at tick %d: %w", sim.policy.Name(), p.ID, start, err)
	}
	sim.Timeline.Append(p.ID, start, end)
	if sim.Trace != nil {
		sim.Trace.RecordDispatch(trace.DispatchRecord{
			ProcessID: p.ID,
			Clock:     start,
			Slice:     end - start,
			Remaining: p.RemainingTime,
		})
	}
	logrus.Debugf("[tick %07d] Dispatch %s for %d ticks (remaining %d)", start, p.ID, end-start, p.RemainingTime)

	sim.Clock = end
	sim.admit()

	if p.IsComplete() {
		p.RecordCompletion(end)
		sim.completed++
		logrus.Infof("[tick %07d] Finished process %s", end, p.ID)
		return nil
	}
	sim.policy.Requeue(p, end)
	sim.lastRun = p
	return nil
}

func (sim *Simulator) recordPreemption(prev, next *Process) {
	reason := "quantum-expired"
	if sim.policy.Preemptive() {
		reason = "shorter-remaining-time"
	}
	logrus.Debugf("[tick %07d] Preempt %s (remaining %d) for %s: %s", sim.Clock, prev.ID, prev.RemainingTime, next.ID, reason)
	if sim.Trace != nil {
		sim.Trace.RecordPreemption(trace.PreemptionRecord{
			ProcessID:   prev.ID,
			Clock:       sim.Clock,
			Remaining:   prev.RemainingTime,
			PreemptedBy: next.ID,
			Reason:      reason,
		})
	}
}

// Result bundles everything one run produced.
type Result struct {
	Config    RunConfig
	Processes []*Process
	Timeline  *Timeline
	Report    *Report
	Trace     *trace.SimulationTrace // nil unless tracing was requested
}

// Simulate builds a Simulator over procs, runs it and collects metrics.
// Tracing is enabled when tc.Level is TraceLevelDecisions.
func Simulate(cfg RunConfig, procs []*Process, tc trace.TraceConfig) (*Result, error) {
	s, err := NewSimulator(cfg, procs)
	if err != nil {
		return nil, err
	}
	if tc.Level == trace.TraceLevelDecisions {
		s.Trace = trace.NewSimulationTrace(tc)
	}
	if err := s.Run(); err != nil {
		return nil, err
	}
	report, err := CollectMetrics(s.Processes, s.Timeline)
	if err != nil {
		return nil, fmt.Errorf("collecting %s metrics: %w", cfg.Label(), err)
	}
	report.Algorithm = cfg.Algorithm
	if cfg.Algorithm == AlgorithmRoundRobin {
		report.Quantum = cfg.Quantum
	}
	return &Result{
		Config:    cfg,
		Processes: s.Processes,
		Timeline:  s.Timeline,
		Report:    report,
		Trace:     s.Trace,
	}, nil
}
