package sim

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procsched/procsched/sim/internal/testutil"
	"github.com/procsched/procsched/sim/trace"
)

// TestSimulator_GoldenDataset runs every hand-verified scenario and checks the
// exact timeline and per-process metrics.
func TestSimulator_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			procs := make([]*Process, len(tc.Processes))
			for i, gp := range tc.Processes {
				p, err := NewProcess(gp.ID, gp.ArrivalTime, gp.BurstTime)
				require.NoError(t, err)
				procs[i] = p
			}

			res, err := Simulate(NewRunConfig(tc.Algorithm, tc.Quantum), procs, trace.TraceConfig{})
			require.NoError(t, err)

			want := tc.Expected
			assert.Equal(t, want.Timeline, res.Timeline.String(), "timeline")
			assert.Equal(t, want.CompletionOrder, res.Report.CompletionOrder, "completion order")
			for _, pm := range res.Report.Processes {
				assert.Equal(t, want.Waiting[pm.ID], pm.WaitingTime, "waiting time of %s", pm.ID)
				assert.Equal(t, want.Turnaround[pm.ID], pm.TurnaroundTime, "turnaround time of %s", pm.ID)
				assert.Equal(t, want.Response[pm.ID], pm.ResponseTime, "response time of %s", pm.ID)
			}
			testutil.AssertFloat64Equal(t, "average_waiting_time", want.AverageWaitingTime, res.Report.AverageWaitingTime, 1e-9)
			assert.Equal(t, want.ContextSwitches, res.Report.ContextSwitches, "context switches")
			assert.Equal(t, want.IdleTime, res.Report.IdleTime, "idle time")
		})
	}
}

func TestSimulator_RoundRobinScenario(t *testing.T) {
	// GIVEN the three-process round-robin scenario with quantum 2
	procs := mustProcesses(t, "P1", 0, 5, "P2", 1, 3, "P3", 2, 1)
	s, err := NewSimulator(rrQ2, procs)
	require.NoError(t, err)

	// WHEN the simulation runs
	require.NoError(t, s.Run())

	// THEN P2 and P3, which arrived during P1's first slice, run before P1 again
	assert.Equal(t, "P1[0,2) P2[2,4) P3[4,5) P1[5,7) P2[7,8) P1[8,9)", s.Timeline.String())
	assert.Equal(t, int64(9), s.Clock)
	assert.Equal(t, 6, s.StepCount)
	for _, p := range procs {
		assert.True(t, p.Completed, "%s not completed", p.ID)
	}
	seq, err := s.Timeline.Sequence()
	require.NoError(t, err)
	assert.Equal(t, "P1 P1 P2 P2 P3 P1 P1 P2 P1", strings.Join(seq, " "))
}

func TestSimulator_SRTFScenario_PreemptsAtArrival(t *testing.T) {
	// GIVEN the four-process SRTF scenario
	procs := mustProcesses(t, "P1", 0, 8, "P2", 1, 4, "P3", 2, 9, "P4", 3, 5)

	// WHEN simulated with decision tracing
	res, err := Simulate(srtfCfg, procs, trace.TraceConfig{Level: trace.TraceLevelDecisions})
	require.NoError(t, err)

	// THEN P1 loses the CPU to P2 at t=1
	require.NotNil(t, res.Trace)
	require.Len(t, res.Trace.Preemptions, 1)
	pre := res.Trace.Preemptions[0]
	assert.Equal(t, "P1", pre.ProcessID)
	assert.Equal(t, "P2", pre.PreemptedBy)
	assert.Equal(t, int64(1), pre.Clock)
	assert.Equal(t, int64(7), pre.Remaining)
	assert.Equal(t, "shorter-remaining-time", pre.Reason)

	// AND completions follow P2(5) P4(10) P1(17) P3(26)
	want := map[string]int64{"P2": 5, "P4": 10, "P1": 17, "P3": 26}
	for _, p := range res.Processes {
		assert.Equal(t, want[p.ID], p.CompletionTime, "completion of %s", p.ID)
	}
	assert.Equal(t, []string{"P2", "P4", "P1", "P3"}, res.Report.CompletionOrder)
	assert.Len(t, res.Trace.Dispatches, 7)
}

func TestSimulator_RoundRobinTrace_QuantumExpired(t *testing.T) {
	procs := mustProcesses(t, "P1", 0, 5, "P2", 1, 3, "P3", 2, 1)
	res, err := Simulate(rrQ2, procs, trace.TraceConfig{Level: trace.TraceLevelDecisions})
	require.NoError(t, err)
	require.Len(t, res.Trace.Preemptions, 3)
	for _, pre := range res.Trace.Preemptions {
		assert.Equal(t, "quantum-expired", pre.Reason)
	}
}

func TestSimulate_TracingDisabledByDefault(t *testing.T) {
	res, err := Simulate(rrQ2, mustProcesses(t, "A", 0, 3), trace.TraceConfig{})
	require.NoError(t, err)
	assert.Nil(t, res.Trace)
	assert.Equal(t, "rr", res.Report.Algorithm)
	assert.Equal(t, int64(2), res.Report.Quantum)
}

func TestSimulate_SRTFReportOmitsQuantum(t *testing.T) {
	res, err := Simulate(NewRunConfig(AlgorithmSRTF, 7), mustProcesses(t, "A", 0, 3), trace.TraceConfig{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Report.Quantum)
}

func TestSimulator_IdleUntilFirstArrival(t *testing.T) {
	// GIVEN a single process that arrives late
	procs := mustProcesses(t, "late", 10, 2)

	// WHEN simulated under every policy
	for _, cfg := range allPolicies {
		t.Run(cfg.Label(), func(t *testing.T) {
			res, err := Simulate(cfg, CloneAll(procs), trace.TraceConfig{})
			require.NoError(t, err)

			// THEN the timeline starts at the first arrival, not at zero
			assert.Equal(t, []Interval{{ProcessID: "late", Start: 10, End: 12}}, res.Timeline.Compact())
			assert.Equal(t, int64(0), res.Report.IdleTime)
			assert.Equal(t, int64(2), res.Report.TotalTime)
		})
	}
}

func TestSimulator_LargeBurstIsEventDriven(t *testing.T) {
	// GIVEN a burst far too large for a per-tick loop
	procs := mustProcesses(t, "big", 0, 1_000_000_000_000)
	s, err := NewSimulator(srtfCfg, procs)
	require.NoError(t, err)

	// WHEN run
	require.NoError(t, s.Run())

	// THEN a single dispatch covers the whole burst
	assert.Equal(t, 1, s.StepCount)
	assert.Equal(t, int64(1_000_000_000_000), s.Clock)
}

func TestNewSimulator_Errors(t *testing.T) {
	used := mustProcesses(t, "used", 0, 2)
	require.NoError(t, used[0].Consume(1))

	tests := []struct {
		name    string
		cfg     RunConfig
		procs   []*Process
		wantErr error
	}{
		{"empty input", rrQ2, nil, ErrNoProcesses},
		{"empty input srtf", srtfCfg, []*Process{}, ErrNoProcesses},
		{"zero quantum", NewRunConfig("rr", 0), mustProcesses(t, "A", 0, 1), ErrInvalidConfiguration},
		{"negative quantum", NewRunConfig("rr", -1), mustProcesses(t, "A", 0, 1), ErrInvalidConfiguration},
		{"unknown algorithm", NewRunConfig("mlfq", 2), mustProcesses(t, "A", 0, 1), ErrInvalidConfiguration},
		{"bad config reported before empty input", NewRunConfig("rr", 0), nil, ErrInvalidConfiguration},
		{"duplicate ids", rrQ2, mustProcesses(t, "A", 0, 1, "A", 2, 1), ErrInvalidProcess},
		{"nil process", rrQ2, []*Process{nil}, ErrInvalidProcess},
		{"already simulated", rrQ2, used, ErrInvalidProcess},
		{"arrival plus burst overflows", rrQ2, mustProcesses(t, "A", math.MaxInt64-1, 5), ErrInvalidProcess},
		{"total burst overflows", srtfCfg, mustProcesses(t, "A", 0, math.MaxInt64, "B", 0, 1), ErrInvalidProcess},
		{"queued work pushes completion past the clock", srtfCfg, mustProcesses(t, "B", math.MaxInt64-5, 1, "A", math.MaxInt64-6, 6), ErrInvalidProcess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSimulator(tt.cfg, tt.procs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			assert.Nil(t, s)
		})
	}
}

func TestNewSimulator_AssignsSubmissionIndex(t *testing.T) {
	procs := mustProcesses(t, "A", 0, 1, "B", 0, 1)
	procs[0].Index, procs[1].Index = 7, 7
	_, err := NewSimulator(rrQ2, procs)
	require.NoError(t, err)
	assert.Equal(t, 0, procs[0].Index)
	assert.Equal(t, 1, procs[1].Index)
}

func TestNewSimulator_ErrorLeavesIndicesUntouched(t *testing.T) {
	// GIVEN a set whose duplicate id is only found after the first process
	procs := mustProcesses(t, "A", 0, 1, "B", 0, 1, "A", 3, 1)
	for _, p := range procs {
		p.Index = -1
	}

	// WHEN the simulator is rejected
	_, err := NewSimulator(rrQ2, procs)
	require.True(t, errors.Is(err, ErrInvalidProcess), "got %v", err)

	// THEN no process was renumbered
	for _, p := range procs {
		assert.Equal(t, -1, p.Index, "index of %s", p.ID)
	}
}

func TestSimulate_LargestRepresentableHorizon(t *testing.T) {
	// GIVEN a process finishing exactly at the largest representable tick
	procs := mustProcesses(t, "A", math.MaxInt64-5, 5)

	// WHEN simulated
	res, err := Simulate(rrQ2, procs, trace.TraceConfig{})

	// THEN it completes without wrapping the clock
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), procs[0].CompletionTime)
	assert.Equal(t, 3, res.Timeline.Len())

	// AND early work ahead of a late arrival does not count against the horizon
	procs = mustProcesses(t, "early", 0, 10, "late", math.MaxInt64-5, 5)
	_, err = Simulate(srtfCfg, procs, trace.TraceConfig{})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), procs[1].CompletionTime)
}

func TestSimulator_RunTwiceFails(t *testing.T) {
	s, err := NewSimulator(rrQ2, mustProcesses(t, "A", 0, 1))
	require.NoError(t, err)
	require.NoError(t, s.Run())
	assert.Error(t, s.Run())
}

func TestSimulator_ReusedProcessesRejectedUntilCloned(t *testing.T) {
	// GIVEN processes that already went through a run
	procs := mustProcesses(t, "A", 0, 2, "B", 1, 2)
	_, err := Simulate(rrQ2, procs, trace.TraceConfig{})
	require.NoError(t, err)

	// WHEN running them again
	_, err = Simulate(srtfCfg, procs, trace.TraceConfig{})

	// THEN the run is refused, and cloning makes it possible
	assert.True(t, errors.Is(err, ErrInvalidProcess))
	_, err = Simulate(srtfCfg, CloneAll(procs), trace.TraceConfig{})
	assert.NoError(t, err)
}

// overrunPolicy grants one tick more than the process has left.
type overrunPolicy struct{ RoundRobin }

func (o *overrunPolicy) SelectNext(now int64) (*Process, int64) {
	p, _ := o.RoundRobin.SelectNext(now)
	if p == nil {
		return nil, 0
	}
	return p, p.RemainingTime + 1
}

func TestSimulator_PolicyDefectSurfacesAsOverconsumption(t *testing.T) {
	s, err := NewSimulator(rrQ2, mustProcesses(t, "A", 0, 3))
	require.NoError(t, err)
	s.policy = &overrunPolicy{RoundRobin{quantum: 2}}

	err = s.Run()
	assert.True(t, errors.Is(err, ErrOverconsumption), "got %v", err)
}

func TestSimulator_Determinism(t *testing.T) {
	// GIVEN one seeded workload
	procs := randomProcesses(t, 42, 40)

	for _, cfg := range allPolicies {
		t.Run(cfg.Label(), func(t *testing.T) {
			// WHEN simulated twice on independent clones
			a, err := Simulate(cfg, CloneAll(procs), trace.TraceConfig{})
			require.NoError(t, err)
			b, err := Simulate(cfg, CloneAll(procs), trace.TraceConfig{})
			require.NoError(t, err)

			// THEN the outputs are identical
			assert.Equal(t, a.Timeline.String(), b.Timeline.String())
			assert.Equal(t, a.Report, b.Report)
		})
	}
}
