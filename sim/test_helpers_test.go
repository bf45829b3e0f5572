package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustProcesses builds processes from (id, arrival, burst) triples.
func mustProcesses(t *testing.T, specs ...any) []*Process {
	t.Helper()
	require.Zero(t, len(specs)%3, "specs must be (id, arrival, burst) triples")
	procs := make([]*Process, 0, len(specs)/3)
	for i := 0; i < len(specs); i += 3 {
		p, err := NewProcess(specs[i].(string), int64(specs[i+1].(int)), int64(specs[i+2].(int)))
		require.NoError(t, err)
		procs = append(procs, p)
	}
	return procs
}

// randomProcesses draws n processes with seeded arrivals and bursts.
// Arrivals are clustered to exercise ties and idle gaps alike.
func randomProcesses(t *testing.T, seed int64, n int) []*Process {
	t.Helper()
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	arrivals := rng.ForSubsystem(SubsystemArrivals)
	bursts := rng.ForSubsystem(SubsystemBursts)
	procs := make([]*Process, n)
	var clock int64
	for i := range procs {
		clock += arrivals.Int63n(6)
		p, err := NewProcess(fmt.Sprintf("P%d", i+1), clock, 1+bursts.Int63n(9))
		require.NoError(t, err)
		procs[i] = p
	}
	return procs
}

var (
	rrQ2        = NewRunConfig(AlgorithmRoundRobin, 2)
	srtfCfg     = NewRunConfig(AlgorithmSRTF, 0)
	allPolicies = []RunConfig{rrQ2, NewRunConfig(AlgorithmRoundRobin, 1), NewRunConfig(AlgorithmRoundRobin, 5), srtfCfg}
)
