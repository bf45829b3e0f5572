package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches      int            `json:"total_dispatches" yaml:"total_dispatches"`
	Preemptions          int            `json:"preemptions" yaml:"preemptions"`
	MeanSlice            float64        `json:"mean_slice" yaml:"mean_slice"`
	MaxSlice             int64          `json:"max_slice" yaml:"max_slice"`
	UniqueProcesses      int            `json:"unique_processes" yaml:"unique_processes"`
	DispatchDistribution map[string]int `json:"dispatch_distribution" yaml:"dispatch_distribution"` // process ID → dispatch count
	PreemptionReasons    map[string]int `json:"preemption_reasons" yaml:"preemption_reasons"`       // reason → count
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchDistribution: make(map[string]int),
		PreemptionReasons:    make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	if len(st.Dispatches) > 0 {
		var total int64
		for _, d := range st.Dispatches {
			summary.DispatchDistribution[d.ProcessID]++
			total += d.Slice
			if d.Slice > summary.MaxSlice {
				summary.MaxSlice = d.Slice
			}
		}
		summary.MeanSlice = float64(total) / float64(len(st.Dispatches))
	}

	summary.Preemptions = len(st.Preemptions)
	for _, p := range st.Preemptions {
		summary.PreemptionReasons[p.Reason]++
	}

	summary.UniqueProcesses = len(summary.DispatchDistribution)

	return summary
}
