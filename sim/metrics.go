// Derives per-process and aggregate scheduling metrics from a finished run:
// waiting, turnaround and response time, CPU utilization, throughput.

package sim

import (
	"fmt"
	"math"
	"sort"
)

// ProcessMetrics holds the derived metrics of one completed process.
// All times are in ticks.
type ProcessMetrics struct {
	ID             string `json:"id" yaml:"id"`
	ArrivalTime    int64  `json:"arrival_time" yaml:"arrival_time"`
	BurstTime      int64  `json:"burst_time" yaml:"burst_time"`
	FirstStartTime int64  `json:"first_start_time" yaml:"first_start_time"`
	CompletionTime int64  `json:"completion_time" yaml:"completion_time"`
	TurnaroundTime int64  `json:"turnaround_time" yaml:"turnaround_time"` // completion - arrival
	WaitingTime    int64  `json:"waiting_time" yaml:"waiting_time"`       // turnaround - burst
	ResponseTime   int64  `json:"response_time" yaml:"response_time"`     // first start - arrival
	Slices         int    `json:"slices" yaml:"slices"`                   // number of timeline intervals the process ran in
}

// Distribution captures statistical summary of a metric.
type Distribution struct {
	Mean  float64 `json:"mean" yaml:"mean"`
	P50   float64 `json:"p50" yaml:"p50"`
	P95   float64 `json:"p95" yaml:"p95"`
	P99   float64 `json:"p99" yaml:"p99"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Count int     `json:"count" yaml:"count"`
}

// NewDistribution computes a Distribution from raw values.
// Returns zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	return Distribution{
		Mean:  sum / float64(len(sorted)),
		P50:   percentile(sorted, 50),
		P95:   percentile(sorted, 95),
		P99:   percentile(sorted, 99),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
}

// percentile computes the p-th percentile using linear interpolation.
// Input must be sorted.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Report aggregates the outcome of one simulation run for final reporting.
type Report struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Quantum   int64  `json:"quantum,omitempty" yaml:"quantum,omitempty"`

	Processes       []ProcessMetrics `json:"processes" yaml:"processes"` // submission order
	CompletionOrder []string         `json:"completion_order" yaml:"completion_order"`
	Timeline        []Interval       `json:"timeline" yaml:"timeline"`

	AverageWaitingTime    float64 `json:"average_waiting_time" yaml:"average_waiting_time"`
	AverageTurnaroundTime float64 `json:"average_turnaround_time" yaml:"average_turnaround_time"`
	AverageResponseTime   float64 `json:"average_response_time" yaml:"average_response_time"`

	Waiting    Distribution `json:"waiting" yaml:"waiting"`
	Turnaround Distribution `json:"turnaround" yaml:"turnaround"`
	Response   Distribution `json:"response" yaml:"response"`

	StartTime       int64   `json:"start_time" yaml:"start_time"` // first arrival
	EndTime         int64   `json:"end_time" yaml:"end_time"`     // last completion
	TotalTime       int64   `json:"total_time" yaml:"total_time"`
	IdleTime        int64   `json:"idle_time" yaml:"idle_time"`
	CPUUtilization  float64 `json:"cpu_utilization" yaml:"cpu_utilization"`
	Throughput      float64 `json:"throughput" yaml:"throughput"` // completed processes per tick
	ContextSwitches int     `json:"context_switches" yaml:"context_switches"`
}

// Metrics returns the ProcessMetrics for id.
func (r *Report) Metrics(id string) (ProcessMetrics, bool) {
	for _, pm := range r.Processes {
		if pm.ID == id {
			return pm, true
		}
	}
	return ProcessMetrics{}, false
}

// CollectMetrics derives a Report from completed processes and their timeline.
// It is a pure function: neither argument is modified.
// Any inconsistency (an incomplete process, a negative metric, a timeline
// that does not account for every burst tick) returns ErrMetricInvariant.
func CollectMetrics(procs []*Process, tl *Timeline) (*Report, error) {
	if len(procs) == 0 {
		return nil, ErrNoProcesses
	}
	if tl == nil || tl.Len() == 0 {
		return nil, fmt.Errorf("%w: empty timeline", ErrMetricInvariant)
	}

	runTime := tl.RunTime()
	slices := make(map[string]int)
	for _, iv := range tl.Intervals() {
		if !iv.IsIdle() {
			slices[iv.ProcessID]++
		}
	}

	report := &Report{
		Processes: make([]ProcessMetrics, 0, len(procs)),
		Timeline:  append([]Interval(nil), tl.Intervals()...),
	}

	firstArrival := int64(math.MaxInt64)
	var lastCompletion int64
	waiting := make([]float64, 0, len(procs))
	turnaround := make([]float64, 0, len(procs))
	response := make([]float64, 0, len(procs))

	for _, p := range procs {
		if !p.Completed || !p.IsComplete() {
			return nil, fmt.Errorf("%w: process %s did not complete", ErrMetricInvariant, p.ID)
		}
		if !p.Started {
			return nil, fmt.Errorf("%w: process %s completed without a recorded first start", ErrMetricInvariant, p.ID)
		}
		if runTime[p.ID] != p.BurstTime {
			return nil, fmt.Errorf("%w: process %s ran %d ticks on the timeline but has burst %d",
				ErrMetricInvariant, p.ID, runTime[p.ID], p.BurstTime)
		}

		pm := ProcessMetrics{
			ID:             p.ID,
			ArrivalTime:    p.ArrivalTime,
			BurstTime:      p.BurstTime,
			FirstStartTime: p.FirstStartTime,
			CompletionTime: p.CompletionTime,
			TurnaroundTime: p.CompletionTime - p.ArrivalTime,
			WaitingTime:    p.CompletionTime - p.ArrivalTime - p.BurstTime,
			ResponseTime:   p.FirstStartTime - p.ArrivalTime,
			Slices:         slices[p.ID],
		}
		if pm.TurnaroundTime < 0 || pm.WaitingTime < 0 || pm.ResponseTime < 0 {
			return nil, fmt.Errorf("%w: process %s has turnaround=%d waiting=%d response=%d",
				ErrMetricInvariant, p.ID, pm.TurnaroundTime, pm.WaitingTime, pm.ResponseTime)
		}
		report.Processes = append(report.Processes, pm)

		waiting = append(waiting, float64(pm.WaitingTime))
		turnaround = append(turnaround, float64(pm.TurnaroundTime))
		response = append(response, float64(pm.ResponseTime))
		firstArrival = min(firstArrival, p.ArrivalTime)
		lastCompletion = max(lastCompletion, p.CompletionTime)
	}

	if tl.Start() != firstArrival || tl.End() != lastCompletion {
		return nil, fmt.Errorf("%w: timeline covers [%d,%d) but processes span [%d,%d)",
			ErrMetricInvariant, tl.Start(), tl.End(), firstArrival, lastCompletion)
	}

	report.Waiting = NewDistribution(waiting)
	report.Turnaround = NewDistribution(turnaround)
	report.Response = NewDistribution(response)
	report.AverageWaitingTime = report.Waiting.Mean
	report.AverageTurnaroundTime = report.Turnaround.Mean
	report.AverageResponseTime = report.Response.Mean

	report.StartTime = firstArrival
	report.EndTime = lastCompletion
	report.TotalTime = lastCompletion - firstArrival
	report.IdleTime = tl.IdleTime()
	if report.IdleTime < 0 || report.IdleTime > report.TotalTime {
		return nil, fmt.Errorf("%w: idle time %d outside [0,%d]", ErrMetricInvariant, report.IdleTime, report.TotalTime)
	}
	report.CPUUtilization = float64(report.TotalTime-report.IdleTime) / float64(report.TotalTime)
	report.Throughput = float64(len(procs)) / float64(report.TotalTime)
	report.ContextSwitches = countContextSwitches(tl)
	report.CompletionOrder = completionOrder(procs)

	return report, nil
}

// countContextSwitches counts dispatches of a process different from the
// one that last held the CPU. Idle gaps do not reset the last holder.
func countContextSwitches(tl *Timeline) int {
	switches := 0
	last := ""
	for _, iv := range tl.Intervals() {
		if iv.IsIdle() {
			continue
		}
		if last != "" && iv.ProcessID != last {
			switches++
		}
		last = iv.ProcessID
	}
	return switches
}

// completionOrder lists process IDs by completion time, then submission index.
func completionOrder(procs []*Process) []string {
	sorted := make([]*Process, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CompletionTime != sorted[j].CompletionTime {
			return sorted[i].CompletionTime < sorted[j].CompletionTime
		}
		return sorted[i].Index < sorted[j].Index
	})
	ids := make([]string, len(sorted))
	for i, p := range sorted {
		ids[i] = p.ID
	}
	return ids
}
