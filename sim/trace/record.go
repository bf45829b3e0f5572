// Package trace provides decision-trace recording for scheduling policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DispatchRecord captures a single dispatch decision.
type DispatchRecord struct {
	ProcessID string `json:"process_id" yaml:"process_id"`
	Clock     int64  `json:"clock" yaml:"clock"`         // tick the slice started
	Slice     int64  `json:"slice" yaml:"slice"`         // ticks actually run
	Remaining int64  `json:"remaining" yaml:"remaining"` // remaining time after the slice
}

// PreemptionRecord captures a process losing the CPU before completing.
type PreemptionRecord struct {
	ProcessID   string `json:"process_id" yaml:"process_id"`
	Clock       int64  `json:"clock" yaml:"clock"`
	Remaining   int64  `json:"remaining" yaml:"remaining"`
	PreemptedBy string `json:"preempted_by" yaml:"preempted_by"`
	Reason      string `json:"reason" yaml:"reason"` // "quantum-expired" or "shorter-remaining-time"
}
