// Package sim provides the core discrete-event CPU scheduling simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process record and run state (remaining time, first start, completion)
//   - policy.go: the Policy interface and its two variants (policy_rr.go, policy_srtf.go)
//   - simulator.go: the event loop that advances the clock and records the timeline
//   - metrics.go: waiting, turnaround, response time and CPU utilization
//
// # Architecture
//
// The sim package owns the model and the engine; everything around it lives
// in sub-packages:
//   - sim/workload/: loading, writing and generating process descriptors
//   - sim/trace/: decision trace recording (dispatches, preemptions)
//
// # Determinism
//
// A run is a closed computation over in-memory data. Simultaneous arrivals
// are admitted in submission order, round robin queues arrivals ahead of the
// process whose quantum just expired, and SRTF breaks remaining-time ties by
// arrival time, then ID. Identical input always produces an identical timeline.
//
// The clock is a field of Simulator, so independent runs never interfere.
// Processes are mutated in place: give every concurrent run its own copy
// (see CloneAll and Compare).
package sim
