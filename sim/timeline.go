package sim

import (
	"fmt"
	"strings"
)

// Interval is one contiguous stretch of simulated time during which a single
// process (or nobody, for IdleID) held the CPU. End is exclusive.
type Interval struct {
	ProcessID string `json:"process_id" yaml:"process_id"`
	Start     int64  `json:"start" yaml:"start"`
	End       int64  `json:"end" yaml:"end"`
}

// Duration returns End - Start.
func (iv Interval) Duration() int64 {
	return iv.End - iv.Start
}

// IsIdle reports whether the interval is an idle gap.
func (iv Interval) IsIdle() bool {
	return iv.ProcessID == IdleID
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s[%d,%d)", iv.ProcessID, iv.Start, iv.End)
}

// Timeline is the ordered execution record of one simulation run.
// Intervals are appended in time order and are contiguous: each interval
// starts where the previous one ended.
type Timeline struct {
	intervals []Interval
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{intervals: make([]Interval, 0)}
}

// Append records the interval [start, end) for processID.
// Panics if the interval is empty or does not start where the timeline ends;
// both mean the engine lost track of its clock.
func (tl *Timeline) Append(processID string, start, end int64) {
	if end <= start {
		panic(fmt.Sprintf("Timeline.Append: empty interval %s[%d,%d)", processID, start, end))
	}
	if n := len(tl.intervals); n > 0 && tl.intervals[n-1].End != start {
		panic(fmt.Sprintf("Timeline.Append: interval %s[%d,%d) does not continue timeline ending at %d",
			processID, start, end, tl.intervals[n-1].End))
	}
	tl.intervals = append(tl.intervals, Interval{ProcessID: processID, Start: start, End: end})
}

// Len returns the number of recorded intervals.
func (tl *Timeline) Len() int {
	return len(tl.intervals)
}

// Intervals returns the recorded intervals. The returned slice is the
// timeline's internal storage; callers MUST NOT modify it.
func (tl *Timeline) Intervals() []Interval {
	return tl.intervals
}

// Start returns the start of the first interval, or 0 for an empty timeline.
func (tl *Timeline) Start() int64 {
	if len(tl.intervals) == 0 {
		return 0
	}
	return tl.intervals[0].Start
}

// End returns the end of the last interval, or 0 for an empty timeline.
func (tl *Timeline) End() int64 {
	if len(tl.intervals) == 0 {
		return 0
	}
	return tl.intervals[len(tl.intervals)-1].End
}

// IdleTime sums the durations of all idle intervals.
func (tl *Timeline) IdleTime() int64 {
	var idle int64
	for _, iv := range tl.intervals {
		if iv.IsIdle() {
			idle += iv.Duration()
		}
	}
	return idle
}

// RunTime returns the total ticks each process held the CPU.
func (tl *Timeline) RunTime() map[string]int64 {
	run := make(map[string]int64)
	for _, iv := range tl.intervals {
		if !iv.IsIdle() {
			run[iv.ProcessID] += iv.Duration()
		}
	}
	return run
}

// Compact returns a copy of the timeline with adjacent intervals of the
// same process merged. Used for Gantt rendering.
func (tl *Timeline) Compact() []Interval {
	out := make([]Interval, 0, len(tl.intervals))
	for _, iv := range tl.intervals {
		if n := len(out); n > 0 && out[n-1].ProcessID == iv.ProcessID {
			out[n-1].End = iv.End
			continue
		}
		out = append(out, iv)
	}
	return out
}

// MaxSequenceTicks bounds the span Sequence will expand.
const MaxSequenceTicks int64 = 100_000

// Sequence expands the timeline into one entry per tick, naming the process
// that ran in that tick (IdleID for idle ticks). Spans longer than
// MaxSequenceTicks return ErrSequenceTooLong.
func (tl *Timeline) Sequence() ([]string, error) {
	span := tl.End() - tl.Start()
	if span > MaxSequenceTicks {
		return nil, fmt.Errorf("%w: %d ticks, limit %d", ErrSequenceTooLong, span, MaxSequenceTicks)
	}
	seq := make([]string, 0, span)
	for _, iv := range tl.intervals {
		for t := iv.Start; t < iv.End; t++ {
			seq = append(seq, iv.ProcessID)
		}
	}
	return seq, nil
}

func (tl *Timeline) String() string {
	parts := make([]string, len(tl.intervals))
	for i, iv := range tl.intervals {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " ")
}
