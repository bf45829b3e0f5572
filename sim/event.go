package sim

import "container/heap"

// ArrivalEvent represents a process becoming ready at a fixed simulated time.
type ArrivalEvent struct {
	time    int64    // Simulation time of arrival (in ticks)
	Process *Process // The arriving process
}

// NewArrivalEvent creates the arrival event for p at p.ArrivalTime.
func NewArrivalEvent(p *Process) *ArrivalEvent {
	return &ArrivalEvent{time: p.ArrivalTime, Process: p}
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() int64 {
	return e.time
}

// ArrivalQueue implements a priority queue of pending arrivals with
// deterministic ordering.
// Order by: timestamp → submission index
type ArrivalQueue struct {
	events []*ArrivalEvent
}

// NewArrivalQueue creates an ArrivalQueue holding one event per process.
func NewArrivalQueue(procs []*Process) *ArrivalQueue {
	q := &ArrivalQueue{events: make([]*ArrivalEvent, 0, len(procs))}
	for _, p := range procs {
		q.events = append(q.events, NewArrivalEvent(p))
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *ArrivalQueue) Len() int {
	return len(q.events)
}

// Less implements heap.Interface with deterministic ordering
func (q *ArrivalQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.time != ej.time {
		return ei.time < ej.time
	}
	return ei.Process.Index < ej.Process.Index
}

// Swap implements heap.Interface
func (q *ArrivalQueue) Swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
}

// Push implements heap.Interface
func (q *ArrivalQueue) Push(x any) {
	q.events = append(q.events, x.(*ArrivalEvent))
}

// Pop implements heap.Interface
func (q *ArrivalQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	q.events = old[0 : n-1]
	return item
}

// Peek returns the next event without removing it, or nil when empty.
func (q *ArrivalQueue) Peek() *ArrivalEvent {
	if q.Len() == 0 {
		return nil
	}
	return q.events[0]
}

// PopDue removes and returns, in order, every arrival with timestamp <= now.
func (q *ArrivalQueue) PopDue(now int64) []*Process {
	var due []*Process
	for q.Len() > 0 && q.events[0].time <= now {
		due = append(due, heap.Pop(q).(*ArrivalEvent).Process)
	}
	return due
}
