package sim

import "github.com/sirupsen/logrus"

// RoundRobin grants each ready process up to Quantum ticks in FIFO order.
// Arrivals never interrupt a slice. When a slice ends without completing the
// process, processes that arrived during the slice are queued ahead of it.
type RoundRobin struct {
	quantum int64
	ready   FIFOQueue
}

// NewRoundRobin creates a RoundRobin policy. Panics on a non-positive quantum;
// NewPolicy validates before calling.
func NewRoundRobin(quantum int64) *RoundRobin {
	if quantum <= 0 {
		panic("NewRoundRobin: quantum must be positive")
	}
	return &RoundRobin{quantum: quantum}
}

func (rr *RoundRobin) Name() string { return AlgorithmRoundRobin }

func (rr *RoundRobin) Preemptive() bool { return false }

// Quantum returns the configured time slice.
func (rr *RoundRobin) Quantum() int64 { return rr.quantum }

func (rr *RoundRobin) OnArrival(p *Process, _ int64) {
	rr.ready.Enqueue(p)
}

func (rr *RoundRobin) SelectNext(now int64) (*Process, int64) {
	p := rr.ready.Dequeue()
	if p == nil {
		return nil, 0
	}
	logrus.Debugf("[tick %07d] rr ready queue after dequeue of %s: %s", now, p.ID, rr.ready.String())
	return p, min(rr.quantum, p.RemainingTime)
}

func (rr *RoundRobin) Requeue(p *Process, _ int64) {
	rr.ready.Enqueue(p)
}

func (rr *RoundRobin) Len() int { return rr.ready.Len() }
