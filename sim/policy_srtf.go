package sim

// SRTF (shortest remaining time first) always runs the ready process with the
// least remaining work, ties broken by earlier arrival then by ID.
// It is preemptive: every arrival is a decision point, and the running process
// loses the CPU only to a process with strictly smaller remaining time.
type SRTF struct {
	ready *RemainingTimeSet
	// incumbent is the process whose slice was just cut short by an arrival.
	// On ties it keeps the CPU.
	incumbent *Process
}

// NewSRTF creates an SRTF policy.
func NewSRTF() *SRTF {
	return &SRTF{ready: NewRemainingTimeSet()}
}

func (s *SRTF) Name() string { return AlgorithmSRTF }

func (s *SRTF) Preemptive() bool { return true }

func (s *SRTF) OnArrival(p *Process, _ int64) {
	s.ready.Insert(p)
}

func (s *SRTF) SelectNext(_ int64) (*Process, int64) {
	incumbent := s.incumbent
	s.incumbent = nil

	best := s.ready.Min()
	if best == nil {
		return nil, 0
	}
	// An arrival that only ties the interrupted process does not displace it.
	if incumbent != nil && best != incumbent && incumbent.RemainingTime <= best.RemainingTime {
		s.ready.Remove(incumbent)
		return incumbent, incumbent.RemainingTime
	}
	s.ready.PopMin()
	return best, best.RemainingTime
}

func (s *SRTF) Requeue(p *Process, _ int64) {
	s.ready.Insert(p)
	s.incumbent = p
}

func (s *SRTF) Len() int { return s.ready.Len() }
