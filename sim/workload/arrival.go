package workload

import "math/rand"

// ArrivalSampler generates inter-arrival times in ticks.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time. Never negative;
	// zero means a simultaneous arrival.
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed inter-arrival times (CV=1).
type PoissonSampler struct {
	rate float64 // arrivals per tick
}

// NewPoissonSampler returns a sampler for the given arrival rate.
// Panics if rate is not positive; callers validate first.
func NewPoissonSampler(rate float64) *PoissonSampler {
	if rate <= 0 {
		panic("NewPoissonSampler: rate must be positive")
	}
	return &PoissonSampler{rate: rate}
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() / s.rate)
}

// ConstantSampler spaces arrivals evenly.
type ConstantSampler struct {
	gap int64
}

// NewConstantSampler returns a sampler that always yields gap.
func NewConstantSampler(gap int64) *ConstantSampler {
	return &ConstantSampler{gap: max(gap, 0)}
}

func (s *ConstantSampler) SampleIAT(_ *rand.Rand) int64 {
	return s.gap
}
