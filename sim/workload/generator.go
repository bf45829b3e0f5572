package workload

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/procsched/procsched/sim"
)

// Arrival process names accepted by GeneratorConfig.Arrival.
const (
	ArrivalPoisson  = "poisson"
	ArrivalConstant = "constant"
)

// GeneratorConfig describes a synthetic process list.
type GeneratorConfig struct {
	Count    int     // number of processes
	Seed     int64   // same seed + same config = same list
	Arrival  string  // "poisson" (default) or "constant"
	Rate     float64 // arrivals per tick
	BurstMin int64   // inclusive
	BurstMax int64   // inclusive
	IDPrefix string  // IDs are IDPrefix + 1-based position; default "P"
}

// DefaultGeneratorConfig returns a small, moderately loaded workload.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Count:    8,
		Seed:     42,
		Arrival:  ArrivalPoisson,
		Rate:     0.25,
		BurstMin: 1,
		BurstMax: 10,
		IDPrefix: "P",
	}
}

// Validate checks the configuration without clamping.
func (c GeneratorConfig) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}
	if c.Rate <= 0 || math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return fmt.Errorf("rate must be a finite positive number, got %v", c.Rate)
	}
	if c.Arrival != "" && c.Arrival != ArrivalPoisson && c.Arrival != ArrivalConstant {
		return fmt.Errorf("unknown arrival process %q; valid: poisson, constant", c.Arrival)
	}
	if c.BurstMax < 1 {
		return fmt.Errorf("burst max must be at least 1, got %d", c.BurstMax)
	}
	if c.BurstMin > c.BurstMax {
		return fmt.Errorf("burst min %d exceeds burst max %d", c.BurstMin, c.BurstMax)
	}
	return nil
}

// Generate draws a deterministic process list. The first process arrives at
// tick 0; later arrivals follow the configured arrival process. Bursts are
// uniform in [BurstMin, BurstMax]. A BurstMin below 1 is raised to 1 with a
// warning.
func Generate(cfg GeneratorConfig) ([]ProcessSpec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	if cfg.BurstMin < 1 {
		logrus.Warnf("burst min %d is not positive; clamping to 1", cfg.BurstMin)
		cfg.BurstMin = 1
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "P"
	}

	var sampler ArrivalSampler
	switch cfg.Arrival {
	case ArrivalConstant:
		sampler = NewConstantSampler(int64(math.Round(1 / cfg.Rate)))
	default:
		sampler = NewPoissonSampler(cfg.Rate)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrivals)
	burstRNG := rng.ForSubsystem(sim.SubsystemBursts)
	span := cfg.BurstMax - cfg.BurstMin + 1

	specs := make([]ProcessSpec, cfg.Count)
	var clock int64
	for i := range specs {
		if i > 0 {
			clock += sampler.SampleIAT(arrivalRNG)
		}
		specs[i] = ProcessSpec{
			ID:          fmt.Sprintf("%s%d", cfg.IDPrefix, i+1),
			ArrivalTime: clock,
			BurstTime:   cfg.BurstMin + burstRNG.Int63n(span),
		}
	}
	logrus.Debugf("generated %d processes over [0, %d] (seed=%d)", cfg.Count, clock, cfg.Seed)
	return specs, nil
}
