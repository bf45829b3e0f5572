package sim

import "fmt"

// Recognized algorithm names.
const (
	AlgorithmRoundRobin = "rr"
	AlgorithmSRTF       = "srtf"
)

// DefaultQuantum is the round-robin time slice used when none is configured.
const DefaultQuantum int64 = 2

// ValidAlgorithms is the set of recognized algorithm names.
// Shared by Validate() and NewPolicy() to avoid duplication.
var ValidAlgorithms = map[string]bool{AlgorithmRoundRobin: true, AlgorithmSRTF: true}

// IsValidAlgorithm returns true if name is a recognized algorithm.
func IsValidAlgorithm(name string) bool {
	return ValidAlgorithms[name]
}

// RunConfig selects the scheduling policy for one simulation run.
type RunConfig struct {
	Algorithm string `yaml:"algorithm"` // "rr" or "srtf"
	Quantum   int64  `yaml:"quantum"`   // round-robin time slice in ticks; ignored by srtf
}

// NewRunConfig creates a RunConfig. It does not validate.
func NewRunConfig(algorithm string, quantum int64) RunConfig {
	return RunConfig{Algorithm: algorithm, Quantum: quantum}
}

// Validate checks the algorithm name and, for round robin, the quantum.
func (c RunConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfiguration, c.Algorithm)
	}
	if c.Algorithm == AlgorithmRoundRobin && c.Quantum <= 0 {
		return fmt.Errorf("%w: round-robin quantum must be positive, got %d", ErrInvalidConfiguration, c.Quantum)
	}
	return nil
}

// Label returns a short human-readable name, e.g. "rr(q=2)" or "srtf".
func (c RunConfig) Label() string {
	if c.Algorithm == AlgorithmRoundRobin {
		return fmt.Sprintf("%s(q=%d)", c.Algorithm, c.Quantum)
	}
	return c.Algorithm
}
