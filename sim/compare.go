package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/procsched/procsched/sim/trace"
)

// Compare runs every configuration over its own clone of procs, concurrently,
// and returns the results in configuration order. procs is never mutated.
// All configurations are validated before any run starts; run failures are
// joined into one error.
func Compare(procs []*Process, tc trace.TraceConfig, cfgs ...RunConfig) ([]*Result, error) {
	if len(procs) == 0 {
		return nil, ErrNoProcesses
	}
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("%w: no configurations to compare", ErrInvalidConfiguration)
	}
	for _, cfg := range cfgs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	for i, p := range procs {
		if p == nil {
			return nil, fmt.Errorf("%w: nil process at position %d", ErrInvalidProcess, i)
		}
	}

	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))
	var wg sync.WaitGroup
	wg.Add(len(cfgs))
	for i, cfg := range cfgs {
		go func(i int, cfg RunConfig) {
			defer wg.Done()
			res, err := Simulate(cfg, CloneAll(procs), tc)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", cfg.Label(), err)
				return
			}
			results[i] = res
		}(i, cfg)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}
