package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the layout of a --config YAML file. Every key is optional;
// values fill in for flags the user did not set.
// All keys must be listed to satisfy KnownFields(true) strict parsing.
type FileConfig struct {
	Algorithm  string `yaml:"algorithm"`
	// Quantum is nil when the key is absent, so an explicit 0 still reaches validation.
	Quantum    *int64 `yaml:"quantum"`
	Output     string `yaml:"output"`
	TraceLevel string `yaml:"trace_level"`
}

// LoadFileConfig parses a run configuration file.
// Uses strict field checking: typos must cause errors, not silent defaults.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}
