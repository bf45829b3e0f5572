// Package workload reads, writes and generates process lists for the
// scheduling simulator.
//
// The canonical interchange format is a JSON array of
// {"id", "arrival_time", "burst_time"} objects. YAML (a top-level
// "processes" list) and CSV (with a header row) carry the same records.
package workload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/procsched/procsched/sim"
)

// ProcessSpec is one input record.
type ProcessSpec struct {
	ID          string `json:"id" yaml:"id"`
	ArrivalTime int64  `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int64  `json:"burst_time" yaml:"burst_time"`
}

// UnmarshalJSON accepts the id as either a string or an integer.
// Process lists written by hand frequently use bare numbers.
func (s *ProcessSpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		ArrivalTime int64           `json:"arrival_time"`
		BurstTime   int64           `json:"burst_time"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	*s = ProcessSpec{ID: id, ArrivalTime: raw.ArrivalTime, BurstTime: raw.BurstTime}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", fmt.Errorf("id must be a string or an integer, got %s", raw)
	}
	if _, err := strconv.ParseInt(num.String(), 10, 64); err != nil {
		return "", fmt.Errorf("id must be a string or an integer, got %s", raw)
	}
	return num.String(), nil
}

// ToProcesses validates every record and builds fresh simulator processes.
// Errors name the offending record by position.
func ToProcesses(specs []ProcessSpec) ([]*sim.Process, error) {
	procs := make([]*sim.Process, 0, len(specs))
	for i, s := range specs {
		p, err := sim.NewProcess(s.ID, s.ArrivalTime, s.BurstTime)
		if err != nil {
			return nil, fmt.Errorf("process[%d]: %w", i, err)
		}
		procs = append(procs, p)
	}
	return procs, nil
}

// FromProcesses converts simulator processes back into input records.
// Run state is dropped.
func FromProcesses(procs []*sim.Process) []ProcessSpec {
	specs := make([]ProcessSpec, len(procs))
	for i, p := range procs {
		specs[i] = ProcessSpec{ID: p.ID, ArrivalTime: p.ArrivalTime, BurstTime: p.BurstTime}
	}
	return specs
}
