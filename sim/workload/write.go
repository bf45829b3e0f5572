package workload

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Write encodes specs in the named format.
func Write(w io.Writer, format string, specs []ProcessSpec) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, specs)
	case FormatYAML:
		return WriteYAML(w, specs)
	case FormatCSV:
		return WriteCSV(w, specs)
	default:
		return fmt.Errorf("unknown format %q; valid: json, yaml, csv", format)
	}
}

// WriteJSON writes specs as an indented JSON array.
func WriteJSON(w io.Writer, specs []ProcessSpec) error {
	if specs == nil {
		specs = []ProcessSpec{}
	}
	data, err := json.MarshalIndent(specs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON process list: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteYAML writes specs under a top-level "processes" key.
func WriteYAML(w io.Writer, specs []ProcessSpec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{Processes: specs}); err != nil {
		return fmt.Errorf("encoding YAML process list: %w", err)
	}
	return enc.Close()
}

// WriteCSV writes specs with an "id,arrival_time,burst_time" header.
func WriteCSV(w io.Writer, specs []ProcessSpec) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range specs {
		row := []string{s.ID, strconv.FormatInt(s.ArrivalTime, 10), strconv.FormatInt(s.BurstTime, 10)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
