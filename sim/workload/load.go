package workload

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/procsched/procsched/sim"
)

// Supported encodings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = map[string]bool{FormatJSON: true, FormatYAML: true, FormatCSV: true}

// csvHeader is the column order WriteCSV emits. DecodeCSV accepts any order.
var csvHeader = []string{"id", "arrival_time", "burst_time"}

// yamlDocument is the YAML envelope around a process list.
type yamlDocument struct {
	Processes []ProcessSpec `yaml:"processes"`
}

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("cannot infer format of %q; use .json, .yaml, .yml or .csv", path)
	}
}

// LoadFile reads a process list and converts it to simulator processes.
func LoadFile(path string) ([]*sim.Process, error) {
	specs, err := LoadSpecs(path)
	if err != nil {
		return nil, err
	}
	procs, err := ToProcesses(specs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return procs, nil
}

// LoadSpecs reads a process list without validating the records.
func LoadSpecs(path string) ([]ProcessSpec, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening process list: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	specs, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return specs, nil
}

// Decode reads a process list in the named format.
func Decode(r io.Reader, format string) ([]ProcessSpec, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	case FormatCSV:
		return DecodeCSV(r)
	default:
		return nil, fmt.Errorf("unknown format %q; valid: json, yaml, csv", format)
	}
}

// DecodeJSON reads a top-level JSON array of process records.
func DecodeJSON(r io.Reader) ([]ProcessSpec, error) {
	var specs []ProcessSpec
	if err := json.NewDecoder(r).Decode(&specs); err != nil {
		return nil, fmt.Errorf("decoding JSON process list: %w", err)
	}
	return specs, nil
}

// DecodeYAML reads a document with a top-level "processes" list.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func DecodeYAML(r io.Reader) ([]ProcessSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading YAML process list: %w", err)
	}
	var doc yamlDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding YAML process list: %w", err)
	}
	return doc.Processes, nil
}

// DecodeCSV reads rows under an "id,arrival_time,burst_time" header.
// Columns may appear in any order; extra columns are rejected.
func DecodeCSV(r io.Reader) ([]ProcessSpec, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols, err := csvColumns(header)
	if err != nil {
		return nil, err
	}

	var specs []ProcessSpec
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", row, err)
		}
		arrival, err := strconv.ParseInt(strings.TrimSpace(record[cols["arrival_time"]]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid arrival_time %q", row, record[cols["arrival_time"]])
		}
		burst, err := strconv.ParseInt(strings.TrimSpace(record[cols["burst_time"]]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid burst_time %q", row, record[cols["burst_time"]])
		}
		specs = append(specs, ProcessSpec{
			ID:          strings.TrimSpace(record[cols["id"]]),
			ArrivalTime: arrival,
			BurstTime:   burst,
		})
	}
	return specs, nil
}

func csvColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := cols[name]; dup {
			return nil, fmt.Errorf("CSV header repeats column %q", name)
		}
		cols[name] = i
	}
	for _, want := range csvHeader {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("CSV header missing column %q; want %s", want, strings.Join(csvHeader, ","))
		}
	}
	if len(cols) != len(csvHeader) {
		return nil, fmt.Errorf("CSV header has unexpected columns %v; want %s", header, strings.Join(csvHeader, ","))
	}
	return cols, nil
}
