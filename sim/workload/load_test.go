package workload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procsched/procsched/sim"
)

var sampleSpecs = []ProcessSpec{
	{ID: "P1", ArrivalTime: 0, BurstTime: 5},
	{ID: "P2", ArrivalTime: 1, BurstTime: 3},
	{ID: "P3", ArrivalTime: 2, BurstTime: 1},
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"procs.json", FormatJSON, false},
		{"procs.YAML", FormatYAML, false},
		{"dir/procs.yml", FormatYAML, false},
		{"procs.csv", FormatCSV, false},
		{"procs.txt", "", true},
		{"procs", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile_AllFormatsAgree(t *testing.T) {
	// GIVEN the same three processes in every supported encoding
	files := map[string]string{
		"procs.json": `[
  {"id": "P1", "arrival_time": 0, "burst_time": 5},
  {"id": "P2", "arrival_time": 1, "burst_time": 3},
  {"id": "P3", "arrival_time": 2, "burst_time": 1}
]`,
		"procs.yaml": `processes:
  - id: P1
    arrival_time: 0
    burst_time: 5
  - id: P2
    arrival_time: 1
    burst_time: 3
  - id: P3
    arrival_time: 2
    burst_time: 1
`,
		"procs.csv": "id,arrival_time,burst_time\nP1,0,5\nP2,1,3\nP3,2,1\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			// WHEN loading
			procs, err := LoadFile(writeFile(t, name, content))

			// THEN the processes match
			require.NoError(t, err)
			assert.Equal(t, sampleSpecs, FromProcesses(procs))
		})
	}
}

func TestLoadFile_NumericIDsInJSON(t *testing.T) {
	path := writeFile(t, "procs.json", `[{"id": 1, "arrival_time": 0, "burst_time": 2}]`)
	procs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", procs[0].ID)
}

func TestLoadFile_InvalidRecordWrapsSentinel(t *testing.T) {
	path := writeFile(t, "procs.json", `[{"id": "P1", "arrival_time": -1, "burst_time": 2}]`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrInvalidProcess))
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodeYAML_RejectsUnknownKeys(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("processes:\n  - id: P1\n    arrival: 0\n    burst_time: 2\n"))
	assert.Error(t, err)
}

func TestDecodeYAML_EmptyDocument(t *testing.T) {
	specs, err := DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestDecodeCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []ProcessSpec
		wantErr string
	}{
		{
			name:  "reordered columns",
			input: "burst_time,id,arrival_time\n4,A,0\n",
			want:  []ProcessSpec{{ID: "A", ArrivalTime: 0, BurstTime: 4}},
		},
		{
			name:  "spaces after commas",
			input: "id, arrival_time, burst_time\nA, 1, 2\n",
			want:  []ProcessSpec{{ID: "A", ArrivalTime: 1, BurstTime: 2}},
		},
		{
			name:  "header only",
			input: "id,arrival_time,burst_time\n",
			want:  nil,
		},
		{
			name:    "missing column",
			input:   "id,arrival_time\nA,0\n",
			wantErr: "missing column",
		},
		{
			name:    "extra column",
			input:   "id,arrival_time,burst_time,priority\nA,0,1,3\n",
			wantErr: "unexpected columns",
		},
		{
			name:    "non-numeric burst",
			input:   "id,arrival_time,burst_time\nA,0,lots\n",
			wantErr: "row 1: invalid burst_time",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCSV(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil), "xml")
	assert.Error(t, err)
}
