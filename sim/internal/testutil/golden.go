// Package testutil provides shared test infrastructure for the scheduling
// simulator. It holds the golden scenario types and assertion helpers used
// across the sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified scheduling scenario.
type GoldenTestCase struct {
	Name      string          `json:"name"`
	Algorithm string          `json:"algorithm"`
	Quantum   int64           `json:"quantum"`
	Processes []GoldenProcess `json:"processes"`
	Expected  GoldenExpected  `json:"expected"`
}

// GoldenProcess is an input record, in the process-list JSON layout.
type GoldenProcess struct {
	ID          string `json:"id"`
	ArrivalTime int64  `json:"arrival_time"`
	BurstTime   int64  `json:"burst_time"`
}

// GoldenExpected holds the outcome a correct run must reproduce exactly.
type GoldenExpected struct {
	// Timeline is the uncompacted interval list, e.g. "P1[0,2) P2[2,4)".
	Timeline        string           `json:"timeline"`
	CompletionOrder []string         `json:"completion_order"`
	Waiting         map[string]int64 `json:"waiting"`
	Turnaround      map[string]int64 `json:"turnaround"`
	Response        map[string]int64 `json:"response"`

	AverageWaitingTime float64 `json:"average_waiting_time"`
	ContextSwitches    int     `json:"context_switches"`
	IdleTime           int64   `json:"idle_time"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(RepoRoot(thisFile), "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}
	return &dataset
}

// TestdataPath returns the absolute path of a file under the repo's testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(RepoRoot(thisFile), "testdata", name)
}

// RepoRoot navigates from sim/internal/testutil/golden.go to the repo root.
func RepoRoot(thisFile string) string {
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..")
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
