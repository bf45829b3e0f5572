package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/procsched/procsched/sim"
	"github.com/procsched/procsched/sim/trace"
	"github.com/procsched/procsched/sim/workload"
)

// compareConfigs returns the configurations compared side by side.
func compareConfigs(q int64) []sim.RunConfig {
	return []sim.RunConfig{
		sim.NewRunConfig(sim.AlgorithmRoundRobin, q),
		sim.NewRunConfig(sim.AlgorithmSRTF, q),
	}
}

// writeComparison renders the compared runs. Structured formats emit the
// full reports in configuration order.
func writeComparison(w io.Writer, results []*sim.Result, output string) error {
	reports := make([]*sim.Report, len(results))
	for i, res := range results {
		reports[i] = res.Report
	}
	switch output {
	case outputTable:
		return sim.WriteComparison(w, results)
	case outputJSON:
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling reports: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("marshaling reports: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q; valid: table, json, yaml", output)
	}
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run round robin and SRTF over the same process list and compare them",
	Run: func(cmd *cobra.Command, args []string) {
		if inputPath == "" {
			logrus.Fatalf("Process list not provided: use --input")
		}
		if !validOutputs[outputFmt] {
			logrus.Fatalf("Unknown output format %q; valid: table, json, yaml", outputFmt)
		}
		procs, err := workload.LoadFile(inputPath)
		if err != nil {
			logrus.Fatalf("Failed to load processes: %v", err)
		}

		results, err := sim.Compare(procs, trace.TraceConfig{}, compareConfigs(quantum)...)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		if err := writeComparison(cmd.OutOrStdout(), results, outputFmt); err != nil {
			logrus.Fatalf("Failed to write comparison: %v", err)
		}
	},
}

func init() {
	compareCmd.Flags().StringVar(&inputPath, "input", "", "Process list file (.json, .yaml, .yml or .csv)")
	compareCmd.Flags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "Round-robin time slice in ticks")
	compareCmd.Flags().StringVar(&outputFmt, "output", outputTable, "Report format (table, json, yaml)")

	rootCmd.AddCommand(compareCmd)
}
