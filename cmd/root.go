package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/procsched/procsched/sim"
	"github.com/procsched/procsched/sim/trace"
	"github.com/procsched/procsched/sim/workload"
)

// Report formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var validOutputs = map[string]bool{outputTable: true, outputJSON: true, outputYAML: true}

var (
	// CLI flags shared by run and compare
	inputPath  string // Process list file (.json, .yaml, .yml, .csv)
	quantum    int64  // Round-robin time slice
	outputFmt  string // Report format
	traceLevel string // Decision trace verbosity
	logLevel   string // Log verbosity level

	// CLI flags for run only
	algorithm    string // Scheduling algorithm
	configPath   string // Optional YAML run configuration
	showSequence bool   // Print the per-tick execution sequence
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsched",
	Short: "Discrete-event CPU scheduling simulator (round robin and SRTF)",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runOptions is the fully resolved configuration of one run invocation.
type runOptions struct {
	Config     sim.RunConfig
	Output     string
	TraceLevel trace.TraceLevel
	Sequence   bool
}

// resolveRunOptions merges the optional config file under the flags.
// A flag wins only when the user set it explicitly; otherwise the file value,
// then the flag default, applies.
func resolveRunOptions(cmd *cobra.Command, fc *FileConfig) (runOptions, error) {
	opts := runOptions{
		Config:     sim.NewRunConfig(algorithm, quantum),
		Output:     outputFmt,
		TraceLevel: trace.TraceLevel(traceLevel),
		Sequence:   showSequence,
	}
	if fc != nil {
		changed := cmd.Flags().Changed
		if fc.Algorithm != "" && !changed("algorithm") {
			opts.Config.Algorithm = fc.Algorithm
		}
		if fc.Quantum != nil && !changed("quantum") {
			opts.Config.Quantum = *fc.Quantum
		}
		if fc.Output != "" && !changed("output") {
			opts.Output = fc.Output
		}
		if fc.TraceLevel != "" && !changed("trace-level") {
			opts.TraceLevel = trace.TraceLevel(fc.TraceLevel)
		}
	}

	if err := opts.Config.Validate(); err != nil {
		return runOptions{}, err
	}
	if !validOutputs[opts.Output] {
		return runOptions{}, fmt.Errorf("unknown output format %q; valid: table, json, yaml", opts.Output)
	}
	if !trace.IsValidTraceLevel(string(opts.TraceLevel)) {
		return runOptions{}, fmt.Errorf("unknown trace level %q; valid: none, decisions", opts.TraceLevel)
	}
	if opts.Sequence && opts.Output != outputTable {
		return runOptions{}, fmt.Errorf("--sequence requires --output table")
	}
	return opts, nil
}

// writeResult renders one run in the requested format.
func writeResult(w io.Writer, res *sim.Result, opts runOptions) error {
	switch opts.Output {
	case outputJSON:
		return res.Report.WriteJSON(w)
	case outputYAML:
		return res.Report.WriteYAML(w)
	}
	if opts.Sequence {
		if err := sim.WriteSequence(w, res.Timeline); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if err := res.Report.WriteTable(w); err != nil {
		return err
	}
	if res.Trace != nil {
		return writeTraceSummary(w, trace.Summarize(res.Trace))
	}
	return nil
}

func writeTraceSummary(w io.Writer, s *trace.TraceSummary) error {
	if _, err := fmt.Fprintf(w, "\nDecision trace  : %d dispatches over %d processes, %d preemptions, mean slice %.2f, max slice %d\n",
		s.TotalDispatches, s.UniqueProcesses, s.Preemptions, s.MeanSlice, s.MaxSlice); err != nil {
		return err
	}
	reasons := make([]string, 0, len(s.PreemptionReasons))
	for reason := range s.PreemptionReasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		if _, err := fmt.Fprintf(w, "  %-24s%d\n", reason+":", s.PreemptionReasons[reason]); err != nil {
			return err
		}
	}
	return nil
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one scheduling policy over a process list",
	Run: func(cmd *cobra.Command, args []string) {
		if inputPath == "" {
			logrus.Fatalf("Process list not provided: use --input")
		}

		var fc *FileConfig
		if configPath != "" {
			var err error
			if fc, err = LoadFileConfig(configPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		opts, err := resolveRunOptions(cmd, fc)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}

		procs, err := workload.LoadFile(inputPath)
		if err != nil {
			logrus.Fatalf("Failed to load processes: %v", err)
		}
		logrus.Infof("Loaded %d processes from %s", len(procs), inputPath)

		res, err := sim.Simulate(opts.Config, procs, trace.TraceConfig{Level: opts.TraceLevel})
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if err := writeResult(cmd.OutOrStdout(), res, opts); err != nil {
			logrus.Fatalf("Failed to write report: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&inputPath, "input", "", "Process list file (.json, .yaml, .yml or .csv)")
	runCmd.Flags().StringVar(&algorithm, "algorithm", sim.AlgorithmRoundRobin, "Scheduling algorithm (rr, srtf)")
	runCmd.Flags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "Round-robin time slice in ticks")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run configuration (algorithm, quantum, output, trace_level); flags override it")
	runCmd.Flags().StringVar(&outputFmt, "output", outputTable, "Report format (table, json, yaml)")
	runCmd.Flags().BoolVar(&showSequence, "sequence", false, "Print the per-tick execution sequence before the report")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")

	rootCmd.AddCommand(runCmd)
}
