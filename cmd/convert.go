package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/procsched/procsched/sim/workload"
)

var (
	convertInput  string
	convertFormat string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Re-encode a process list as JSON, YAML or CSV",
	Long:  "Read a process list in any supported format (inferred from the file extension), validate it, and write it to stdout in the requested format.",
	Run: func(cmd *cobra.Command, args []string) {
		if convertInput == "" {
			logrus.Fatalf("Process list not provided: use --input")
		}
		if !workload.ValidFormats[convertFormat] {
			logrus.Fatalf("Unknown format %q; valid: json, yaml, csv", convertFormat)
		}
		procs, err := workload.LoadFile(convertInput)
		if err != nil {
			logrus.Fatalf("Failed to load processes: %v", err)
		}
		if err := workload.Write(cmd.OutOrStdout(), convertFormat, workload.FromProcesses(procs)); err != nil {
			logrus.Fatalf("Failed to write process list: %v", err)
		}
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "input", "", "Process list file (.json, .yaml, .yml or .csv)")
	convertCmd.Flags().StringVar(&convertFormat, "format", workload.FormatJSON, "Output format (json, yaml, csv)")

	rootCmd.AddCommand(convertCmd)
}
