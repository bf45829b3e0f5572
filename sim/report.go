package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// WriteTable renders the report as a Gantt line, a per-process table with an
// averages footer, and a short aggregate block.
func (r *Report) WriteTable(w io.Writer) error {
	title := "Scheduling report: " + r.label()
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("=", len(title))); err != nil {
		return err
	}
	if err := WriteGantt(w, r.Timeline); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Start", "Completion", "Turnaround", "Waiting", "Response"})
	for _, pm := range r.Processes {
		table.Append([]string{
			pm.ID,
			fmt.Sprint(pm.ArrivalTime),
			fmt.Sprint(pm.BurstTime),
			fmt.Sprint(pm.FirstStartTime),
			fmt.Sprint(pm.CompletionTime),
			fmt.Sprint(pm.TurnaroundTime),
			fmt.Sprint(pm.WaitingTime),
			fmt.Sprint(pm.ResponseTime),
		})
	}
	table.SetFooter([]string{"", "", "", "", "Average",
		fmt.Sprintf("%.2f", r.AverageTurnaroundTime),
		fmt.Sprintf("%.2f", r.AverageWaitingTime),
		fmt.Sprintf("%.2f", r.AverageResponseTime)})
	table.Render()

	_, err := fmt.Fprintf(w,
		"Total time      : %d ticks\nIdle time       : %d ticks\nCPU utilization : %.2f%%\nThroughput      : %.4f processes/tick\nContext switches: %d\nCompletion order: %s\n",
		r.TotalTime, r.IdleTime, r.CPUUtilization*100, r.Throughput, r.ContextSwitches,
		strings.Join(r.CompletionOrder, " "))
	return err
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteYAML renders the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return enc.Close()
}

func (r *Report) label() string {
	if r.Algorithm == AlgorithmRoundRobin {
		return NewRunConfig(r.Algorithm, r.Quantum).Label()
	}
	return r.Algorithm
}

// WriteGantt renders intervals as a one-line Gantt chart followed by the
// interval boundaries. Adjacent intervals of the same process are drawn as one bar.
func WriteGantt(w io.Writer, intervals []Interval) error {
	merged := (&Timeline{intervals: intervals}).Compact()
	var bars, ticks strings.Builder
	bars.WriteString("|")
	for _, iv := range merged {
		width := max(len(iv.ProcessID)+2, 6)
		pad := width - len(iv.ProcessID)
		bars.WriteString(strings.Repeat(" ", pad/2) + iv.ProcessID + strings.Repeat(" ", pad-pad/2) + "|")
		start := fmt.Sprint(iv.Start)
		ticks.WriteString(start + strings.Repeat(" ", max(width+1-len(start), 1)))
	}
	if len(merged) > 0 {
		ticks.WriteString(fmt.Sprint(merged[len(merged)-1].End))
	}
	_, err := fmt.Fprintf(w, "Gantt schedule\n%s\n%s\n\n", bars.String(), ticks.String())
	return err
}

// WriteSequence prints the per-tick execution sequence on one line.
func WriteSequence(w io.Writer, tl *Timeline) error {
	seq, err := tl.Sequence()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Execution sequence: %s\n", strings.Join(seq, " "))
	return err
}

// WriteComparison renders one summary row per result, in the given order.
func WriteComparison(w io.Writer, results []*Result) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Avg Waiting", "Avg Turnaround", "Avg Response", "Utilization", "Switches", "Completion order"})
	for _, res := range results {
		r := res.Report
		table.Append([]string{
			res.Config.Label(),
			fmt.Sprintf("%.2f", r.AverageWaitingTime),
			fmt.Sprintf("%.2f", r.AverageTurnaroundTime),
			fmt.Sprintf("%.2f", r.AverageResponseTime),
			fmt.Sprintf("%.2f%%", r.CPUUtilization*100),
			fmt.Sprint(r.ContextSwitches),
			strings.Join(r.CompletionOrder, " "),
		})
	}
	table.Render()
	return nil
}
