package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/microspec/pkg/report"
	"github.com/ormasoftchile/microspec/pkg/trace"
)

var (
	reportJSON     bool
	reportMarkdown bool
	reportWidth    int
)

var reportCmd = &cobra.Command{
	Use:   "report [trace.jsonl]",
	Short: "Summarize the runs recorded in a transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportJSON && reportMarkdown {
		return fmt.Errorf("--json and --markdown are mutually exclusive")
	}
	events, err := trace.ReadFile(args[0])
	if err != nil {
		return err
	}
	output := report.Summarize(events)
	out := cmd.OutOrStdout()

	switch {
	case reportJSON:
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case reportMarkdown:
		fmt.Fprint(out, report.RenderMarkdown(report.Markdown(output), reportWidth))
	default:
		for _, r := range output.Results {
			icon := "✓"
			switch r.Status {
			case report.StatusFailed:
				icon = "✗"
			case report.StatusIncomplete:
				icon = "…"
			}
			fmt.Fprintf(out, "  %s %s (%dms)\n", icon, r.Name, r.DurationMs)
			if r.Error != "" {
				fmt.Fprintf(out, "    %s\n", r.Error)
			}
		}
		s := output.Summary
		fmt.Fprintf(out, "\n%d runs: %d passed, %d failed, %d incomplete\n", s.Total, s.Passed, s.Failed, s.Incomplete)
	}

	if output.Failed() {
		return fmt.Errorf("%d of %d runs did not pass", output.Summary.Failed+output.Summary.Incomplete, output.Summary.Total)
	}
	return nil
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Output JSON")
	reportCmd.Flags().BoolVar(&reportMarkdown, "markdown", false, "Output a markdown report styled for the terminal")
	reportCmd.Flags().IntVar(&reportWidth, "width", 100, "Wrap width for --markdown (0 disables wrapping)")
}
