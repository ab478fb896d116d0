package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/microspec/pkg/report"
	"github.com/ormasoftchile/microspec/pkg/trace"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Transcript operations",
}

var (
	traceWhere string
	traceRun   string
)

var traceShowCmd = &cobra.Command{
	Use:   "show [trace.jsonl]",
	Short: "List transcript events",
	Example: `  microspec trace show trace.jsonl --where 'type == "failure_reraised"'
  microspec trace show trace.jsonl --run 3f6c --where 'data.status == "failed"'`,
	Args: cobra.ExactArgs(1),
	RunE: runTraceShow,
}

func runTraceShow(cmd *cobra.Command, args []string) error {
	events, err := trace.ReadFile(args[0])
	if err != nil {
		return err
	}
	if traceRun != "" {
		events = report.ByRun(events, traceRun)
	}
	events, err = report.Filter(events, traceWhere)
	if err != nil {
		return err
	}
	log.Debug("listing events", "count", len(events))
	fmt.Fprint(cmd.OutOrStdout(), report.Table(events))
	return nil
}

var traceVerifyCmd = &cobra.Command{
	Use:   "verify [trace.jsonl]",
	Short: "Check that every captured failure was asserted or re-raised",
	Args:  cobra.ExactArgs(1),
	RunE:  runTraceVerify,
}

func runTraceVerify(cmd *cobra.Command, args []string) error {
	result, err := trace.VerifyFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if !result.Valid {
		fmt.Fprintf(out, "✗ %d violation(s) in %d run(s)\n", len(result.Violations), result.RunCount)
		for _, v := range result.Violations {
			if v.Event > 0 {
				fmt.Fprintf(out, "  run %s, event %d: %s\n", v.RunID, v.Event, v.Message)
			} else {
				fmt.Fprintf(out, "  run %s: %s\n", v.RunID, v.Message)
			}
		}
		return fmt.Errorf("transcript verification failed")
	}

	fmt.Fprintf(out, "✓ %d events in %d run(s), every captured failure consumed\n", result.EventCount, result.RunCount)
	return nil
}

func init() {
	traceShowCmd.Flags().StringVar(&traceWhere, "where", "", "Keep events matching this expression (fields: type, run_id, timestamp, data)")
	traceShowCmd.Flags().StringVar(&traceRun, "run", "", "Keep events of this run ID")

	traceCmd.AddCommand(traceShowCmd)
	traceCmd.AddCommand(traceVerifyCmd)
}
