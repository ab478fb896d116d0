package report

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/ormasoftchile/microspec/pkg/trace"
)

// Filter keeps the events for which expression is true. The expression sees
// type, run_id, timestamp and data, e.g.
//
//	type == "step_complete" && data.status == "failed"
//
// An empty expression keeps every event.
func Filter(events []trace.Event, expression string) ([]trace.Event, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return events, nil
	}
	program, err := expr.Compile(expression, expr.Env(eventEnv(trace.Event{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}

	var kept []trace.Event
	for _, evt := range events {
		output, err := expr.Run(program, eventEnv(evt))
		if err != nil {
			return nil, fmt.Errorf("eval filter %q: %w", expression, err)
		}
		if output.(bool) {
			kept = append(kept, evt)
		}
	}
	return kept, nil
}

func eventEnv(evt trace.Event) map[string]any {
	data := evt.Data
	if data == nil {
		data = map[string]any{}
	}
	return map[string]any{
		"type":      string(evt.Type),
		"run_id":    evt.RunID,
		"timestamp": evt.Timestamp,
		"data":      data,
	}
}

// ByRun keeps the events of one run.
func ByRun(events []trace.Event, runID string) []trace.Event {
	var kept []trace.Event
	for _, evt := range events {
		if evt.RunID == runID {
			kept = append(kept, evt)
		}
	}
	return kept
}
