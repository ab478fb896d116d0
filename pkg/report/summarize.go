package report

import (
	"fmt"
	"time"

	"github.com/ormasoftchile/microspec/pkg/trace"
)

// Summarize builds one Result per run found in events, in order of first
// appearance.
func Summarize(events []trace.Event) *Output {
	order, runs := trace.GroupByRun(events)
	out := &Output{Results: make([]Result, 0, len(order))}
	for _, id := range order {
		r := summarizeRun(id, runs[id])
		out.Results = append(out.Results, r)
		out.Summary.Total++
		switch r.Status {
		case StatusPassed:
			out.Summary.Passed++
		case StatusFailed:
			out.Summary.Failed++
		default:
			out.Summary.Incomplete++
		}
	}
	return out
}

func summarizeRun(id string, events []trace.Event) Result {
	r := Result{RunID: id, Status: StatusIncomplete}
	var declared string
	var started time.Time
	for _, evt := range events {
		d := evt.Data
		switch evt.Type {
		case trace.EventChainStart:
			r.Name = str(d, "name")
			started = evt.Timestamp
		case trace.EventStepStart:
			r.Steps = append(r.Steps, StepResult{
				Index:  num(d, "index"),
				Prefix: str(d, "prefix"),
				Text:   str(d, "text"),
			})
		case trace.EventStepComplete:
			if s := r.step(num(d, "index")); s != nil {
				s.Status = str(d, "status")
				s.Failure = failureText(d["failure"])
				if s.Status == string(trace.StatusFailed) {
					r.Error = fmt.Sprintf("%s %s: %s", s.Prefix, s.Text, s.Failure)
				}
			}
		case trace.EventFailureDeclared:
			declared = str(d, "kind")
		case trace.EventFailureAsserted:
			a := Assertion{Assertion: str(d, "assertion"), Kind: declared, Passed: flag(d, "passed")}
			r.Assertions = append(r.Assertions, a)
			if !a.Passed {
				r.Error = fmt.Sprintf("%s %s failed", a.Kind, a.Assertion)
			}
		case trace.EventFailureReraised:
			r.Error = fmt.Sprintf("unexpected failure at %s: %s", str(d, "at"), failureText(d["failure"]))
		case trace.EventChainComplete:
			r.Status = str(d, "status")
			if !started.IsZero() {
				r.DurationMs = evt.Timestamp.Sub(started).Milliseconds()
			}
			if p := failureText(d["pending"]); p != "" {
				// A dropped failure fails the run even when the test passed.
				r.Status = StatusFailed
				r.Error = "failure never asserted: " + p
			}
		}
	}
	return r
}

func (r *Result) step(index int) *StepResult {
	for i := len(r.Steps) - 1; i >= 0; i-- {
		if r.Steps[i].Index == index {
			return &r.Steps[i]
		}
	}
	return nil
}

// Event data is decoded from JSON, so numbers arrive as float64 and nested
// objects as map[string]any.

func str(d map[string]any, key string) string {
	s, _ := d[key].(string)
	return s
}

func num(d map[string]any, key string) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func flag(d map[string]any, key string) bool {
	b, _ := d[key].(bool)
	return b
}

func failureText(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	kind, msg := str(m, "kind"), str(m, "message")
	if kind == "" {
		return msg
	}
	return kind + ": " + msg
}
