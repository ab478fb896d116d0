package trace

import (
	"fmt"
	"io"
	"os"
)

// Violation is a broken transcript invariant within one run.
type Violation struct {
	RunID   string `json:"run_id"`
	Event   int    `json:"event"` // 1-based position within the run, 0 for whole-run problems
	Message string `json:"message"`
}

// VerifyResult is the outcome of verifying a transcript.
type VerifyResult struct {
	EventCount int         `json:"event_count"`
	RunCount   int         `json:"run_count"`
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// VerifyFile verifies the transcript stored at path.
func VerifyFile(path string) (*VerifyResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	defer f.Close()
	return Verify(f)
}

// Verify checks per-run invariants:
//   - every run starts with chain_start and ends with chain_complete;
//   - a captured failure is asserted on or re-raised before the next failure
//     is captured and before the run completes.
func Verify(r io.Reader) (*VerifyResult, error) {
	events, err := Read(r)
	if err != nil {
		return nil, err
	}
	return VerifyEvents(events), nil
}

// VerifyEvents checks already decoded events.
func VerifyEvents(events []Event) *VerifyResult {
	order, runs := GroupByRun(events)
	result := &VerifyResult{
		EventCount: len(events),
		RunCount:   len(order),
	}
	for _, runID := range order {
		result.Violations = append(result.Violations, verifyRun(runID, runs[runID])...)
	}
	result.Valid = len(result.Violations) == 0
	return result
}

func verifyRun(runID string, events []Event) []Violation {
	var violations []Violation
	if events[0].Type != EventChainStart {
		violations = append(violations, Violation{RunID: runID, Event: 1, Message: fmt.Sprintf("run starts with %s, want %s", events[0].Type, EventChainStart)})
	}

	pendingAt := 0
	completed := false
	for i, evt := range events {
		pos := i + 1
		switch evt.Type {
		case EventFailureCaptured:
			if pendingAt != 0 {
				violations = append(violations, Violation{RunID: runID, Event: pos, Message: fmt.Sprintf("failure captured while failure from event %d is still pending", pendingAt)})
			}
			pendingAt = pos
		case EventFailureAsserted, EventFailureReraised:
			pendingAt = 0
		case EventChainComplete:
			completed = true
			if pendingAt != 0 {
				violations = append(violations, Violation{RunID: runID, Event: pos, Message: fmt.Sprintf("run completed with failure from event %d never asserted or re-raised", pendingAt)})
			}
		}
	}
	if !completed {
		violations = append(violations, Violation{RunID: runID, Message: "run never completed"})
	}
	return violations
}
