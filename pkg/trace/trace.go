// Package trace implements the append-only JSONL transcript of chain runs.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all transcript event types.
type EventType string

const (
	EventChainStart      EventType = "chain_start"
	EventChainComplete   EventType = "chain_complete"
	EventStepStart       EventType = "step_start"
	EventStepComplete    EventType = "step_complete"
	EventFailureCaptured EventType = "failure_captured"
	EventFailureDeclared EventType = "failure_declared"
	EventFailureAsserted EventType = "failure_asserted"
	EventFailureReraised EventType = "failure_reraised"
)

// StepStatus is the outcome of a single step.
type StepStatus string

const (
	StatusPassed   StepStatus = "passed"
	StatusFailed   StepStatus = "failed"
	StatusCaptured StepStatus = "captured"
	StatusSkipped  StepStatus = "skipped"
)

// Event is a single transcript event written to the JSONL stream.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	RunID     string         `json:"run_id"`
	Data      map[string]any `json:"data,omitempty"`
}

// Failure describes a failure seen by the chain.
type Failure struct {
	Kind    string `json:"kind"` // Go type of the error, e.g. *widget.NotFoundError
	Message string `json:"message"`
}

// FailureOf describes err, or returns nil for a nil error.
func FailureOf(err error) *Failure {
	if err == nil {
		return nil
	}
	return &Failure{Kind: fmt.Sprintf("%T", err), Message: err.Error()}
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Writer writes transcript events to an append-only JSONL stream.
type Writer struct {
	mu     *sync.Mutex
	w      io.Writer
	closer io.Closer
	runID  string
	enc    *json.Encoder
}

// NewWriter creates a transcript writer on w. An empty runID gets a fresh one.
func NewWriter(w io.Writer, runID string) *Writer {
	if runID == "" {
		runID = NewRunID()
	}
	return &Writer{
		mu:    &sync.Mutex{},
		w:     w,
		runID: runID,
		enc:   json.NewEncoder(w),
	}
}

// Run returns a writer for another run on the same stream. Events from both
// writers are serialized; an empty runID gets a fresh one. Closing the
// returned writer does not close the stream.
func (tw *Writer) Run(runID string) *Writer {
	if runID == "" {
		runID = NewRunID()
	}
	return &Writer{mu: tw.mu, w: tw.w, runID: runID, enc: tw.enc}
}

// NewFileWriter creates a transcript writer that appends to a JSONL file.
func NewFileWriter(path, runID string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	tw := NewWriter(f, runID)
	tw.closer = f
	return tw, nil
}

// RunID returns the run identifier stamped on every event.
func (tw *Writer) RunID() string {
	return tw.runID
}

// Close closes the underlying file, if the writer owns one.
func (tw *Writer) Close() error {
	if tw.closer == nil {
		return nil
	}
	return tw.closer.Close()
}

// Emit writes a single transcript event.
func (tw *Writer) Emit(eventType EventType, data map[string]any) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	evt := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		RunID:     tw.runID,
		Data:      data,
	}
	return tw.enc.Encode(evt)
}

// EmitChainStart emits a chain_start event.
func (tw *Writer) EmitChainStart(name string) error {
	return tw.Emit(EventChainStart, map[string]any{
		"name": name,
	})
}

// EmitChainComplete emits a chain_complete event.
func (tw *Writer) EmitChainComplete(failed bool, duration time.Duration, pending *Failure) error {
	status := "passed"
	if failed {
		status = "failed"
	}
	data := map[string]any{
		"status":   status,
		"duration": duration.String(),
	}
	if pending != nil {
		data["pending"] = failureData(pending)
	}
	return tw.Emit(EventChainComplete, data)
}

// EmitStepStart emits a step_start event.
func (tw *Writer) EmitStepStart(index int, prefix, text string) error {
	return tw.Emit(EventStepStart, map[string]any{
		"index":  index,
		"prefix": prefix,
		"text":   text,
	})
}

// EmitStepComplete emits a step_complete event.
func (tw *Writer) EmitStepComplete(index int, status StepStatus, duration time.Duration, failure *Failure) error {
	data := map[string]any{
		"index":    index,
		"status":   string(status),
		"duration": duration.String(),
	}
	if failure != nil {
		data["failure"] = failureData(failure)
	}
	return tw.Emit(EventStepComplete, data)
}

// EmitFailureCaptured emits a failure_captured event.
func (tw *Writer) EmitFailureCaptured(index int, failure *Failure) error {
	return tw.Emit(EventFailureCaptured, map[string]any{
		"index":   index,
		"failure": failureData(failure),
	})
}

// EmitFailureDeclared emits a failure_declared event.
func (tw *Writer) EmitFailureDeclared(prefix, kind string) error {
	return tw.Emit(EventFailureDeclared, map[string]any{
		"prefix": prefix,
		"kind":   kind,
	})
}

// EmitFailureAsserted emits a failure_asserted event carrying the assertion
// results.
func (tw *Writer) EmitFailureAsserted(assertion string, passed bool, results any) error {
	return tw.Emit(EventFailureAsserted, map[string]any{
		"assertion": assertion,
		"passed":    passed,
		"results":   results,
	})
}

// EmitFailureReraised emits a failure_reraised event.
func (tw *Writer) EmitFailureReraised(at string, failure *Failure) error {
	return tw.Emit(EventFailureReraised, map[string]any{
		"at":      at,
		"failure": failureData(failure),
	})
}

func failureData(f *Failure) map[string]any {
	if f == nil {
		return nil
	}
	return map[string]any{
		"kind":    f.Kind,
		"message": f.Message,
	}
}
