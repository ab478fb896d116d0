// Package report summarizes chain transcripts for people and tools.
package report

// Run status values.
const (
	StatusPassed     = "passed"
	StatusFailed     = "failed"
	StatusIncomplete = "incomplete"
)

// Result is the outcome of one chain run.
type Result struct {
	RunID      string       `json:"run_id"`
	Name       string       `json:"name"`
	Status     string       `json:"status"` // passed, failed, incomplete
	DurationMs int64        `json:"duration_ms"`
	Steps      []StepResult `json:"steps"`
	Assertions []Assertion  `json:"assertions,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// StepResult is one step as it appeared in the transcript.
type StepResult struct {
	Index   int    `json:"index"`
	Prefix  string `json:"prefix"`
	Text    string `json:"text"`
	Status  string `json:"status"` // passed, failed, captured, or empty if never completed
	Failure string `json:"failure,omitempty"`
}

// Assertion is one failure assertion made by a run.
type Assertion struct {
	Assertion string `json:"assertion"` // is_thrown, is_thrown_with_message, is_not_thrown
	Kind      string `json:"kind,omitempty"`
	Passed    bool   `json:"passed"`
}

// Summary aggregates results across runs.
type Summary struct {
	Total      int `json:"total"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Incomplete int `json:"incomplete"`
}

// Output is the top-level JSON structure for microspec report --json.
type Output struct {
	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
}

// Failed reports whether any run failed or did not complete.
func (o *Output) Failed() bool {
	return o.Summary.Failed > 0 || o.Summary.Incomplete > 0
}
