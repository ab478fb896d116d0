// Package assertions implements the checks behind failure assertions.
package assertions

import (
	"fmt"
	"unicode/utf8"
)

// Assertion types.
const (
	TypeCaptured    = "captured"
	TypeKind        = "kind"
	TypeMessage     = "message"
	TypeNotCaptured = "not_captured"
)

// Result is the outcome of a single assertion check.
type Result struct {
	Type     string `json:"type"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message"`
}

// EvalCaptured checks that a failure was captured.
func EvalCaptured(err error) *Result {
	if err == nil {
		return &Result{
			Type:     TypeCaptured,
			Expected: "a failure",
			Actual:   "no failure",
			Passed:   false,
			Message:  "expected a failure to be captured, but none was",
		}
	}
	return &Result{
		Type:    TypeCaptured,
		Actual:  truncate(err.Error(), 200),
		Passed:  true,
		Message: "failure captured",
	}
}

// EvalKind checks that the captured failure is of the expected kind. matched
// is the kind's own verdict on err.
func EvalKind(kind string, matched bool, err error) *Result {
	actual := "no failure"
	if err != nil {
		actual = fmt.Sprintf("%T", err)
	}
	msg := fmt.Sprintf("failure is a %s", kind)
	if !matched {
		msg = fmt.Sprintf("expected failure of kind %s, got %s", kind, actual)
		if err != nil {
			msg += ": " + truncate(err.Error(), 200)
		}
	}
	return &Result{
		Type:     TypeKind,
		Expected: kind,
		Actual:   actual,
		Passed:   matched && err != nil,
		Message:  msg,
	}
}

// EvalMessage checks that the captured failure's message equals expected
// exactly. No trimming, case-sensitive.
func EvalMessage(expected string, err error) *Result {
	if err == nil {
		return &Result{
			Type:     TypeMessage,
			Expected: expected,
			Passed:   false,
			Message:  "expected a failure message, but no failure was captured",
		}
	}
	actual := err.Error()
	passed := actual == expected
	msg := fmt.Sprintf("message equals %q", expected)
	if !passed {
		msg = "Exception was thrown but message differed to expected value."
	}
	return &Result{
		Type:     TypeMessage,
		Expected: expected,
		Actual:   actual,
		Passed:   passed,
		Message:  msg,
	}
}

// EvalNotCaptured checks that no failure was captured.
func EvalNotCaptured(err error) *Result {
	if err != nil {
		return &Result{
			Type:     TypeNotCaptured,
			Expected: "no failure",
			Actual:   truncate(err.Error(), 200),
			Passed:   false,
			Message:  fmt.Sprintf("unexpected failure captured: %v", err),
		}
	}
	return &Result{
		Type:    TypeNotCaptured,
		Passed:  true,
		Message: "no failure captured",
	}
}

// HasFailures returns true if any result failed.
func HasFailures(results []*Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// Back up to a rune boundary so a multi-byte character is never split.
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen] + "..."
}
