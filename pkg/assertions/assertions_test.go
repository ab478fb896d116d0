package assertions

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

type notFoundError struct{ id string }

func (e *notFoundError) Error() string { return "widget " + e.id + " not found" }

func TestCapturedAssertion(t *testing.T) {
	r := EvalCaptured(errors.New("boom"))
	if !r.Passed {
		t.Error("expected pass for captured failure")
	}
	r = EvalCaptured(nil)
	if r.Passed {
		t.Error("expected fail when nothing was captured")
	}
}

func TestKindAssertion(t *testing.T) {
	err := &notFoundError{id: "w1"}
	r := EvalKind("notFoundError", true, err)
	if !r.Passed {
		t.Errorf("expected pass, got %q", r.Message)
	}
	if r.Actual != "*assertions.notFoundError" {
		t.Errorf("actual = %q", r.Actual)
	}

	r = EvalKind("DivideByZeroError", false, err)
	if r.Passed {
		t.Error("expected fail for kind mismatch")
	}
	if !strings.Contains(r.Message, "DivideByZeroError") || !strings.Contains(r.Message, "widget w1 not found") {
		t.Errorf("message = %q", r.Message)
	}

	r = EvalKind("notFoundError", true, nil)
	if r.Passed {
		t.Error("expected fail when no failure was captured")
	}
}

func TestMessageAssertion(t *testing.T) {
	err := errors.New("Widget not found")
	if r := EvalMessage("Widget not found", err); !r.Passed {
		t.Error("expected pass for exact message")
	}
	for _, want := range []string{"widget not found", "Widget not found ", " Widget not found"} {
		if r := EvalMessage(want, err); r.Passed {
			t.Errorf("expected fail for %q", want)
		}
	}
	if r := EvalMessage("x", nil); r.Passed {
		t.Error("expected fail with no failure")
	}
}

func TestNotCapturedAssertion(t *testing.T) {
	if r := EvalNotCaptured(nil); !r.Passed {
		t.Error("expected pass with no failure")
	}
	if r := EvalNotCaptured(errors.New("boom")); r.Passed {
		t.Error("expected fail with a failure")
	}
}

func TestHasFailures(t *testing.T) {
	ok := EvalNotCaptured(nil)
	bad := EvalCaptured(nil)
	if HasFailures([]*Result{ok}) {
		t.Error("no failures expected")
	}
	if !HasFailures([]*Result{ok, bad}) {
		t.Error("failure expected")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 250)
	r := EvalNotCaptured(errors.New(long))
	if len(r.Actual) != 203 {
		t.Errorf("actual len = %d, want 203", len(r.Actual))
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// "é" is two bytes, so byte 200 falls inside a character.
	msg := "x" + strings.Repeat("é", 150)
	r := EvalNotCaptured(errors.New(msg))
	if !utf8.ValidString(r.Actual) {
		t.Fatalf("actual is not valid UTF-8: %q", r.Actual)
	}
	want := "x" + strings.Repeat("é", 99) + "..."
	if r.Actual != want {
		t.Errorf("actual = %q, want %q", r.Actual, want)
	}
}
