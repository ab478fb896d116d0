package trace

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestVerify_ConsumedFailure(t *testing.T) {
	var buf bytes.Buffer
	tw := NewWriter(&buf, "r1")
	tw.EmitChainStart("divides")
	tw.EmitFailureCaptured(0, &Failure{Kind: "*spec.DivideByZero", Message: "divide by zero"})
	tw.EmitFailureDeclared("Then a", "DivideByZero")
	tw.EmitFailureAsserted("is_thrown", true, nil)
	tw.EmitChainComplete(false, time.Millisecond, nil)

	res, err := Verify(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Errorf("expected valid, got %+v", res.Violations)
	}
	if res.EventCount != 5 || res.RunCount != 1 {
		t.Errorf("counts = %d events, %d runs", res.EventCount, res.RunCount)
	}
}

func TestVerify_Violations(t *testing.T) {
	var buf bytes.Buffer
	dropped := NewWriter(&buf, "dropped")
	dropped.EmitChainStart("drops a failure")
	dropped.EmitFailureCaptured(0, &Failure{Kind: "*errors.errorString", Message: "boom"})
	dropped.EmitChainComplete(false, time.Millisecond, nil)

	unfinished := NewWriter(&buf, "unfinished")
	unfinished.EmitStepStart(0, "Given", "x")

	res, err := Verify(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Fatal("expected invalid transcript")
	}
	if len(res.Violations) != 3 {
		t.Fatalf("violations = %+v, want 3", res.Violations)
	}
	if res.Violations[0].RunID != "dropped" || !strings.Contains(res.Violations[0].Message, "never asserted") {
		t.Errorf("violation[0] = %+v", res.Violations[0])
	}
	if res.Violations[1].RunID != "unfinished" || !strings.Contains(res.Violations[1].Message, "starts with step_start") {
		t.Errorf("violation[1] = %+v", res.Violations[1])
	}
	if res.Violations[2].Message != "run never completed" {
		t.Errorf("violation[2] = %+v", res.Violations[2])
	}
}

func TestVerify_ReraisedFailure(t *testing.T) {
	var buf bytes.Buffer
	tw := NewWriter(&buf, "r1")
	tw.EmitChainStart("reraises")
	tw.EmitFailureCaptured(0, &Failure{Kind: "k", Message: "m"})
	tw.EmitFailureReraised("Then", &Failure{Kind: "k", Message: "m"})
	tw.EmitChainComplete(true, time.Millisecond, nil)

	res, err := Verify(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Errorf("expected valid, got %+v", res.Violations)
	}
}
