package spec

import (
	"github.com/ormasoftchile/microspec/pkg/assertions"
	"github.com/ormasoftchile/microspec/pkg/narrative"
	"github.com/ormasoftchile/microspec/pkg/trace"
)

// Each handle exposes only the operations legal in its phase, so a chain
// such as Given(...).When(...).Then(...).Given(...) does not compile.

// Arranging is the phase after Given.
type Arranging struct {
	c *Chain
}

// And runs another arranging step; its failure fails the test at once.
func (a Arranging) And(s Step) Arranging {
	a.c.t.Helper()
	a.c.arrange(narrative.And, s)
	return a
}

// When runs the action under test, capturing any failure it raises.
func (a Arranging) When(s Step) Acting {
	a.c.t.Helper()
	a.c.act(narrative.When, s)
	return Acting(a)
}

// Acting is the phase after When.
type Acting struct {
	c *Chain
}

// And re-raises a pending failure, or runs another acting step capturing its
// failure.
func (a Acting) And(s Step) Acting {
	a.c.t.Helper()
	if a.c.reraise(narrative.And) {
		return a
	}
	a.c.act(narrative.And, s)
	return a
}

// Then re-raises a pending failure, or runs the first assertion step.
func (a Acting) Then(s Step) Asserting {
	a.c.t.Helper()
	if a.c.reraise(narrative.Then) {
		return Asserting(a)
	}
	a.c.arrange(narrative.Then, s)
	return Asserting(a)
}

// ThenA declares the failure kind the action is expected to have raised.
func (a Acting) ThenA(k Kind) FailureAssertion {
	return a.c.declare(narrative.ThenA, k)
}

// ThenAn is ThenA for kinds whose name reads with "an".
func (a Acting) ThenAn(k Kind) FailureAssertion {
	return a.c.declare(narrative.ThenAn, k)
}

// Asserting is the phase after Then.
type Asserting struct {
	c *Chain
}

// And runs another assertion step; its failure fails the test at once.
func (a Asserting) And(s Step) Asserting {
	a.c.t.Helper()
	a.c.arrange(narrative.And, s)
	return a
}

// AndA declares an expected failure kind after assertion steps.
func (a Asserting) AndA(k Kind) FailureAssertion {
	return a.c.declare(narrative.AndA, k)
}

// AndAn is AndA for kinds whose name reads with "an".
func (a Asserting) AndAn(k Kind) FailureAssertion {
	return a.c.declare(narrative.AndAn, k)
}

// FailureAssertion follows a failure declaration and ends the chain.
type FailureAssertion struct {
	c *Chain
}

// IsThrown asserts the action failed with the declared kind.
func (f FailureAssertion) IsThrown() {
	f.c.t.Helper()
	if f.c.assertFailure("is_thrown", nil) {
		f.c.note(f.c.out.Conclude(narrative.FragmentThrown))
	}
}

// IsThrownWithMessage asserts the action failed with the declared kind and
// exactly this message.
func (f FailureAssertion) IsThrownWithMessage(message string) {
	f.c.t.Helper()
	if f.c.assertFailure("is_thrown_with_message", &message) {
		f.c.note(f.c.out.Conclude(narrative.FragmentThrownWithMessage))
	}
}

// IsNotThrown asserts the action did not fail; a pending failure is
// re-raised.
func (f FailureAssertion) IsNotThrown() {
	f.c.t.Helper()
	f.c.note(f.c.out.Conclude(narrative.FragmentNotThrown))
	if f.c.reraise(narrative.Prefix("IsNotThrown")) {
		return
	}
	f.c.record(func(tw *trace.Writer) error {
		return tw.EmitFailureAsserted("is_not_thrown", true, []*assertions.Result{assertions.EvalNotCaptured(nil)})
	})
}
