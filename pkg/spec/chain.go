package spec

import (
	"io"
	"runtime/debug"
	"time"

	"github.com/ormasoftchile/microspec/pkg/assertions"
	"github.com/ormasoftchile/microspec/pkg/config"
	"github.com/ormasoftchile/microspec/pkg/narrative"
	"github.com/ormasoftchile/microspec/pkg/trace"
)

// Chain is the state of one executing specification. It holds at most one
// pending failure: captured while acting, consumed by a failure assertion or
// re-raised by the next transition.
//
// A Chain belongs to a single test and is not safe for concurrent use.
type Chain struct {
	// Fixed by options, kept across Reset.
	sink        io.Writer
	asserter    Asserter
	traceWriter *trace.Writer

	t     TB
	cfg   config.Config
	check Asserter
	out   *narrative.Writer
	trace *trace.Writer // nil when no run is being recorded
	// registered is the test whose cleanup runs teardown.
	registered TB

	pending  error
	expected Kind
	raised   error
	steps    int
	started  time.Time
}

// Option configures a Chain.
type Option func(*Chain)

// WithSink writes narrative lines to w instead of standard output.
func WithSink(w io.Writer) Option {
	return func(c *Chain) { c.sink = w }
}

// WithAsserter replaces the testify-backed assertion collaborator.
func WithAsserter(a Asserter) Option {
	return func(c *Chain) { c.asserter = a }
}

// WithTrace records the transcript on tw instead of the configured trace file.
// Each Reset starts a new run on tw, so chains sharing tw stay separate runs.
func WithTrace(tw *trace.Writer) Option {
	return func(c *Chain) { c.traceWriter = tw }
}

// NewChain returns a chain bound to t and configured by cfg. It does not
// consult the environment; see New for that.
func NewChain(t TB, cfg config.Config, opts ...Option) *Chain {
	t.Helper()
	c := &Chain{}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset(t, cfg)
	return c
}

// Reset prepares the chain for a new test: it clears any pending failure,
// binds t, applies the output setting and registers the teardown check on t.
func (c *Chain) Reset(t TB, cfg config.Config) {
	t.Helper()
	if c.t != nil {
		c.completeRun()
	}
	c.t = t
	c.cfg = cfg
	c.pending = nil
	c.expected = Kind{}
	c.raised = nil
	c.steps = 0
	c.started = time.Now()

	c.check = c.asserter
	if c.check == nil {
		c.check = NewTestifyAsserter(t)
	}

	switch {
	case !cfg.OutputEnabled():
		c.out = narrative.Discard()
	case cfg.Color:
		c.out = narrative.NewWriter(c.sink, narrative.WithColor())
	default:
		c.out = narrative.NewWriter(c.sink)
	}

	if c.traceWriter != nil {
		c.trace = c.traceWriter.Run("")
	} else if cfg.TracePath != "" {
		tw, err := trace.NewFileWriter(cfg.TracePath, "")
		if err != nil {
			t.Logf("microspec: transcript disabled: %v", err)
		} else {
			c.trace = tw
		}
	}
	c.record(func(tw *trace.Writer) error { return tw.EmitChainStart(t.Name()) })

	if c.registered != t {
		c.registered = t
		t.Cleanup(func() {
			// A later Reset may have bound the chain to another test.
			if c.t == t {
				c.teardown()
			}
		})
	}
}

// Given runs an arranging step. A failure it raises fails the test at once.
func (c *Chain) Given(s Step) Arranging {
	c.t.Helper()
	c.arrange(narrative.Given, s)
	return Arranging{c: c}
}

// When runs an acting step without any arrangement.
func (c *Chain) When(s Step) Acting {
	c.t.Helper()
	c.act(narrative.When, s)
	return Acting{c: c}
}

// Pending returns the captured failure not yet asserted on or re-raised.
func (c *Chain) Pending() error {
	return c.pending
}

// Err returns the last failure the chain reported to the test.
func (c *Chain) Err() error {
	return c.raised
}

// arrange runs s and raises its failure immediately.
func (c *Chain) arrange(p narrative.Prefix, s Step) {
	c.t.Helper()
	text := s.Text()
	index := c.begin(p, text)
	start := time.Now()
	err := s.fn()
	if err != nil {
		c.finish(index, trace.StatusFailed, start, err)
		c.raise(err, "%s %s", p, text)
		return
	}
	c.finish(index, trace.StatusPassed, start, nil)
}

// act runs s and captures its failure, panics included, as pending.
func (c *Chain) act(p narrative.Prefix, s Step) {
	c.t.Helper()
	text := s.Text()
	index := c.begin(p, text)
	start := time.Now()
	err := capture(s.fn)
	if err != nil {
		c.pending = err
		c.finish(index, trace.StatusCaptured, start, err)
		c.record(func(tw *trace.Writer) error { return tw.EmitFailureCaptured(index, trace.FailureOf(err)) })
		return
	}
	c.finish(index, trace.StatusPassed, start, nil)
}

func capture(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// reraise surfaces the pending failure wrapped in an UnexpectedFailure and
// reports whether it did.
func (c *Chain) reraise(at narrative.Prefix) bool {
	c.t.Helper()
	cause := c.pending
	if cause == nil {
		return false
	}
	c.pending = nil
	c.record(func(tw *trace.Writer) error { return tw.EmitFailureReraised(string(at), trace.FailureOf(cause)) })
	c.raise(&UnexpectedFailure{Cause: cause})
	return true
}

func (c *Chain) raise(err error, msgAndArgs ...any) {
	c.t.Helper()
	c.raised = err
	c.check.NoError(err, msgAndArgs...)
}

// declare records the expected failure kind. Nothing runs.
func (c *Chain) declare(p narrative.Prefix, k Kind) FailureAssertion {
	c.note(c.out.Declare(p, k.Name()))
	c.expected = k
	c.record(func(tw *trace.Writer) error { return tw.EmitFailureDeclared(string(p), k.Name()) })
	return FailureAssertion{c: c}
}

// assertFailure consumes the pending failure and checks it against the
// expected kind and, when message is non-nil, the exact message.
func (c *Chain) assertFailure(name string, message *string) bool {
	c.t.Helper()
	err := c.pending
	c.pending = nil

	results := []*assertions.Result{assertions.EvalCaptured(err)}
	if err != nil {
		results = append(results, assertions.EvalKind(c.expected.Name(), c.expected.Matches(err), err))
		if message != nil {
			results = append(results, assertions.EvalMessage(*message, err))
		}
	}
	passed := !assertions.HasFailures(results)
	c.record(func(tw *trace.Writer) error { return tw.EmitFailureAsserted(name, passed, results) })

	for _, r := range results {
		if r.Passed {
			continue
		}
		c.raised = &AssertionError{Result: r}
		c.note(c.out.Break())
		c.check.Check(r)
		return false
	}
	return true
}

func (c *Chain) begin(p narrative.Prefix, text string) int {
	c.note(c.out.Step(p, text))
	index := c.steps
	c.steps++
	c.record(func(tw *trace.Writer) error { return tw.EmitStepStart(index, string(p), text) })
	return index
}

func (c *Chain) finish(index int, status trace.StepStatus, start time.Time, err error) {
	c.record(func(tw *trace.Writer) error {
		return tw.EmitStepComplete(index, status, time.Since(start), trace.FailureOf(err))
	})
}

// teardown runs when the test ends. With strict teardown a failure that was
// captured but never consumed fails the test.
func (c *Chain) teardown() {
	c.t.Helper()
	if cause := c.pending; cause != nil && c.cfg.TeardownStrict() {
		c.pending = nil
		c.record(func(tw *trace.Writer) error { return tw.EmitFailureReraised("teardown", trace.FailureOf(cause)) })
		c.raised = &UnexpectedFailure{Cause: cause}
		c.t.Errorf("%v", c.raised)
	}
	c.completeRun()
}

// completeRun records chain_complete and releases the run's writer. It is a
// no-op once the run has completed.
func (c *Chain) completeRun() {
	tw := c.trace
	if tw == nil {
		return
	}
	pending := trace.FailureOf(c.pending)
	c.record(func(tw *trace.Writer) error {
		return tw.EmitChainComplete(c.t.Failed(), time.Since(c.started), pending)
	})
	c.trace = nil
	c.note(tw.Close())
}

// record emits a transcript event. A write error disables the transcript for
// the rest of the test.
func (c *Chain) record(emit func(tw *trace.Writer) error) {
	if c.trace == nil {
		return
	}
	if err := emit(c.trace); err != nil {
		c.t.Logf("microspec: transcript disabled: %v", err)
		c.note(c.trace.Close())
		c.trace = nil
	}
}

func (c *Chain) note(err error) {
	if err != nil {
		c.t.Logf("microspec: narrative output: %v", err)
	}
}
