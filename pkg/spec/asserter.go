package spec

import (
	"github.com/stretchr/testify/require"

	"github.com/ormasoftchile/microspec/pkg/assertions"
)

// TB is the part of testing.TB a chain reports through.
type TB interface {
	Helper()
	Name() string
	Errorf(format string, args ...any)
	Logf(format string, args ...any)
	FailNow()
	Failed() bool
	Cleanup(func())
}

// Asserter raises test failures on behalf of a chain. Both methods are
// expected to stop the test when they fail it.
type Asserter interface {
	// NoError fails the test when err is non-nil.
	NoError(err error, msgAndArgs ...any)
	// Check fails the test when r did not pass.
	Check(r *assertions.Result)
}

// TestifyAsserter reports through testify's require package.
type TestifyAsserter struct {
	t TB
}

// NewTestifyAsserter returns the default Asserter for t.
func NewTestifyAsserter(t TB) *TestifyAsserter {
	return &TestifyAsserter{t: t}
}

func (a *TestifyAsserter) NoError(err error, msgAndArgs ...any) {
	a.t.Helper()
	require.NoError(a.t, err, msgAndArgs...)
}

func (a *TestifyAsserter) Check(r *assertions.Result) {
	a.t.Helper()
	if r.Passed {
		return
	}
	if r.Type == assertions.TypeMessage {
		// require.Equal prints a diff of the two messages.
		require.Equal(a.t, r.Expected, r.Actual, r.Message)
	}
	require.FailNow(a.t, r.Message)
}
