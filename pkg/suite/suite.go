// Package suite groups specifications so each runs as its own subtest.
package suite

import (
	"testing"
	"time"

	"github.com/ormasoftchile/microspec/pkg/report"
	"github.com/ormasoftchile/microspec/pkg/spec"
)

// Specification is the body of one named specification.
type Specification func(c *spec.Chain)

type entry struct {
	name string
	fn   Specification
}

// Suite is an ordered set of named specifications.
type Suite struct {
	entries []entry
	opts    []spec.Option
}

// New returns an empty suite. opts apply to every chain the suite creates.
func New(opts ...spec.Option) *Suite {
	return &Suite{opts: opts}
}

// Add registers a specification. Specifications run in the order added.
func (s *Suite) Add(name string, fn Specification) *Suite {
	s.entries = append(s.entries, entry{name: name, fn: fn})
	return s
}

// Len returns the number of registered specifications.
func (s *Suite) Len() int {
	return len(s.entries)
}

// Run runs every specification as a subtest of t with a fresh chain and
// returns one result per specification.
func (s *Suite) Run(t *testing.T) *report.Output {
	t.Helper()
	out := &report.Output{Results: make([]report.Result, 0, len(s.entries))}
	for _, e := range s.entries {
		r := report.Result{Name: e.name}
		start := time.Now()
		passed := t.Run(e.name, func(t *testing.T) {
			r.Name = t.Name()
			var c *spec.Chain
			// Registered before the chain's own teardown so it runs after it
			// and sees a failure re-raised there.
			t.Cleanup(func() {
				if err := c.Err(); err != nil {
					r.Error = err.Error()
				}
			})
			c = spec.New(t, s.opts...)
			e.fn(c)
		})
		r.DurationMs = time.Since(start).Milliseconds()

		out.Summary.Total++
		if passed {
			r.Status = report.StatusPassed
			out.Summary.Passed++
		} else {
			r.Status = report.StatusFailed
			out.Summary.Failed++
		}
		out.Results = append(out.Results, r)
	}
	return out
}
