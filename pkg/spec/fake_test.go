package spec

import (
	"errors"
	"fmt"
)

var errStopped = errors.New("test stopped")

// fakeTB records what a chain reports. FailNow panics with errStopped, which
// run recovers, so a test can observe a chain stopping its host test.
type fakeTB struct {
	name     string
	errors   []string
	logs     []string
	failed   bool
	cleanups []func()
}

func newFakeTB(name string) *fakeTB {
	return &fakeTB{name: name}
}

func (f *fakeTB) Helper()      {}
func (f *fakeTB) Name() string { return f.name }
func (f *fakeTB) Failed() bool { return f.failed }

func (f *fakeTB) Errorf(format string, args ...any) {
	f.failed = true
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeTB) Logf(format string, args ...any) {
	f.logs = append(f.logs, fmt.Sprintf(format, args...))
}

func (f *fakeTB) FailNow() {
	f.failed = true
	panic(errStopped)
}

func (f *fakeTB) Cleanup(fn func()) {
	f.cleanups = append(f.cleanups, fn)
}

// run calls fn and reports whether it stopped the test.
func (f *fakeTB) run(fn func()) (stopped bool) {
	defer func() {
		if r := recover(); r != nil {
			if r != errStopped {
				panic(r)
			}
			stopped = true
		}
	}()
	fn()
	return false
}

// finish runs registered cleanups in reverse order, as testing does.
func (f *fakeTB) finish() {
	for i := len(f.cleanups) - 1; i >= 0; i-- {
		f.cleanups[i]()
	}
	f.cleanups = nil
}
