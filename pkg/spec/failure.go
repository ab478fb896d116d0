package spec

import (
	"fmt"

	"github.com/ormasoftchile/microspec/pkg/assertions"
)

const unexpectedFailureMessage = "an unexpected failure occurred while executing the chain"

// UnexpectedFailure wraps a captured failure that resurfaced because the chain
// moved on without asserting on it.
type UnexpectedFailure struct {
	Cause error
}

func (e *UnexpectedFailure) Error() string {
	if e.Cause == nil {
		return unexpectedFailureMessage
	}
	return unexpectedFailureMessage + ": " + e.Cause.Error()
}

func (e *UnexpectedFailure) Unwrap() error {
	return e.Cause
}

// PanicError is a panic recovered from an acting step. Its message is the
// panic value's own message, so panics and returned errors assert alike.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

// Unwrap exposes a panicked error value to errors.Is and errors.As.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// AssertionError reports a failed failure assertion.
type AssertionError struct {
	Result *assertions.Result
}

func (e *AssertionError) Error() string {
	return e.Result.Message
}
