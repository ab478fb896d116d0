package spec

import (
	"errors"
	"fmt"
)

type DivideByZeroError struct {
	Dividend int
}

func (e *DivideByZeroError) Error() string {
	return fmt.Sprintf("cannot divide %d by zero", e.Dividend)
}

var errClosed = errors.New("calculator closed")

type calculator struct {
	a, b   int
	result int
	closed bool
}

func (c *calculator) load(a, b int) error {
	c.a, c.b = a, b
	return nil
}

func (c *calculator) divide() error {
	if c.closed {
		return fmt.Errorf("divide: %w", errClosed)
	}
	if c.b == 0 {
		return &DivideByZeroError{Dividend: c.a}
	}
	c.result = c.a / c.b
	return nil
}

func (c *calculator) close() error {
	c.closed = true
	return nil
}

func (c *calculator) resultIs(want int) error {
	if c.result != want {
		return fmt.Errorf("result = %d, want %d", c.result, want)
	}
	return nil
}
