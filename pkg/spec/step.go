package spec

import (
	"reflect"

	"github.com/ormasoftchile/microspec/pkg/narrative"
)

// Step is a bound step: a description template, the arguments it renders and
// a thunk that calls the step function with those arguments. A step raises a
// failure by returning a non-nil error or by panicking.
type Step struct {
	name     string
	typeArgs []string
	args     []any
	fn       func() error
}

// Do binds a step that takes no arguments.
func Do(name string, fn func() error) Step {
	return Step{name: name, fn: fn}
}

// Do1 binds a one-argument step. The template refers to the argument as _0_.
func Do1[A any](name string, fn func(A) error, a A) Step {
	return Step{name: name, args: []any{a}, fn: func() error { return fn(a) }}
}

// Do2 binds a two-argument step (_0_, _1_).
func Do2[A, B any](name string, fn func(A, B) error, a A, b B) Step {
	return Step{name: name, args: []any{a, b}, fn: func() error { return fn(a, b) }}
}

// Do3 binds a three-argument step (_0_, _1_, _2_).
func Do3[A, B, C any](name string, fn func(A, B, C) error, a A, b B, c C) Step {
	return Step{name: name, args: []any{a, b, c}, fn: func() error { return fn(a, b, c) }}
}

// DoN binds a step taking any number of untyped arguments.
func DoN(name string, fn func(args ...any) error, args ...any) Step {
	bound := append([]any(nil), args...)
	return Step{name: name, args: bound, fn: func() error { return fn(bound...) }}
}

// WithTypes sets the names substituted for the generic markers _g0_, _g1_, ...
func (s Step) WithTypes(names ...string) Step {
	s.typeArgs = append([]string(nil), names...)
	return s
}

// Args returns the step's positional arguments.
func (s Step) Args() []any {
	return s.args
}

// Text renders the step's description.
func (s Step) Text() string {
	return narrative.Name(s.name, s.typeArgs, s.args)
}

// TypeName returns the bare identifier of T: no package path and no pointer
// markers. Unnamed types fall back to their literal form.
func TypeName[T any]() string {
	return typeName(reflect.TypeFor[T]())
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
