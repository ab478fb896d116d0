package spec

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestStepText(t *testing.T) {
	noop1 := func(string) error { return nil }
	tests := []struct {
		name string
		step Step
		want string
	}{
		{"no args", Do("Dividing", func() error { return nil }), "Dividing"},
		{"one arg", Do1("Creates_a_widget_named_0_", noop1, "Acme"), `Creates a widget named "Acme"`},
		{"two args", Do2("A_calculator_dividing_0_by_1_", func(int, int) error { return nil }, 10, 0), "A calculator dividing 10 by 0"},
		{"three args", Do3("Moves_0_from_1_to_2_", func(string, int, int) error { return nil }, "crate", 1, 2), `Moves "crate" from 1 to 2`},
		{"variadic", DoN("Sums_0_and_1_", func(...any) error { return nil }, 1, nil), "Sums 1 and null"},
		{"generic", Do("A_list_of_g0_", func() error { return nil }).WithTypes("Widget"), "A list of Widget"},
		{"generic before positional", Do1("Stores_0_as_g0_", noop1, "x").WithTypes("Key"), `Stores "x" as Key`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.step.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStepBindsArguments(t *testing.T) {
	var got string
	s := Do2("Joins_0_and_1_", func(a, b string) error {
		got = a + b
		return nil
	}, "x", "y")

	if err := s.fn(); err != nil {
		t.Fatalf("fn: %v", err)
	}
	if got != "xy" {
		t.Errorf("got %q, want %q", got, "xy")
	}
	if len(s.Args()) != 2 {
		t.Errorf("Args() = %v", s.Args())
	}
}

func TestDoNCopiesArguments(t *testing.T) {
	args := []any{1, 2}
	s := DoN("Sums_0_and_1_", func(...any) error { return nil }, args...)
	args[0] = 9
	if s.Text() != "Sums 1 and 2" {
		t.Errorf("Text() = %q after caller mutated its slice", s.Text())
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName[*DivideByZeroError](); got != "DivideByZeroError" {
		t.Errorf("TypeName = %q", got)
	}
	if got := TypeName[error](); got != "error" {
		t.Errorf("TypeName = %q", got)
	}
	if got := TypeName[[]int](); got != "[]int" {
		t.Errorf("TypeName = %q", got)
	}
}

func TestKindMatches(t *testing.T) {
	dz := &DivideByZeroError{Dividend: 1}
	tests := []struct {
		name string
		kind Kind
		err  error
		want bool
	}{
		{"exact type", KindOf[*DivideByZeroError](), dz, true},
		{"wrapped type", KindOf[*DivideByZeroError](), fmt.Errorf("op: %w", dz), true},
		{"other type", KindOf[*DivideByZeroError](), io.EOF, false},
		{"nil error", KindOf[*DivideByZeroError](), nil, false},
		{"sentinel", KindIs("EOF", io.EOF), io.EOF, true},
		{"wrapped sentinel", KindIs("EOF", io.EOF), fmt.Errorf("read: %w", io.EOF), true},
		{"other sentinel", KindIs("EOF", io.EOF), errors.New("EOF"), false},
		{"zero kind", Kind{}, dz, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Matches(tt.err); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestKindNamed(t *testing.T) {
	k := KindOf[*DivideByZeroError]()
	renamed := k.Named("division failure")
	if k.Name() != "DivideByZeroError" || renamed.Name() != "division failure" {
		t.Errorf("names = %q, %q", k.Name(), renamed.Name())
	}
	if !renamed.Matches(&DivideByZeroError{}) {
		t.Error("renamed kind lost its matcher")
	}
}
