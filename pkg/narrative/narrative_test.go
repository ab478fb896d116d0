package narrative

import (
	"bytes"
	"errors"
	"strconv"
	"testing"
)

type widgetID int

func (id widgetID) String() string { return "widget#" + strconv.Itoa(int(id)) }

func TestName(t *testing.T) {
	var nilPtr *int
	tests := []struct {
		name     string
		template string
		typeArgs []string
		args     []any
		want     string
	}{
		{"no placeholders", "Nothing_happens", nil, nil, "Nothing happens"},
		{"string arg", "Creates_a_widget_named_0_", nil, []any{"Acme"}, `Creates a widget named "Acme"`},
		{"middle arg", "Configures_the_widget_with_name_0_", nil, []any{"Widget-1"}, `Configures the widget with name "Widget-1"`},
		{"two args", "Adds_0_to_1_", nil, []any{2, 3}, "Adds 2 to 3"},
		{"adjacent args", "Pair_0__1_", nil, []any{1, 2}, "Pair 1 2"},
		{"nil arg", "Stores_0_", nil, []any{nil}, "Stores null"},
		{"typed nil arg", "Stores_0_", nil, []any{nilPtr}, "Stores null"},
		{"error arg", "Fails_with_0_", nil, []any{errors.New("boom")}, "Fails with boom"},
		{"underscore in value survives", "Named_0_", nil, []any{"snake_case"}, `Named "snake_case"`},
		{"type arg", "A_g0_exists", []string{"Widget"}, nil, "A Widget exists"},
		{"type then positional", "A_g0_named_0_", []string{"Widget"}, []any{"w"}, `A Widget named "w"`},
		{"unused placeholder", "Uses_1_", nil, []any{"x"}, "Uses 1"},
		{"two digit index", "Arg_10_and_1_", nil, []any{0, "one", 2, 3, 4, 5, 6, 7, 8, 9, "ten"}, `Arg "ten" and "one"`},
		{"already spaced", "already spaced  text", nil, nil, "already spaced text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Name(tt.template, tt.typeArgs, tt.args)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestNameIsPure(t *testing.T) {
	args := []any{"Acme", 3}
	first := Name("Creates_0_with_1_parts", nil, args)
	second := Name("Creates_0_with_1_parts", nil, args)
	if first != second {
		t.Errorf("renders differ: %q vs %q", first, second)
	}
}

func TestFormatArg(t *testing.T) {
	if got := FormatArg(widgetID(0)); got != "widget#0" {
		t.Errorf("Stringer = %q", got)
	}
	if got := FormatArg(3.5); got != "3.5" {
		t.Errorf("float = %q", got)
	}
	if got := FormatArg(true); got != "true" {
		t.Errorf("bool = %q", got)
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		prefix Prefix
		want   string
	}{
		{Given, "Given x\n"},
		{When, "When x\n"},
		{Then, "Then x\n"},
		{And, "  And x\n"},
	}
	for _, tt := range tests {
		if got := Line(tt.prefix, "x"); got != tt.want {
			t.Errorf("Line(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestWriterDeclarationSentence(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Step(When, "Divides by zero"); err != nil {
		t.Fatal(err)
	}
	if err := w.Declare(ThenA, "DivideByZeroError"); err != nil {
		t.Fatal(err)
	}
	if err := w.Conclude(FragmentThrown); err != nil {
		t.Fatal(err)
	}

	want := "When Divides by zero\nThen a DivideByZeroError is thrown\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriterColorOnNonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithColor())
	if err := w.Step(And, "more"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "  And more\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	w := Discard()
	if err := w.Step(Given, "anything"); err != nil {
		t.Errorf("discard returned %v", err)
	}
}
