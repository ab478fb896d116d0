// Package narrative renders chain steps into human-readable lines.
//
// A step's description template is an identifier-like string such as
// "Creates_a_widget_named_0_". Positional markers (_0_, _1_, ...) are replaced
// by the step arguments, generic markers (_g0_, _g1_, ...) by type argument
// names, and every remaining underscore becomes a space:
//
//	Name("Creates_a_widget_named_0_", nil, []any{"Acme"})
//	// Creates a widget named "Acme"
package narrative

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Prefix is the keyword that opens a narrative line.
type Prefix string

const (
	Given  Prefix = "Given"
	When   Prefix = "When"
	Then   Prefix = "Then"
	And    Prefix = "And"
	ThenA  Prefix = "Then a"
	ThenAn Prefix = "Then an"
	AndA   Prefix = "And a"
	AndAn  Prefix = "And an"
)

// Fragment completes a failure declaration line.
type Fragment string

const (
	FragmentThrown            Fragment = " is thrown"
	FragmentThrownWithMessage Fragment = " is thrown with specific message"
	FragmentNotThrown         Fragment = " is not thrown"
)

// andIndent is written before step lines opened by And.
const andIndent = "  "

// marker delimits substitution slots while the template is being normalized.
// It is not whitespace, so collapsing spaces never touches a slot.
const marker = "\x00"

// Name renders a description template. Type arguments are substituted before
// positional arguments. Substituted text is inserted last and never rescanned,
// so underscores inside an argument value survive.
func Name(template string, typeArgs []string, args []any) string {
	pairs := make([]string, 0, 2*(len(typeArgs)+len(args)))

	for i, typeArg := range typeArgs {
		slot := marker + "g" + strconv.Itoa(i) + marker
		template = strings.ReplaceAll(template, "_g"+strconv.Itoa(i)+"_", " "+slot+" ")
		pairs = append(pairs, slot, typeArg)
	}
	for i, arg := range args {
		slot := marker + strconv.Itoa(i) + marker
		template = strings.ReplaceAll(template, "_"+strconv.Itoa(i)+"_", " "+slot+" ")
		pairs = append(pairs, slot, FormatArg(arg))
	}

	template = strings.ReplaceAll(template, "_", " ")
	template = strings.Join(strings.Fields(template), " ")
	if len(pairs) == 0 {
		return template
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// FormatArg stringifies a step argument. Strings are quoted, nil values
// (including typed nil pointers, maps, slices, funcs) render as null.
func FormatArg(v any) string {
	if isNil(v) {
		return "null"
	}
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Line renders a complete step line including its trailing newline. Lines
// opened by And are indented under the step they continue.
func Line(p Prefix, name string) string {
	indent := ""
	if p == And {
		indent = andIndent
	}
	return indent + string(p) + " " + name + "\n"
}

// Declaration renders a failure declaration. It has no trailing newline: the
// terminal assertion finishes the sentence with a Fragment.
func Declaration(p Prefix, kind string) string {
	return string(p) + " " + kind
}
