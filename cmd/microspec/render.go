package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/microspec/pkg/narrative"
)

var (
	renderPrefix  string
	renderTypes   []string
	renderOutcome string
)

var renderCmd = &cobra.Command{
	Use:   "render TEMPLATE [ARGS...]",
	Short: "Render a step description as a narrative line",
	Long: `Render a step description template the way a chain prints it.

Positional markers _0_, _1_, ... take ARGS; generic markers _g0_, _g1_, ...
take --type values. Arguments that parse as numbers or booleans render bare,
"null" renders as null, anything else is quoted.

With a failure prefix ("Then a", "Then an", "And a", "And an") TEMPLATE is
the failure kind and --outcome picks the closing fragment.`,
	Example: `  microspec render Creates_a_widget_named_0_ Acme --prefix Given
  microspec render DivideByZeroError --prefix "Then a" --outcome message`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	p := narrative.Prefix(renderPrefix)
	out := cmd.OutOrStdout()

	switch p {
	case narrative.Given, narrative.When, narrative.Then, narrative.And:
		values := make([]any, 0, len(args)-1)
		for _, a := range args[1:] {
			values = append(values, parseArg(a))
		}
		name := narrative.Name(args[0], renderTypes, values)
		log.Debug("rendered", "template", args[0], "args", len(values))
		fmt.Fprint(out, narrative.Line(p, name))
		return nil
	case narrative.ThenA, narrative.ThenAn, narrative.AndA, narrative.AndAn:
		if len(args) > 1 {
			return fmt.Errorf("a failure declaration takes only the kind name")
		}
		f, err := outcomeFragment(renderOutcome)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, narrative.Declaration(p, args[0])+string(f))
		return nil
	}
	return fmt.Errorf("unknown prefix %q", renderPrefix)
}

func outcomeFragment(outcome string) (narrative.Fragment, error) {
	switch strings.ToLower(outcome) {
	case "thrown", "":
		return narrative.FragmentThrown, nil
	case "message":
		return narrative.FragmentThrownWithMessage, nil
	case "not-thrown":
		return narrative.FragmentNotThrown, nil
	}
	return "", fmt.Errorf("unknown outcome %q (want thrown, message or not-thrown)", outcome)
}

// parseArg gives a command-line argument the type a Go caller would most
// likely have passed.
func parseArg(s string) any {
	if s == "null" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}

func init() {
	renderCmd.Flags().StringVarP(&renderPrefix, "prefix", "p", string(narrative.Given), `Line prefix: Given, When, Then, And, "Then a", "Then an", "And a", "And an"`)
	renderCmd.Flags().StringSliceVarP(&renderTypes, "type", "t", nil, "Type name for a generic marker (repeatable, in order)")
	renderCmd.Flags().StringVar(&renderOutcome, "outcome", "thrown", "Closing fragment for failure declarations: thrown, message, not-thrown")
}
