package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders out as a markdown document: a summary line, a table of
// runs and the steps of every run that did not pass.
func Markdown(out *Output) string {
	var b strings.Builder
	b.WriteString("# Specification report\n\n")
	fmt.Fprintf(&b, "**%d** runs: %d passed, %d failed, %d incomplete\n\n",
		out.Summary.Total, out.Summary.Passed, out.Summary.Failed, out.Summary.Incomplete)

	if len(out.Results) == 0 {
		return b.String()
	}

	b.WriteString("| Status | Name | Steps | Duration |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range out.Results {
		fmt.Fprintf(&b, "| %s | %s | %d | %dms |\n", statusIcon(r.Status), cell(r.Name), len(r.Steps), r.DurationMs)
	}

	for _, r := range out.Results {
		if r.Status == StatusPassed {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", r.Name)
		if r.Error != "" {
			fmt.Fprintf(&b, "> %s\n\n", r.Error)
		}
		for _, s := range r.Steps {
			fmt.Fprintf(&b, "- %s **%s** %s", statusIcon(s.Status), s.Prefix, s.Text)
			if s.Failure != "" {
				fmt.Fprintf(&b, " (`%s`)", s.Failure)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func statusIcon(status string) string {
	switch status {
	case StatusPassed:
		return "✓"
	case StatusFailed:
		return "✗"
	case "captured":
		return "⚡"
	default:
		return "…"
	}
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown styles md for a terminal at the given width (0 disables
// wrapping). It falls back to the raw input if rendering fails.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}
