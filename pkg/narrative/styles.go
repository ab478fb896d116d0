package narrative

import "github.com/charmbracelet/lipgloss"

// Palette adapts to terminal capabilities via lipgloss.
var (
	colorGreen = lipgloss.Color("42")
	colorRed   = lipgloss.Color("196")
	colorCyan  = lipgloss.Color("51")
	colorDim   = lipgloss.Color("240")
)

type styles struct {
	keyword lipgloss.Style
	and     lipgloss.Style
	kind    lipgloss.Style
	thrown  lipgloss.Style
	absent  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *styles {
	return &styles{
		keyword: r.NewStyle().Bold(true).Foreground(colorCyan),
		and:     r.NewStyle().Foreground(colorDim),
		kind:    r.NewStyle().Bold(true).Foreground(colorRed),
		thrown:  r.NewStyle().Foreground(colorRed),
		absent:  r.NewStyle().Foreground(colorGreen),
	}
}

func (s *styles) prefix(p Prefix) string {
	if p == And {
		return s.and.Render(string(p))
	}
	return s.keyword.Render(string(p))
}

func (s *styles) line(p Prefix, name string) string {
	indent := ""
	if p == And {
		indent = andIndent
	}
	return indent + s.prefix(p) + " " + name + "\n"
}

func (s *styles) declaration(p Prefix, kind string) string {
	return s.keyword.Render(string(p)) + " " + s.kind.Render(kind)
}

func (s *styles) fragment(f Fragment) string {
	if f == FragmentNotThrown {
		return s.absent.Render(string(f))
	}
	return s.thrown.Render(string(f))
}
