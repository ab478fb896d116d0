package narrative

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Writer is the line-oriented sink narrative text is written to. It never
// reads from the underlying writer.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	styles *styles // nil when output is plain
}

// Option configures a Writer.
type Option func(*Writer)

// WithColor styles prefixes and failure kinds with lipgloss. The color profile
// is detected from the destination writer, so non-terminal sinks stay plain.
func WithColor() Option {
	return func(w *Writer) {
		w.styles = newStyles(lipgloss.NewRenderer(w.out))
	}
}

// NewWriter returns a Writer on out. A nil out writes to os.Stdout.
func NewWriter(out io.Writer, opts ...Option) *Writer {
	if out == nil {
		out = os.Stdout
	}
	w := &Writer{out: out}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Discard returns a Writer that drops everything.
func Discard() *Writer {
	return &Writer{out: io.Discard}
}

// Step writes one step line.
func (w *Writer) Step(p Prefix, name string) error {
	line := Line(p, name)
	if w.styles != nil {
		line = w.styles.line(p, name)
	}
	return w.write(line)
}

// Declare writes a failure declaration, leaving the line open.
func (w *Writer) Declare(p Prefix, kind string) error {
	text := Declaration(p, kind)
	if w.styles != nil {
		text = w.styles.declaration(p, kind)
	}
	return w.write(text)
}

// Conclude finishes an open declaration line.
func (w *Writer) Conclude(f Fragment) error {
	text := string(f)
	if w.styles != nil {
		text = w.styles.fragment(f)
	}
	return w.write(text + "\n")
}

// Break ends an open declaration line without a fragment.
func (w *Writer) Break() error {
	return w.write("\n")
}

func (w *Writer) write(s string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.out, s)
	return err
}
