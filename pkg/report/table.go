package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ormasoftchile/microspec/pkg/trace"
)

const (
	runColumn    = 8
	detailColumn = 72
)

// Table lists events one per line in aligned columns: time, run, type and a
// short description. Widths are measured in terminal cells, so wide runes in
// step text stay aligned.
func Table(events []trace.Event) string {
	typeWidth := runewidth.StringWidth("TYPE")
	for _, evt := range events {
		if w := runewidth.StringWidth(string(evt.Type)); w > typeWidth {
			typeWidth = w
		}
	}

	var b strings.Builder
	writeRow(&b, typeWidth, "TIME", "RUN", "TYPE", "DETAIL")
	for _, evt := range events {
		writeRow(&b, typeWidth,
			evt.Timestamp.Format("15:04:05.000"),
			runewidth.Truncate(evt.RunID, runColumn, ""),
			string(evt.Type),
			runewidth.Truncate(Detail(evt), detailColumn, "…"))
	}
	return b.String()
}

func writeRow(b *strings.Builder, typeWidth int, at, run, typ, detail string) {
	fmt.Fprintf(b, "%s  %s  %s  %s\n",
		runewidth.FillRight(at, 12),
		runewidth.FillRight(run, runColumn),
		runewidth.FillRight(typ, typeWidth),
		detail)
}

// Detail describes an event in one line.
func Detail(evt trace.Event) string {
	d := evt.Data
	switch evt.Type {
	case trace.EventChainStart:
		return str(d, "name")
	case trace.EventStepStart:
		return str(d, "prefix") + " " + str(d, "text")
	case trace.EventStepComplete:
		if f := failureText(d["failure"]); f != "" {
			return str(d, "status") + ": " + f
		}
		return str(d, "status")
	case trace.EventFailureCaptured:
		return failureText(d["failure"])
	case trace.EventFailureDeclared:
		return str(d, "prefix") + " " + str(d, "kind")
	case trace.EventFailureAsserted:
		if flag(d, "passed") {
			return str(d, "assertion") + " passed"
		}
		return str(d, "assertion") + " failed"
	case trace.EventFailureReraised:
		return "at " + str(d, "at") + ": " + failureText(d["failure"])
	case trace.EventChainComplete:
		if p := failureText(d["pending"]); p != "" {
			return str(d, "status") + ", pending " + p
		}
		return str(d, "status")
	}
	return ""
}
