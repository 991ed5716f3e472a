package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/cboragen/cboragen/pkg/source"
	"github.com/cboragen/cboragen/pkg/util/termio"
)

// Render writes every diagnostic in diags, in order, to w using an
// ariadne-style layout:
//
//	<severity>: <message>
//	  --> <filename>:<line>:<col>
//	   |
//	 N | <line text>
//	   | <underline>
//	   = help: <note message>
//	<blank line>
//
// useColor controls whether ANSI escapes are emitted; byte layout is
// otherwise identical either way.
func Render(w io.Writer, file *source.File, diags []Diagnostic, useColor bool) {
	for _, d := range diags {
		renderOne(w, file, d, useColor)
	}
}

func renderOne(w io.Writer, file *source.File, d Diagnostic, useColor bool) {
	lines := file.Lines()
	line, col := lines.Resolve(d.Span.Start())
	lineText, _ := source.GetLineText(d.Span.Start(), file.Contents())

	head := fmt.Sprintf("%s: %s", d.Severity, d.Message)
	if useColor {
		head = severityColour(d.Severity) + fmt.Sprintf("%s:", d.Severity) + reset() + " " + d.Message
	}

	fmt.Fprintln(w, head)

	arrow := fmt.Sprintf("  --> %s:%d:%d", file.Filename(), line, col)
	if useColor {
		arrow = colourize(gutterColour(), "  --> ") + fmt.Sprintf("%s:%d:%d", file.Filename(), line, col)
	}

	fmt.Fprintln(w, arrow)

	gutter := fmt.Sprintf("%d", line)
	pad := strings.Repeat(" ", len(gutter))

	bareGutter := " " + pad + " |"
	numberedGutter := " " + gutter + " | "

	if useColor {
		bareGutter = colourize(gutterColour(), " "+pad+" |")
		numberedGutter = colourize(gutterColour(), " "+gutter+" | ")
	}

	fmt.Fprintln(w, bareGutter)
	fmt.Fprintf(w, "%s%s\n", numberedGutter, lineText)

	underline := buildUnderline(d.Span, lines.LineStart(line), len(lineText))
	underlineLine := fmt.Sprintf("%s%s", bareGutter, underline)

	if useColor {
		underlineLine = bareGutter + colourize(severityColour(d.Severity), underline)
	}

	fmt.Fprintln(w, underlineLine)

	for _, n := range d.Notes {
		help := pad + "  = help: " + n.Message
		if useColor {
			help = pad + "  " + colourize(helpColour(), "= help: ") + n.Message
		}

		fmt.Fprintln(w, help)
	}

	fmt.Fprintln(w)
}

// buildUnderline computes the "   ^^^^" line beneath an offending line. The
// underline length equals min(span.end, line_end) - span.start, never less
// than 1.
func buildUnderline(span source.Span, lineStart, lineLen int) string {
	colStart := span.Start() - lineStart
	if colStart < 0 {
		colStart = 0
	}

	lineEnd := lineStart + lineLen
	end := span.End()
	if end > lineEnd {
		end = lineEnd
	}

	width := end - span.Start()
	if width < 1 {
		width = 1
	}

	return " " + strings.Repeat(" ", colStart) + strings.Repeat("^", width)
}

func severityColour(s Severity) string {
	switch s {
	case Error:
		return termio.BoldAnsiEscape().FgColour(termio.TERM_RED).Build()
	case Warning:
		return termio.BoldAnsiEscape().FgColour(termio.TERM_YELLOW).Build()
	default:
		return termio.NewAnsiEscape().FgColour(termio.TERM_WHITE).Build()
	}
}

func gutterColour() string {
	return termio.NewAnsiEscape().FgColour(termio.TERM_BLUE).Build()
}

func helpColour() string {
	return termio.NewAnsiEscape().FgColour(termio.TERM_CYAN).Build()
}

func reset() string {
	return termio.ResetAnsiEscape().Build()
}

func colourize(escape, text string) string {
	return escape + text + reset()
}
