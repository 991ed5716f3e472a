// Package diag provides an append-only accumulator of severity-tagged
// compiler diagnostics, plus an ariadne-style renderer for them.
package diag

import "github.com/cboragen/cboragen/pkg/source"

// Severity classifies a diagnostic.
type Severity int

const (
	// Error indicates the schema could not be fully understood.
	Error Severity = iota
	// Warning indicates a likely mistake that does not block compilation.
	Warning
	// Note indicates purely informational commentary.
	Note
)

// String renders the severity the way it appears in rendered output.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Annotation is a secondary (optional-span, message) pair attached to a
// diagnostic, rendered as a "= help: ..." line.
type Annotation struct {
	Span    source.Span
	HasSpan bool
	Message string
}

// Diagnostic is a single severity-tagged compiler message.
type Diagnostic struct {
	Severity Severity
	Span     source.Span
	Message  string
	Notes    []Annotation
}

// Diagnostics is an append-only, ordered accumulator of diagnostics.
type Diagnostics struct {
	items []Diagnostic
}

// Emit appends a diagnostic with no notes.
func (d *Diagnostics) Emit(severity Severity, span source.Span, message string) {
	d.items = append(d.items, Diagnostic{Severity: severity, Span: span, Message: message})
}

// EmitDiagnostic appends an already-constructed Diagnostic verbatim. Used by
// callers that build a Diagnostic ahead of time — e.g. the import driver,
// which constructs a warning Diagnostic per missing/unreadable import on its
// own goroutine and only appends it here, serially, after the resolution
// wave completes.
func (d *Diagnostics) EmitDiagnostic(diagnostic Diagnostic) {
	d.items = append(d.items, diagnostic)
}

// EmitWithNote appends a diagnostic carrying a single help note.
func (d *Diagnostics) EmitWithNote(severity Severity, span source.Span, message string, noteSpan source.Span, hasNoteSpan bool, note string) {
	d.items = append(d.items, Diagnostic{
		Severity: severity,
		Span:     span,
		Message:  message,
		Notes:    []Annotation{{Span: noteSpan, HasSpan: hasNoteSpan, Message: note}},
	})
}

// HasErrors reports whether any accumulated diagnostic is Error severity.
func (d *Diagnostics) HasErrors() bool {
	return d.ErrorCount() > 0
}

// ErrorCount returns the number of Error-severity diagnostics accumulated.
func (d *Diagnostics) ErrorCount() int {
	n := 0

	for _, item := range d.items {
		if item.Severity == Error {
			n++
		}
	}

	return n
}

// WarningCount returns the number of Warning-severity diagnostics accumulated.
func (d *Diagnostics) WarningCount() int {
	n := 0

	for _, item := range d.items {
		if item.Severity == Warning {
			n++
		}
	}

	return n
}

// Slice returns the accumulated diagnostics in emission order.
func (d *Diagnostics) Slice() []Diagnostic {
	return d.items
}

// Append merges another accumulator's diagnostics into this one, preserving
// order. Used by the import driver to merge diagnostics produced by
// independently-parsed files.
func (d *Diagnostics) Append(other *Diagnostics) {
	if other == nil {
		return
	}

	d.items = append(d.items, other.items...)
}
