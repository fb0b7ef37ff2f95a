package diag

import (
	"fmt"
	"strings"
)

// Render formats a single diagnostic deterministically: a header with
// file:line:column, the offending source line, a caret range underlining
// the span, any secondary labels, and optional help text.
func Render(d Diagnostic, sources *SourceSet) string {
	var sb strings.Builder
	renderOne(&sb, d, sources)
	return sb.String()
}

// RenderAll formats every diagnostic in the bag, separated by blank lines.
func RenderAll(diags []Diagnostic, sources *SourceSet) string {
	var sb strings.Builder
	for i, d := range diags {
		renderOne(&sb, d, sources)
		if i < len(diags)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderOne(sb *strings.Builder, d Diagnostic, sources *SourceSet) {
	src := sources.Get(d.Span.File)

	name := "<unknown>"
	line, col := 0, 0
	if src != nil {
		name = src.Name
		line, col = src.LineCol(d.Span.Start)
	}

	fmt.Fprintf(sb, "%s: %s:%d:%d: %s\n", d.Severity, name, line, col, d.Message)

	if src != nil {
		renderCaret(sb, src, d.Span)
	}

	for _, l := range d.Labels {
		lsrc := sources.Get(l.Span.File)
		if lsrc == nil {
			continue
		}
		lline, lcol := lsrc.LineCol(l.Span.Start)
		fmt.Fprintf(sb, "  note: %s:%d:%d: %s\n", lsrc.Name, lline, lcol, l.Message)
		renderCaret(sb, lsrc, l.Span)
	}

	if d.Help != "" {
		fmt.Fprintf(sb, "  help: %s\n", d.Help)
	}
}

func renderCaret(sb *strings.Builder, src *SourceFile, span Span) {
	line, col := src.LineCol(span.Start)
	sourceLine := src.Line(line)
	lineNumStr := fmt.Sprintf("%4d | ", line)

	sb.WriteString(lineNumStr)
	sb.WriteString(sourceLine)
	sb.WriteString("\n")

	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	// Don't let the underline run past the end of the rendered line.
	if col-1+width > len(sourceLine)+1 {
		width = len(sourceLine) - (col - 1) + 1
		if width < 1 {
			width = 1
		}
	}

	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
	sb.WriteString(strings.Repeat("^", width))
	sb.WriteString("\n")
}

// Record is the structured JSON-export shape of a Diagnostic:
// {severity, span:{file, line, column, length}, message, labels, help}.
type Record struct {
	Severity string        `json:"severity"`
	Span     RecordSpan    `json:"span"`
	Message  string        `json:"message"`
	Labels   []RecordLabel `json:"labels,omitempty"`
	Help     string        `json:"help,omitempty"`
}

// RecordSpan is the structured-export form of a Span, resolved against a
// SourceSet into human-facing line/column/length fields.
type RecordSpan struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Length int    `json:"length"`
}

// RecordLabel is the structured-export form of a Label.
type RecordLabel struct {
	Span    RecordSpan `json:"span"`
	Message string     `json:"message"`
}

// ToRecord converts a Diagnostic into its structured-export Record.
func ToRecord(d Diagnostic, sources *SourceSet) Record {
	return Record{
		Severity: d.Severity.String(),
		Span:     toRecordSpan(d.Span, sources),
		Message:  d.Message,
		Labels:   toRecordLabels(d.Labels, sources),
		Help:     d.Help,
	}
}

func toRecordSpan(span Span, sources *SourceSet) RecordSpan {
	src := sources.Get(span.File)
	if src == nil {
		return RecordSpan{Length: span.End - span.Start}
	}
	line, col := src.LineCol(span.Start)
	return RecordSpan{File: src.Name, Line: line, Column: col, Length: span.End - span.Start}
}

func toRecordLabels(labels []Label, sources *SourceSet) []RecordLabel {
	if len(labels) == 0 {
		return nil
	}
	out := make([]RecordLabel, len(labels))
	for i, l := range labels {
		out[i] = RecordLabel{Span: toRecordSpan(l.Span, sources), Message: l.Message}
	}
	return out
}
