package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	gutterStyle = lipgloss.NewStyle().Faint(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Write renders every diagnostic with a source excerpt and a position
// marker under the offending span. fileName is only used in the location
// line; source must be the exact text the spans were recorded against.
func (r *SourceReport) Write(fileName, source string, color bool, w io.Writer) error {
	for _, d := range r.diags {
		if err := writeDiagnostic(w, fileName, source, d, color); err != nil {
			return err
		}
	}
	return nil
}

func writeDiagnostic(w io.Writer, fileName, source string, d Diagnostic, color bool) error {
	line, col := position(source, d.Span.Start)

	head := fmt.Sprintf("%s: %s", d.Severity, d.Message)
	if color {
		switch d.Severity {
		case SeverityError:
			head = errStyle.Render(d.Severity.String()) + ": " + d.Message
		default:
			head = warnStyle.Render(d.Severity.String()) + ": " + d.Message
		}
	}
	if _, err := fmt.Fprintln(w, head); err != nil {
		return err
	}

	loc := fmt.Sprintf("  --> %s:%d:%d", fileName, line, col)
	if color {
		loc = gutterStyle.Render(loc)
	}
	if _, err := fmt.Fprintln(w, loc); err != nil {
		return err
	}

	excerpt, markStart, markLen := excerptLine(source, d.Span)
	gutter := fmt.Sprintf("%4d | ", line)
	if color {
		gutter = gutterStyle.Render(gutter)
	}
	if _, err := fmt.Fprintln(w, gutter+excerpt); err != nil {
		return err
	}

	carets := strings.Repeat("^", max(markLen, 1))
	if color {
		if d.Severity == SeverityError {
			carets = errStyle.Render(carets)
		} else {
			carets = warnStyle.Render(carets)
		}
	}
	marker := strings.Repeat(" ", markStart) + carets
	pad := "     | "
	if color {
		pad = gutterStyle.Render(pad)
	}
	if _, err := fmt.Fprintln(w, pad+marker); err != nil {
		return err
	}

	for _, h := range d.Hints {
		hint := "  = hint: " + h
		if color {
			hint = hintStyle.Render(hint)
		}
		if _, err := fmt.Fprintln(w, hint); err != nil {
			return err
		}
	}
	return nil
}

// position returns the 1-based line and column of a byte offset.
func position(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}

// excerptLine returns the source line containing the span start, plus the
// marker start column and length clipped to that line.
func excerptLine(source string, span Span) (text string, markStart, markLen int) {
	start := span.Start
	if start > len(source) {
		start = len(source)
	}
	lineStart := strings.LastIndexByte(source[:start], '\n') + 1
	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += lineStart
	}
	text = source[lineStart:lineEnd]

	markStart = start - lineStart
	end := span.End
	if end > lineEnd {
		end = lineEnd
	}
	markLen = end - start
	return text, markStart, markLen
}
