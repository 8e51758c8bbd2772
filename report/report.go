// Package report collects positioned diagnostics produced while parsing
// and analyzing a recipe. A SourceReport accumulates across every phase;
// no phase aborts on malformed input.
package report

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Span is a byte-offset range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

// NewSpan returns a span, swapping the bounds if given backwards.
func NewSpan(start, end int) Span {
	if end < start {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

func (s Span) Len() int { return s.End - s.Start }

// Diagnostic is a single warning or error anchored to a source span.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     Span
	Hints    []string
}

// SourceReport is an ordered list of diagnostics, in order of first
// detection across all phases.
type SourceReport struct {
	diags []Diagnostic
}

// Warn records a warning-severity diagnostic.
func (r *SourceReport) Warn(span Span, format string, args ...any) {
	r.Append(Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// Errorf records an error-severity diagnostic.
func (r *SourceReport) Errorf(span Span, format string, args ...any) {
	r.Append(Diagnostic{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// Hint records a warning-severity diagnostic carrying hint lines.
func (r *SourceReport) Hint(span Span, message string, hints ...string) {
	r.Append(Diagnostic{
		Severity: SeverityWarning,
		Message:  message,
		Span:     span,
		Hints:    hints,
	})
}

// Append adds a diagnostic preserving detection order.
func (r *SourceReport) Append(d Diagnostic) {
	r.diags = append(r.diags, d)
}

// Extend appends every diagnostic from other, keeping order.
func (r *SourceReport) Extend(other *SourceReport) {
	if other == nil {
		return
	}
	r.diags = append(r.diags, other.diags...)
}

// Diagnostics returns the recorded diagnostics in detection order.
func (r *SourceReport) Diagnostics() []Diagnostic {
	return r.diags
}

func (r *SourceReport) Len() int { return len(r.diags) }

// HasErrors reports whether any error-severity diagnostic was recorded.
func (r *SourceReport) HasErrors() bool {
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Error implements the error interface so a failing parse can hand the
// report back to the caller directly.
func (r *SourceReport) Error() string {
	if len(r.diags) == 0 {
		return "no diagnostics"
	}
	var b strings.Builder
	for i, d := range r.diags {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", d.Severity, d.Message)
	}
	return b.String()
}
