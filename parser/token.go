package parser

import "github.com/chriserin/cook/report"

// TokenKind classifies a lexical unit.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenMetadata
	TokenComment
	TokenSection
	TokenIngredient
	TokenCookware
	TokenTimer
	TokenInlineQuantity
	TokenEOL
	TokenBlank
)

// Token is a lexical unit with its byte-range span. Which extra fields
// are set depends on the kind.
type Token struct {
	Kind TokenKind
	Span report.Span

	// TokenText
	Text string

	// TokenMetadata
	Key       string
	Value     string
	KeySpan   report.Span
	ValueSpan report.Span

	// TokenSection
	Name string

	// marker kinds
	Marker *Marker
}

// Marker is the decoded form of an ingredient, cookware, timer or inline
// quantity marker: modifier prefix, name with optional alias, optional
// braced quantity and optional trailing note.
type Marker struct {
	Modifiers   string
	Name        string
	Alias       string
	NameSpan    report.Span
	HasQuantity bool
	RawValue    string
	RawUnit     string
	ValueSpan   report.Span
	Note        string
	Span        report.Span
}

// DisplayName returns the alias when present, the name otherwise.
func (m *Marker) DisplayName() string {
	if m.Alias != "" {
		return m.Alias
	}
	return m.Name
}
