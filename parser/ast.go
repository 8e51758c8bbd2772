package parser

import "github.com/chriserin/cook/report"

// AST is the parsed document: metadata entries in source order plus
// sections of steps and text blocks.
type AST struct {
	Metadata []MetaEntry
	Sections []Section
}

// MetaEntry is one `>> key: value` line, order preserved.
type MetaEntry struct {
	Key       string
	Value     string
	Span      report.Span
	KeySpan   report.Span
	ValueSpan report.Span
}

// Section groups steps under an optional heading. A document without
// section markers parses into one implicit unnamed section.
type Section struct {
	Name    string
	Named   bool
	Content []Block
}

// BlockKind discriminates section content.
type BlockKind int

const (
	BlockStep BlockKind = iota
	BlockText
)

// Block is either a step made of inline items or a plain text block.
type Block struct {
	Kind  BlockKind
	Items []Item
	Text  string
	Span  report.Span
}

// ItemKind discriminates inline step items.
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemIngredient
	ItemCookware
	ItemTimer
	ItemQuantity
)

// Item is one inline piece of a step: a text run or a component marker.
type Item struct {
	Kind   ItemKind
	Text   string
	Span   report.Span
	Marker *Marker
}
