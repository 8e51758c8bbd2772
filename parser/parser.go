package parser

import (
	"strings"

	"github.com/chriserin/cook/report"
)

// stepMode is the active interpretation of step lines, switched by the
// modes extension through `>> [mode]: ...` metadata.
type stepMode int

const (
	modeSteps stepMode = iota
	modeText
)

// Parse lexes and parses source text into an AST. Problems never abort
// the parse: they are recorded on rep and the offending construct is
// substituted with its best-effort literal text.
func Parse(src string, ext Extensions, rep *report.SourceReport) *AST {
	tokens := Lex(src, ext, rep)
	p := &astBuilder{src: src, ext: ext, rep: rep, ast: &AST{}}
	p.run(tokens)
	return p.ast
}

type astBuilder struct {
	src  string
	ext  Extensions
	rep  *report.SourceReport
	ast  *AST
	mode stepMode

	section *Section
	items   []Item
}

func (p *astBuilder) run(tokens []Token) {
	for _, t := range tokens {
		switch t.Kind {
		case TokenComment:
			// Comments carry no structure; dropped here.
		case TokenMetadata:
			p.metadata(t)
		case TokenSection:
			p.flushStep()
			p.flushSection()
			p.section = &Section{Name: t.Name, Named: t.Name != ""}
		case TokenText:
			p.items = append(p.items, Item{Kind: ItemText, Text: t.Text, Span: t.Span})
		case TokenIngredient:
			p.items = append(p.items, Item{Kind: ItemIngredient, Span: t.Span, Marker: t.Marker})
		case TokenCookware:
			p.items = append(p.items, Item{Kind: ItemCookware, Span: t.Span, Marker: t.Marker})
		case TokenTimer:
			p.items = append(p.items, Item{Kind: ItemTimer, Span: t.Span, Marker: t.Marker})
		case TokenInlineQuantity:
			p.items = append(p.items, Item{Kind: ItemQuantity, Span: t.Span, Marker: t.Marker})
		case TokenEOL:
			if p.ext.Has(ExtMultilineSteps) && p.mode == modeSteps {
				// Steps continue across line ends until a blank line.
				if len(p.items) > 0 {
					p.items = append(p.items, Item{Kind: ItemText, Text: " ", Span: t.Span})
				}
			} else {
				p.flushStep()
			}
		case TokenBlank:
			p.flushStep()
		}
	}
	p.flushStep()
	p.flushSection()
}

// metadata files the entry, or switches the step mode for `[mode]` keys.
func (p *astBuilder) metadata(t Token) {
	if key, bracketed := strings.CutPrefix(t.Key, "["); bracketed {
		key = strings.TrimSuffix(key, "]")
		if !p.ext.Has(ExtModes) {
			p.rep.Warn(t.Span, "modes extension is disabled; line kept as text")
			p.items = append(p.items, Item{
				Kind: ItemText,
				Text: p.src[t.Span.Start:t.Span.End],
				Span: t.Span,
			})
			p.flushStep()
			return
		}
		if key != "mode" && key != "define" {
			p.rep.Warn(t.KeySpan, "unknown special metadata key %q", key)
			return
		}
		switch t.Value {
		case "steps", "all", "default":
			p.mode = modeSteps
		case "text":
			p.mode = modeText
		default:
			p.rep.Warn(t.ValueSpan, "unknown mode %q; expected steps, text or all", t.Value)
		}
		return
	}
	p.ast.Metadata = append(p.ast.Metadata, MetaEntry{
		Key:       t.Key,
		Value:     t.Value,
		Span:      t.Span,
		KeySpan:   t.KeySpan,
		ValueSpan: t.ValueSpan,
	})
}

// flushStep closes the current step, trimming surrounding whitespace
// items. In text mode the whole line set becomes a text block.
func (p *astBuilder) flushStep() {
	items := trimItems(p.items)
	p.items = nil
	if len(items) == 0 {
		return
	}
	span := report.NewSpan(items[0].Span.Start, items[len(items)-1].Span.End)

	if p.mode == modeText {
		p.appendBlock(Block{Kind: BlockText, Text: p.src[span.Start:span.End], Span: span})
		return
	}
	p.appendBlock(Block{Kind: BlockStep, Items: items, Span: span})
}

func (p *astBuilder) appendBlock(b Block) {
	if p.section == nil {
		p.section = &Section{}
	}
	p.section.Content = append(p.section.Content, b)
}

func (p *astBuilder) flushSection() {
	if p.section == nil {
		return
	}
	p.ast.Sections = append(p.ast.Sections, *p.section)
	p.section = nil
}

// trimItems drops leading and trailing whitespace-only text items and
// trims the edges of the remaining boundary text.
func trimItems(items []Item) []Item {
	start := 0
	end := len(items)
	for start < end && blankText(items[start]) {
		start++
	}
	for end > start && blankText(items[end-1]) {
		end--
	}
	items = items[start:end]
	if len(items) == 0 {
		return nil
	}
	if first := &items[0]; first.Kind == ItemText {
		cut := len(first.Text) - len(strings.TrimLeft(first.Text, " \t"))
		first.Text = first.Text[cut:]
		first.Span.Start += cut
	}
	if last := &items[len(items)-1]; last.Kind == ItemText {
		cut := len(last.Text) - len(strings.TrimRight(last.Text, " \t"))
		last.Text = last.Text[:len(last.Text)-cut]
		last.Span.End -= cut
	}
	return items
}

func blankText(it Item) bool {
	return it.Kind == ItemText && strings.TrimSpace(it.Text) == ""
}
