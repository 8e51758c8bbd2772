package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chriserin/cook/report"
)

// modifierChars are the recognized modifier prefixes: recipe reference,
// reference to previous, force new definition, hidden, optional.
const modifierChars = "@&+-?"

// Lex turns source text into positioned tokens. It never aborts:
// malformed markers degrade to plain text tokens and the problem is
// recorded on rep.
func Lex(src string, ext Extensions, rep *report.SourceReport) []Token {
	l := &lexer{src: src, ext: ext, rep: rep}
	for l.pos < len(l.src) {
		l.lexLine()
	}
	return l.tokens
}

type lexer struct {
	src    string
	pos    int
	ext    Extensions
	rep    *report.SourceReport
	tokens []Token
}

func (l *lexer) emit(t Token) { l.tokens = append(l.tokens, t) }

func (l *lexer) emitText(start, end int) {
	if end <= start {
		return
	}
	l.emit(Token{
		Kind: TokenText,
		Span: report.NewSpan(start, end),
		Text: l.src[start:end],
	})
}

// lineEnd returns the offset of the next newline, or len(src).
func (l *lexer) lineEnd() int {
	if i := strings.IndexByte(l.src[l.pos:], '\n'); i >= 0 {
		return l.pos + i
	}
	return len(l.src)
}

func skipNewline(src string, end int) int {
	if end < len(src) && src[end] == '\n' {
		return end + 1
	}
	return end
}

func (l *lexer) lexLine() {
	lineStart := l.pos
	lineEnd := l.lineEnd()
	trimmed := strings.TrimSpace(l.src[lineStart:lineEnd])

	if trimmed == "" {
		l.emit(Token{Kind: TokenBlank, Span: report.NewSpan(lineStart, lineEnd)})
		l.pos = skipNewline(l.src, lineEnd)
		return
	}

	if strings.HasPrefix(trimmed, ">>") {
		l.lexMetadata(lineStart, lineEnd)
		l.pos = skipNewline(l.src, lineEnd)
		return
	}

	if strings.HasPrefix(trimmed, "=") {
		span := report.NewSpan(lineStart, lineEnd)
		if l.ext.Has(ExtSections) {
			l.emit(Token{
				Kind: TokenSection,
				Span: span,
				Name: strings.Trim(trimmed, "= \t"),
			})
			l.pos = skipNewline(l.src, lineEnd)
			return
		}
		l.rep.Warn(span, "sections extension is disabled; marker kept as text")
	}

	l.lexInline(lineEnd)
}

// lexMetadata handles a `>> key: value` line.
func (l *lexer) lexMetadata(lineStart, lineEnd int) {
	line := l.src[lineStart:lineEnd]
	rel := strings.Index(line, ">>")
	body := line[rel+2:]
	bodyStart := lineStart + rel + 2

	colon := strings.IndexByte(body, ':')
	if colon < 0 {
		l.rep.Warn(report.NewSpan(lineStart, lineEnd), "metadata line is missing ':'; kept as text")
		l.emitText(lineStart, lineEnd)
		return
	}

	keySpan := trimmedSpan(body[:colon], bodyStart)
	valueSpan := trimmedSpan(body[colon+1:], bodyStart+colon+1)
	key := strings.TrimSpace(body[:colon])
	value := strings.TrimSpace(body[colon+1:])
	if key == "" {
		l.rep.Warn(report.NewSpan(lineStart, lineEnd), "metadata line has an empty key; kept as text")
		l.emitText(lineStart, lineEnd)
		return
	}

	l.emit(Token{
		Kind:      TokenMetadata,
		Span:      report.NewSpan(lineStart, lineEnd),
		Key:       key,
		Value:     value,
		KeySpan:   keySpan,
		ValueSpan: valueSpan,
	})
}

// trimmedSpan returns the span of s without surrounding whitespace,
// given the absolute offset of s's first byte.
func trimmedSpan(s string, abs int) report.Span {
	lead := len(s) - len(strings.TrimLeft(s, " \t"))
	trail := len(s) - len(strings.TrimRight(s, " \t"))
	return report.NewSpan(abs+lead, abs+len(s)-trail)
}

// lexInline scans step-line content: text fragments, comments and
// component markers.
func (l *lexer) lexInline(lineEnd int) {
	textStart := l.pos
	flush := func(end int) {
		l.emitText(textStart, end)
	}

	for l.pos < lineEnd {
		c := l.src[l.pos]
		switch {
		case c == '-' && strings.HasPrefix(l.src[l.pos:], "--"):
			flush(l.pos)
			l.emit(Token{Kind: TokenComment, Span: report.NewSpan(l.pos, lineEnd)})
			l.pos = lineEnd
			textStart = l.pos
		case c == '[' && strings.HasPrefix(l.src[l.pos:], "[-"):
			flush(l.pos)
			start := l.pos
			if idx := strings.Index(l.src[l.pos+2:], "-]"); idx >= 0 {
				l.pos += 2 + idx + 2
			} else {
				l.rep.Warn(report.NewSpan(start, lineEnd), "unclosed block comment")
				l.pos = len(l.src)
			}
			l.emit(Token{Kind: TokenComment, Span: report.NewSpan(start, l.pos)})
			// The comment may have crossed line ends.
			lineEnd = l.lineEnd()
			textStart = l.pos
		case c == '@' || c == '#' || c == '~':
			flush(l.pos)
			l.lexMarker(lineEnd)
			textStart = l.pos
		case c == '{':
			flush(l.pos)
			l.lexInlineQuantity(lineEnd)
			textStart = l.pos
		default:
			_, size := utf8.DecodeRuneInString(l.src[l.pos:])
			l.pos += size
		}
	}
	flush(l.pos)
	l.emit(Token{Kind: TokenEOL, Span: report.NewSpan(lineEnd, lineEnd)})
	l.pos = skipNewline(l.src, lineEnd)
}

// lexMarker decodes an @ingredient, #cookware or ~timer marker starting
// at the current position. On malformed input it records a diagnostic
// and falls back to plain text.
func (l *lexer) lexMarker(lineEnd int) {
	start := l.pos
	var kind TokenKind
	switch l.src[l.pos] {
	case '@':
		kind = TokenIngredient
	case '#':
		kind = TokenCookware
	default:
		kind = TokenTimer
	}
	l.pos++

	m := &Marker{}

	if kind != TokenTimer {
		modStart := l.pos
		for l.pos < lineEnd && strings.IndexByte(modifierChars, l.src[l.pos]) >= 0 {
			l.pos++
		}
		mods := l.src[modStart:l.pos]
		if mods != "" && !l.ext.Has(ExtIngredientModifiers) {
			end := l.markerTextEnd(l.pos, lineEnd)
			l.rep.Warn(report.NewSpan(start, end), "component modifiers are disabled; marker kept as text")
			l.emitText(start, end)
			l.pos = end
			return
		}
		m.Modifiers = mods
	}

	nameStart := l.pos
	if brace, ok := l.findNameBrace(nameStart, lineEnd); ok {
		m.Name = strings.TrimRight(l.src[nameStart:brace], " \t")
		m.NameSpan = report.NewSpan(nameStart, nameStart+len(m.Name))
		l.pos = brace
	} else {
		for l.pos < lineEnd {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !isWordRune(r) {
				break
			}
			l.pos += size
		}
		m.Name = l.src[nameStart:l.pos]
		m.NameSpan = report.NewSpan(nameStart, l.pos)
	}

	if i := strings.IndexByte(m.Name, '|'); i >= 0 {
		if l.ext.Has(ExtIngredientAlias) {
			alias := strings.TrimSpace(m.Name[i+1:])
			name := strings.TrimRight(m.Name[:i], " \t")
			if name == "" || alias == "" {
				l.rep.Warn(m.NameSpan, "empty name or alias around '|'")
			}
			m.Name = name
			m.Alias = alias
		} else {
			l.rep.Warn(m.NameSpan, "ingredient alias is disabled; '|' kept in name")
		}
	}

	if l.pos < lineEnd && l.src[l.pos] == '{' {
		if !l.lexQuantityBraces(m, start, lineEnd) {
			return
		}
	} else if kind == TokenTimer {
		if m.Name == "" {
			// A lone '~' in prose.
			l.emitText(start, l.pos)
			return
		}
		l.rep.Warn(report.NewSpan(start, l.pos), "timer is missing a duration; kept as text")
		l.emitText(start, l.pos)
		return
	}

	if m.Name == "" && !m.HasQuantity && kind != TokenTimer {
		// A lone marker character in prose.
		l.emitText(start, l.pos)
		return
	}
	if m.Name == "" && kind != TokenTimer {
		l.rep.Warn(report.NewSpan(start, l.pos), "component marker has an empty name; kept as text")
		l.emitText(start, l.pos)
		return
	}

	if kind != TokenTimer && l.ext.Has(ExtIngredientNote) &&
		l.pos < lineEnd && l.src[l.pos] == '(' {
		if close := strings.IndexByte(l.src[l.pos:lineEnd], ')'); close > 0 {
			m.Note = l.src[l.pos+1 : l.pos+close]
			l.pos += close + 1
		}
	}

	m.Span = report.NewSpan(start, l.pos)
	l.emit(Token{Kind: kind, Span: m.Span, Marker: m})
}

// lexInlineQuantity handles a bare `{value%unit}` with no marker name.
func (l *lexer) lexInlineQuantity(lineEnd int) {
	start := l.pos
	m := &Marker{}
	if !l.lexQuantityBraces(m, start, lineEnd) {
		return
	}
	if !m.HasQuantity {
		// Empty braces in prose.
		l.emitText(start, l.pos)
		return
	}
	m.Span = report.NewSpan(start, l.pos)
	l.emit(Token{Kind: TokenInlineQuantity, Span: m.Span, Marker: m})
}

// lexQuantityBraces consumes `{...}` at the current position, filling
// the marker's quantity fields. It reports false after degrading the
// whole construct to text on an unterminated brace.
func (l *lexer) lexQuantityBraces(m *Marker, markerStart, lineEnd int) bool {
	open := l.pos
	close := strings.IndexByte(l.src[open:lineEnd], '}')
	if close < 0 {
		l.rep.Errorf(report.NewSpan(open, lineEnd), "unterminated quantity: missing '}'")
		l.emitText(markerStart, lineEnd)
		l.pos = lineEnd
		return false
	}
	inner := l.src[open+1 : open+close]
	l.pos = open + close + 1

	if strings.TrimSpace(inner) == "" {
		return true
	}
	m.HasQuantity = true
	if pct := strings.IndexByte(inner, '%'); pct >= 0 {
		m.RawValue = strings.TrimSpace(inner[:pct])
		m.RawUnit = strings.TrimSpace(inner[pct+1:])
		m.ValueSpan = trimmedSpan(inner[:pct], open+1)
	} else {
		m.RawValue = strings.TrimSpace(inner)
		m.ValueSpan = trimmedSpan(inner, open+1)
	}
	return true
}

// markerTextEnd scans past a marker's name and optional quantity braces
// so a degraded marker becomes one text run instead of leaving its
// suffix to be re-lexed.
func (l *lexer) markerTextEnd(from, lineEnd int) int {
	end := from
	if brace, ok := l.findNameBrace(from, lineEnd); ok {
		end = brace
	} else {
		for end < lineEnd {
			r, size := utf8.DecodeRuneInString(l.src[end:])
			if !isWordRune(r) {
				break
			}
			end += size
		}
	}
	if end < lineEnd && l.src[end] == '{' {
		if close := strings.IndexByte(l.src[end:lineEnd], '}'); close >= 0 {
			end += close + 1
		} else {
			end = lineEnd
		}
	}
	return end
}

// findNameBrace looks ahead for the '{' that terminates a multi-word
// name. The search stops at punctuation, other markers and end of line;
// single-word names are handled by the caller.
func (l *lexer) findNameBrace(from, lineEnd int) (int, bool) {
	for i := from; i < lineEnd; i++ {
		switch l.src[i] {
		case '{':
			return i, true
		case '@', '#', '~', '.', ',', ';', ':', '!', '?', '(', ')':
			return 0, false
		}
	}
	return 0, false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
