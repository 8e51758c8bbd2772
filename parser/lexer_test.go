package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/cook/report"
)

func lexAll(t *testing.T, src string, ext Extensions) ([]Token, *report.SourceReport) {
	t.Helper()
	rep := &report.SourceReport{}
	return Lex(src, ext, rep), rep
}

func markers(tokens []Token) []Token {
	var out []Token
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenIngredient, TokenCookware, TokenTimer, TokenInlineQuantity:
			out = append(out, tok)
		}
	}
	return out
}

func TestLex_MetadataLine(t *testing.T) {
	tokens, rep := lexAll(t, ">> servings: 4\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenMetadata, tokens[0].Kind)
	assert.Equal(t, "servings", tokens[0].Key)
	assert.Equal(t, "4", tokens[0].Value)
	assert.Equal(t, 3, tokens[0].KeySpan.Start)
	assert.Equal(t, 11, tokens[0].KeySpan.End)
}

func TestLex_MetadataMissingColon(t *testing.T) {
	tokens, rep := lexAll(t, ">> servings 4\n", AllExtensions())
	require.Equal(t, 1, rep.Len())
	assert.Equal(t, report.SeverityWarning, rep.Diagnostics()[0].Severity)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenText, tokens[0].Kind)
	assert.Equal(t, ">> servings 4", tokens[0].Text)
}

func TestLex_IngredientWithQuantity(t *testing.T) {
	tokens, rep := lexAll(t, "Mix @flour{200%g} well.\n", AllExtensions())
	require.Equal(t, 0, rep.Len())

	ms := markers(tokens)
	require.Len(t, ms, 1)
	m := ms[0].Marker
	assert.Equal(t, "flour", m.Name)
	assert.True(t, m.HasQuantity)
	assert.Equal(t, "200", m.RawValue)
	assert.Equal(t, "g", m.RawUnit)
	assert.Equal(t, 4, ms[0].Span.Start)
	assert.Equal(t, 17, ms[0].Span.End)
}

func TestLex_MultiWordName(t *testing.T) {
	tokens, rep := lexAll(t, "Add @olive oil{2%tbsp} now.\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	ms := markers(tokens)
	require.Len(t, ms, 1)
	assert.Equal(t, "olive oil", ms[0].Marker.Name)
}

func TestLex_SingleWordNameStopsAtDelimiter(t *testing.T) {
	tokens, rep := lexAll(t, "Add @salt. Done.\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	ms := markers(tokens)
	require.Len(t, ms, 1)
	assert.Equal(t, "salt", ms[0].Marker.Name)
	assert.False(t, ms[0].Marker.HasQuantity)
}

func TestLex_Alias(t *testing.T) {
	tokens, rep := lexAll(t, "@white wine|wine{1%cup}\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	ms := markers(tokens)
	require.Len(t, ms, 1)
	assert.Equal(t, "white wine", ms[0].Marker.Name)
	assert.Equal(t, "wine", ms[0].Marker.Alias)
	assert.Equal(t, "wine", ms[0].Marker.DisplayName())
}

func TestLex_AliasDisabled(t *testing.T) {
	tokens, rep := lexAll(t, "@white wine|wine{1%cup}\n", AllExtensions().Without(ExtIngredientAlias))
	require.Equal(t, 1, rep.Len())
	ms := markers(tokens)
	require.Len(t, ms, 1)
	assert.Empty(t, ms[0].Marker.Alias)
}

func TestLex_Note(t *testing.T) {
	tokens, rep := lexAll(t, "@salt{}(to taste)\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	ms := markers(tokens)
	require.Len(t, ms, 1)
	assert.Equal(t, "to taste", ms[0].Marker.Note)
}

func TestLex_NoteDisabledStaysText(t *testing.T) {
	tokens, rep := lexAll(t, "@salt{}(to taste)\n", AllExtensions().Without(ExtIngredientNote))
	require.Equal(t, 0, rep.Len())
	ms := markers(tokens)
	require.Len(t, ms, 1)
	assert.Empty(t, ms[0].Marker.Note)

	var text string
	for _, tok := range tokens {
		if tok.Kind == TokenText {
			text += tok.Text
		}
	}
	assert.Contains(t, text, "(to taste)")
}

func TestLex_Modifiers(t *testing.T) {
	tokens, rep := lexAll(t, "@?-salt{} and @&flour{} and @+flour{}\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	ms := markers(tokens)
	require.Len(t, ms, 3)
	assert.Equal(t, "?-", ms[0].Marker.Modifiers)
	assert.Equal(t, "&", ms[1].Marker.Modifiers)
	assert.Equal(t, "+", ms[2].Marker.Modifiers)
}

func TestLex_ModifiersDisabled(t *testing.T) {
	tokens, rep := lexAll(t, "@?salt{}\n", AllExtensions().Without(ExtIngredientModifiers))
	require.Equal(t, 1, rep.Len())
	assert.Empty(t, markers(tokens))
}

func TestLex_ModifiersDisabledConsumesWholeMarker(t *testing.T) {
	src := "Add @?salt{1%g} now.\n"
	tokens, rep := lexAll(t, src, AllExtensions().Without(ExtIngredientModifiers))

	require.Equal(t, 1, rep.Len())
	d := rep.Diagnostics()[0]
	assert.Equal(t, "@?salt{1%g}", src[d.Span.Start:d.Span.End])

	assert.Empty(t, markers(tokens))
	var text string
	for _, tok := range tokens {
		if tok.Kind == TokenText {
			text += tok.Text
		}
	}
	assert.Equal(t, "Add @?salt{1%g} now.", text)
}

func TestLex_UnterminatedQuantityBrace(t *testing.T) {
	tokens, rep := lexAll(t, "Mix @flour{200\n", AllExtensions())
	require.Equal(t, 1, rep.Len())
	d := rep.Diagnostics()[0]
	assert.Equal(t, report.SeverityError, d.Severity)
	assert.Contains(t, d.Message, "unterminated")

	assert.Empty(t, markers(tokens))
	var text string
	for _, tok := range tokens {
		if tok.Kind == TokenText {
			text += tok.Text
		}
	}
	assert.Equal(t, "Mix @flour{200", text)
}

func TestLex_Timer(t *testing.T) {
	tokens, rep := lexAll(t, "Boil for ~eggs{3%min} then ~{25%min}.\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	ms := markers(tokens)
	require.Len(t, ms, 2)
	assert.Equal(t, TokenTimer, ms[0].Kind)
	assert.Equal(t, "eggs", ms[0].Marker.Name)
	assert.Equal(t, "3", ms[0].Marker.RawValue)
	assert.Empty(t, ms[1].Marker.Name)
	assert.Equal(t, "25", ms[1].Marker.RawValue)
}

func TestLex_TimerWithoutDuration(t *testing.T) {
	tokens, rep := lexAll(t, "wait ~forever please\n", AllExtensions())
	require.Equal(t, 1, rep.Len())
	assert.Empty(t, markers(tokens))
	assert.Contains(t, rep.Diagnostics()[0].Message, "duration")
	_ = tokens
}

func TestLex_InlineQuantity(t *testing.T) {
	tokens, rep := lexAll(t, "Use {120%ml} of it.\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	ms := markers(tokens)
	require.Len(t, ms, 1)
	assert.Equal(t, TokenInlineQuantity, ms[0].Kind)
	assert.Equal(t, "120", ms[0].Marker.RawValue)
	assert.Equal(t, "ml", ms[0].Marker.RawUnit)
}

func TestLex_PlainAtSignIsText(t *testing.T) {
	tokens, rep := lexAll(t, "mail me @ home\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	assert.Empty(t, markers(tokens))
}

func TestLex_Comments(t *testing.T) {
	tokens, rep := lexAll(t, "Mix well. -- really well\nAnd [- not this -] that.\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	var comments int
	var text string
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenComment:
			comments++
		case TokenText:
			text += tok.Text
		}
	}
	assert.Equal(t, 2, comments)
	assert.NotContains(t, text, "really well")
	assert.NotContains(t, text, "not this")
	assert.Contains(t, text, "Mix well.")
}

func TestLex_SectionMarker(t *testing.T) {
	tokens, rep := lexAll(t, "= Dough =\n", AllExtensions())
	require.Equal(t, 0, rep.Len())
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenSection, tokens[0].Kind)
	assert.Equal(t, "Dough", tokens[0].Name)
}

func TestLex_SectionDisabled(t *testing.T) {
	src := "= Dough =\n"
	tokens, rep := lexAll(t, src, AllExtensions().Without(ExtSections))
	require.Equal(t, 1, rep.Len())
	d := rep.Diagnostics()[0]
	assert.Equal(t, report.SeverityWarning, d.Severity)
	assert.Equal(t, 0, d.Span.Start)
	assert.Equal(t, len(src)-1, d.Span.End)

	require.NotEmpty(t, tokens)
	assert.Equal(t, TokenText, tokens[0].Kind)
	assert.Equal(t, "= Dough =", tokens[0].Text)
}
