// Package cook parses cooklang recipe markup into a structured, scalable
// recipe model. The pipeline is lex, parse, analyze; every phase recovers
// from malformed input and records diagnostics on a single SourceReport
// instead of aborting.
package cook

import (
	"github.com/chriserin/cook/analysis"
	"github.com/chriserin/cook/model"
	"github.com/chriserin/cook/parser"
	"github.com/chriserin/cook/quantity"
	"github.com/chriserin/cook/report"
)

// Extensions re-exports the optional grammar feature set.
type Extensions = parser.Extensions

// Parser configures a parse. The zero value disables every extension;
// use New for the default all-enabled configuration.
type Parser struct {
	Extensions       Extensions
	WarningsAsErrors bool
	Converter        *quantity.Converter
	RefChecker       analysis.RecipeRefChecker
}

// New returns a parser with every extension enabled and the builtin
// unit converter.
func New() *Parser {
	return &Parser{
		Extensions: parser.AllExtensions(),
		Converter:  quantity.Builtin(),
	}
}

// Parse runs the full pipeline over source text. The report is always
// returned. When any error-severity diagnostic exists, or any diagnostic
// at all under WarningsAsErrors, the recipe is nil and the report doubles
// as the returned error.
func (p *Parser) Parse(src, recipeName string) (*model.Recipe, *report.SourceReport, error) {
	rep := &report.SourceReport{}
	ast := parser.Parse(src, p.Extensions, rep)
	a := &analysis.Analyzer{
		Extensions: p.Extensions,
		Converter:  p.Converter,
		Checker:    p.RefChecker,
	}
	recipe := a.Analyze(ast, recipeName, rep)

	if rep.HasErrors() || (p.WarningsAsErrors && rep.Len() > 0) {
		return nil, rep, rep
	}
	return recipe, rep, nil
}

// Parse is a convenience over New().Parse.
func Parse(src, recipeName string) (*model.Recipe, *report.SourceReport, error) {
	return New().Parse(src, recipeName)
}
