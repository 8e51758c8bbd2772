// Package parser turns cooklang source text into an abstract syntax tree.
// It is split in two layers like a classic pipeline: the lexer produces
// positioned tokens, the parser groups them into sections and steps.
// Both layers recover from malformed input instead of aborting; problems
// become diagnostics and the offending text degrades to plain text.
package parser

import "strings"

// Extensions is a set of independently toggleable optional grammar
// features. The zero value has every feature disabled.
type Extensions uint16

const (
	ExtMultilineSteps Extensions = 1 << iota
	ExtIngredientModifiers
	ExtIngredientNote
	ExtIngredientAlias
	ExtSections
	ExtAdvancedUnits
	ExtModes
	ExtTemperature

	// ExtIngredientAll groups every ingredient-related feature.
	ExtIngredientAll = ExtIngredientModifiers | ExtIngredientNote | ExtIngredientAlias

	extAll = ExtMultilineSteps | ExtIngredientAll | ExtSections |
		ExtAdvancedUnits | ExtModes | ExtTemperature
)

// AllExtensions returns the set with every feature enabled, which is the
// default configuration.
func AllExtensions() Extensions { return extAll }

// Has reports whether every feature in e is enabled.
func (x Extensions) Has(e Extensions) bool { return x&e == e }

// With returns the union of x and e.
func (x Extensions) With(e Extensions) Extensions { return x | e }

// Without returns x with every feature in e disabled.
func (x Extensions) Without(e Extensions) Extensions { return x &^ e }

var extensionNames = []struct {
	ext  Extensions
	name string
}{
	{ExtMultilineSteps, "multiline steps"},
	{ExtIngredientModifiers, "ingredient modifiers"},
	{ExtIngredientNote, "ingredient note"},
	{ExtIngredientAlias, "ingredient alias"},
	{ExtSections, "sections"},
	{ExtAdvancedUnits, "advanced units"},
	{ExtModes, "modes"},
	{ExtTemperature, "temperature"},
}

func (x Extensions) String() string {
	var names []string
	for _, e := range extensionNames {
		if x.Has(e.ext) {
			names = append(names, e.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
