// Package model holds the canonical recipe produced by analysis, plus
// scaling and listing-group operations over it. A Recipe is immutable
// once built and safe for concurrent readers; scaling returns a new
// ScaledRecipe instead of mutating in place.
package model

import "github.com/chriserin/cook/quantity"

// Recipe owns one contiguous, index-addressed list per component kind.
// Every Item and Relation index is valid within these lists.
type Recipe struct {
	Name             string
	Metadata         Metadata
	Sections         []Section
	Ingredients      []Ingredient
	Cookware         []Cookware
	Timers           []Timer
	InlineQuantities []quantity.Quantity
}

// Section groups steps and text blocks under an optional heading.
type Section struct {
	Name    string
	Named   bool
	Content []Content
}

// ContentKind discriminates section content.
type ContentKind int

const (
	ContentStep ContentKind = iota
	ContentText
)

// Content is a step or a plain text block.
type Content struct {
	Kind ContentKind
	Step Step
	Text string
}

// Step is an ordered sequence of inline items.
type Step struct {
	Number int
	Items  []Item
}

// ItemKind discriminates step items.
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemIngredient
	ItemCookware
	ItemTimer
	ItemInlineQuantity
)

// Item is a text run or an index into one of the recipe's component
// lists, depending on the kind.
type Item struct {
	Kind  ItemKind
	Text  string
	Index int
}

// Modifiers is the capability flag set of a component mention.
type Modifiers uint8

const (
	// ModRecipe marks a reference to another recipe.
	ModRecipe Modifiers = 1 << iota
	// ModRef links the mention to the nearest earlier same-named definition.
	ModRef
	// ModNew forces a new definition even when the name was seen before.
	ModNew
	// ModHidden keeps the component out of listings.
	ModHidden
	// ModOptional marks the component as optional.
	ModOptional
)

func (m Modifiers) Has(f Modifiers) bool { return m&f == f }
func (m Modifiers) IsOptional() bool     { return m.Has(ModOptional) }
func (m Modifiers) IsHidden() bool       { return m.Has(ModHidden) }
func (m Modifiers) IsReference() bool    { return m.Has(ModRef) }
func (m Modifiers) IsRecipeRef() bool    { return m.Has(ModRecipe) }

// ShouldBeListed reports whether the component appears in listings.
func (m Modifiers) ShouldBeListed() bool { return !m.Has(ModHidden) }

// Ingredient is one mention of an ingredient. Relation, when set, is the
// index of the earlier canonical definition this mention refers to.
type Ingredient struct {
	Name      string
	Alias     string
	Note      string
	Modifiers Modifiers
	Quantity  *quantity.Quantity
	Relation  *int
}

// DisplayName returns the alias when present, the name otherwise.
func (i *Ingredient) DisplayName() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.Name
}

// Cookware is one mention of a tool or vessel.
type Cookware struct {
	Name      string
	Alias     string
	Note      string
	Modifiers Modifiers
	Quantity  *quantity.Quantity
	Relation  *int
}

func (c *Cookware) DisplayName() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Name
}

// Timer is a named or unnamed duration.
type Timer struct {
	Name     string
	Quantity *quantity.Quantity
}

// BaseServings returns the declared serving count, or 1 when the
// metadata does not declare one.
func (r *Recipe) BaseServings() int {
	if len(r.Metadata.Servings) > 0 && r.Metadata.Servings[0] > 0 {
		return r.Metadata.Servings[0]
	}
	return 1
}
