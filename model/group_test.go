package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/cook/quantity"
)

func relTo(i int) *int { return &i }

func TestGroupIngredients_SumsCompatibleUnits(t *testing.T) {
	r := &Recipe{
		Ingredients: []Ingredient{
			{Name: "flour", Quantity: qty(quantity.NumberValue(200), "g")},
			{Name: "flour", Quantity: qty(quantity.NumberValue(0.3), "kg"), Relation: relTo(0)},
		},
	}
	groups := r.GroupIngredients(quantity.Builtin())
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, 0, g.Index)
	assert.Equal(t, OutcomeScaled, g.Outcome)
	require.NotNil(t, g.Total)
	assert.Equal(t, "g", g.Total.Unit)
	assert.InDelta(t, 500, g.Total.Value.Number(), 1e-9)
}

func TestGroupIngredients_IncompatibleKindsError(t *testing.T) {
	r := &Recipe{
		Ingredients: []Ingredient{
			{Name: "eggs", Quantity: qty(quantity.NumberValue(2), "")},
			{Name: "eggs", Quantity: qty(quantity.NumberValue(100), "g"), Relation: relTo(0)},
		},
	}
	groups := r.GroupIngredients(quantity.Builtin())
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, OutcomeError, g.Outcome)
	assert.Nil(t, g.Total)
	require.Len(t, g.Quantities, 2)
	assert.Equal(t, "2", g.Quantities[0].String())
	assert.Equal(t, "100 g", g.Quantities[1].String())
}

func TestGroupIngredients_NoQuantityIsFixed(t *testing.T) {
	r := &Recipe{
		Ingredients: []Ingredient{{Name: "salt"}},
	}
	groups := r.GroupIngredients(quantity.Builtin())
	require.Len(t, groups, 1)
	assert.Equal(t, OutcomeFixed, groups[0].Outcome)
	assert.Nil(t, groups[0].Total)
	assert.Empty(t, groups[0].Quantities)
}

func TestGroupIngredients_SkipsHidden(t *testing.T) {
	r := &Recipe{
		Ingredients: []Ingredient{
			{Name: "water", Modifiers: ModHidden, Quantity: qty(quantity.NumberValue(1), "l")},
			{Name: "flour", Quantity: qty(quantity.NumberValue(100), "g")},
		},
	}
	groups := r.GroupIngredients(quantity.Builtin())
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Index)
}

func TestGroupIngredients_ForcedNewStaysSeparate(t *testing.T) {
	r := &Recipe{
		Ingredients: []Ingredient{
			{Name: "flour", Quantity: qty(quantity.NumberValue(100), "g")},
			{Name: "flour", Modifiers: ModNew, Quantity: qty(quantity.NumberValue(50), "g")},
		},
	}
	groups := r.GroupIngredients(quantity.Builtin())
	require.Len(t, groups, 2)
	assert.InDelta(t, 100, groups[0].Total.Value.Number(), 1e-9)
	assert.InDelta(t, 50, groups[1].Total.Value.Number(), 1e-9)
}

func TestGroupIngredients_TextQuantityError(t *testing.T) {
	r := &Recipe{
		Ingredients: []Ingredient{
			{Name: "salt", Quantity: qty(quantity.TextValue("a pinch"), "")},
			{Name: "salt", Quantity: qty(quantity.NumberValue(5), "g"), Relation: relTo(0)},
		},
	}
	groups := r.GroupIngredients(quantity.Builtin())
	require.Len(t, groups, 1)
	assert.Equal(t, OutcomeError, groups[0].Outcome)
}

func TestGroupCookware_SameUnitSums(t *testing.T) {
	r := &Recipe{
		Cookware: []Cookware{
			{Name: "bowl", Quantity: qty(quantity.NumberValue(1), "")},
			{Name: "bowl", Quantity: qty(quantity.NumberValue(2), ""), Relation: relTo(0)},
		},
	}
	groups := r.GroupCookware()
	require.Len(t, groups, 1)
	assert.Equal(t, OutcomeScaled, groups[0].Outcome)
	assert.InDelta(t, 3, groups[0].Total.Value.Number(), 1e-9)
}

func TestGroupCookware_NoConversionAcrossUnits(t *testing.T) {
	r := &Recipe{
		Cookware: []Cookware{
			{Name: "pan", Quantity: qty(quantity.NumberValue(1), "large")},
			{Name: "pan", Quantity: qty(quantity.NumberValue(1), "small"), Relation: relTo(0)},
		},
	}
	groups := r.GroupCookware()
	require.Len(t, groups, 1)
	assert.Equal(t, OutcomeError, groups[0].Outcome)
	assert.Len(t, groups[0].Quantities, 2)
}
