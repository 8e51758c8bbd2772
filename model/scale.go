package model

import (
	"errors"

	"github.com/chriserin/cook/quantity"
	"github.com/chriserin/cook/report"
)

// ScaledRecipe is a Recipe whose quantities were multiplied by a serving
// factor. It is structurally identical to Recipe, so grouping and
// rendering work unchanged on either.
type ScaledRecipe struct {
	Recipe
	Factor float64
}

// Scale returns a copy of the recipe with every numeric quantity
// multiplied by targetServings over the declared base servings. Text
// quantities are left unchanged; the first time each one is encountered
// during the operation a warning is recorded on the returned report.
func (r *Recipe) Scale(targetServings int) (*ScaledRecipe, *report.SourceReport) {
	factor := float64(targetServings) / float64(r.BaseServings())
	return r.ScaleFactor(factor)
}

// ScaleFactor is Scale with an explicit factor.
func (r *Recipe) ScaleFactor(factor float64) (*ScaledRecipe, *report.SourceReport) {
	rep := &report.SourceReport{}
	scaled := &ScaledRecipe{Recipe: *r, Factor: factor}

	warned := map[string]bool{}
	warnText := func(q quantity.Quantity) {
		if factor == 1 {
			return
		}
		key := q.String()
		if warned[key] {
			return
		}
		warned[key] = true
		rep.Warn(report.Span{}, "quantity %q is not numeric and was not scaled", key)
	}

	scaled.Ingredients = scaleComponents(r.Ingredients, factor, warnText,
		func(i *Ingredient) **quantity.Quantity { return &i.Quantity })
	scaled.Cookware = scaleComponents(r.Cookware, factor, warnText,
		func(c *Cookware) **quantity.Quantity { return &c.Quantity })
	scaled.Timers = append([]Timer(nil), r.Timers...)
	scaled.InlineQuantities = append([]quantity.Quantity(nil), r.InlineQuantities...)

	return scaled, rep
}

// DefaultScale is Scale with factor 1: an identity on every quantity.
func (r *Recipe) DefaultScale() *ScaledRecipe {
	scaled, _ := r.ScaleFactor(1)
	return scaled
}

func scaleComponents[T any](src []T, factor float64, warnText func(quantity.Quantity), qty func(*T) **quantity.Quantity) []T {
	out := append([]T(nil), src...)
	for i := range out {
		qp := qty(&out[i])
		if *qp == nil {
			continue
		}
		q := **qp
		if !q.Value.IsNumeric() {
			warnText(q)
			scaledQ := q
			*qp = &scaledQ
			continue
		}
		scaledQ := quantity.Quantity{Value: q.Value.Scale(factor), Unit: q.Unit}
		*qp = &scaledQ
	}
	return out
}

// ConvertSystem converts every convertible quantity into the target unit
// system. Conversion failures become diagnostics and the original value
// stays in place; timers and unit-less quantities pass through.
func (s *ScaledRecipe) ConvertSystem(target quantity.System, conv *quantity.Converter) *report.SourceReport {
	rep := &report.SourceReport{}
	if conv == nil {
		rep.Warn(report.Span{}, "no converter configured; quantities left unconverted")
		return rep
	}

	convert := func(q *quantity.Quantity, what string) *quantity.Quantity {
		if q == nil || q.Unit == "" {
			return q
		}
		res, err := conv.ConvertSystem(*q, target)
		switch {
		case err == nil:
			return &res
		case errors.Is(err, quantity.ErrTextValue):
			rep.Warn(report.Span{}, "cannot convert non-numeric quantity of %s", what)
		default:
			rep.Warn(report.Span{}, "cannot convert %s: %v", what, err)
		}
		return q
	}

	for i := range s.Ingredients {
		ing := &s.Ingredients[i]
		ing.Quantity = convert(ing.Quantity, ing.Name)
	}
	for i := range s.Timers {
		t := &s.Timers[i]
		t.Quantity = convert(t.Quantity, "timer")
	}
	for i := range s.InlineQuantities {
		q := convert(&s.InlineQuantities[i], "inline quantity")
		s.InlineQuantities[i] = *q
	}
	return rep
}
