package model

import "github.com/chriserin/cook/quantity"

// GroupOutcome classifies a merged listing group.
type GroupOutcome int

const (
	// OutcomeFixed means the group carries no quantity at all.
	OutcomeFixed GroupOutcome = iota
	// OutcomeScaled means every quantity was summed into Total.
	OutcomeScaled
	// OutcomeError means the quantities could not be combined and are
	// listed separately.
	OutcomeError
)

func (o GroupOutcome) String() string {
	switch o {
	case OutcomeScaled:
		return "scaled"
	case OutcomeError:
		return "error"
	}
	return "fixed"
}

// IngredientGroup is one deduplicated listing entry. Index addresses the
// canonical ingredient; Quantities holds each mention's amount in source
// order, and Total is their sum when the outcome is scaled.
type IngredientGroup struct {
	Index      int
	Quantities []quantity.Quantity
	Total      *quantity.Quantity
	Outcome    GroupOutcome
}

// CookwareGroup mirrors IngredientGroup for cookware. Amounts are
// summed without unit conversion; mismatched units are an error.
type CookwareGroup struct {
	Index      int
	Quantities []quantity.Quantity
	Total      *quantity.Quantity
	Outcome    GroupOutcome
}

// GroupIngredients merges ingredient mentions that resolve to the same
// canonical entry, for listing. Hidden entries are skipped. Quantities
// are summed through the converter when their kinds are compatible.
func (r *Recipe) GroupIngredients(conv *quantity.Converter) []IngredientGroup {
	order, members := groupByCanonical(len(r.Ingredients), func(i int) (*int, bool) {
		ing := &r.Ingredients[i]
		return ing.Relation, ing.Modifiers.ShouldBeListed()
	})

	groups := make([]IngredientGroup, 0, len(order))
	for _, canonical := range order {
		g := IngredientGroup{Index: canonical}
		for _, idx := range members[canonical] {
			if q := r.Ingredients[idx].Quantity; q != nil {
				g.Quantities = append(g.Quantities, *q)
			}
		}
		g.Total, g.Outcome = sumQuantities(g.Quantities, conv)
		groups = append(groups, g)
	}
	return groups
}

// GroupCookware is the analogous merge without unit-kind conversion.
func (r *Recipe) GroupCookware() []CookwareGroup {
	order, members := groupByCanonical(len(r.Cookware), func(i int) (*int, bool) {
		cw := &r.Cookware[i]
		return cw.Relation, cw.Modifiers.ShouldBeListed()
	})

	groups := make([]CookwareGroup, 0, len(order))
	for _, canonical := range order {
		g := CookwareGroup{Index: canonical}
		for _, idx := range members[canonical] {
			if q := r.Cookware[idx].Quantity; q != nil {
				g.Quantities = append(g.Quantities, *q)
			}
		}
		g.Total, g.Outcome = sumQuantities(g.Quantities, nil)
		groups = append(groups, g)
	}
	return groups
}

// groupByCanonical buckets component indices by their canonical entry.
// listed is evaluated on the canonical index; hidden canonicals drop the
// whole bucket.
func groupByCanonical(n int, info func(int) (relation *int, listed bool)) (order []int, members map[int][]int) {
	members = make(map[int][]int)
	for i := 0; i < n; i++ {
		rel, _ := info(i)
		canonical := i
		if rel != nil {
			canonical = *rel
		}
		if _, seen := members[canonical]; !seen {
			if _, listed := info(canonical); !listed {
				members[canonical] = nil
				continue
			}
			order = append(order, canonical)
		}
		members[canonical] = append(members[canonical], i)
	}
	return order, members
}

// sumQuantities combines quantities pairwise. No quantities is a fixed
// outcome; any text value or conversion failure is an error outcome and
// the caller lists the originals separately.
func sumQuantities(qs []quantity.Quantity, conv *quantity.Converter) (*quantity.Quantity, GroupOutcome) {
	if len(qs) == 0 {
		return nil, OutcomeFixed
	}
	total := qs[0]
	if !total.Value.IsNumeric() {
		return nil, OutcomeError
	}
	for _, q := range qs[1:] {
		if conv == nil {
			if q.Unit != total.Unit || !q.Value.IsNumeric() {
				return nil, OutcomeError
			}
			total = addSameUnit(total, q)
			continue
		}
		sum, err := conv.Add(total, q)
		if err != nil {
			return nil, OutcomeError
		}
		total = sum
	}
	// a sum can outgrow the written unit; a single mention keeps it
	if conv != nil && len(qs) > 1 {
		total = conv.Fit(total)
	}
	return &total, OutcomeScaled
}

func addSameUnit(a, b quantity.Quantity) quantity.Quantity {
	av := a.Value
	bv := b.Value
	if av.Kind() == quantity.KindRange || bv.Kind() == quantity.KindRange {
		as, ae := boundsOf(av)
		bs, be := boundsOf(bv)
		return quantity.Quantity{Value: quantity.RangeValue(as+bs, ae+be), Unit: a.Unit}
	}
	return quantity.Quantity{Value: quantity.NumberValue(av.Number() + bv.Number()), Unit: a.Unit}
}

func boundsOf(v quantity.Value) (float64, float64) {
	if v.Kind() == quantity.KindRange {
		return v.Range()
	}
	return v.Number(), v.Number()
}
