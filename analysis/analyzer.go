// Package analysis walks the parsed AST and produces the canonical
// Recipe: components are deduplicated into index-addressed lists,
// references are resolved, and metadata is extracted into typed fields.
// Every problem becomes a diagnostic; analysis always completes with a
// safe fallback.
package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chriserin/cook/model"
	"github.com/chriserin/cook/parser"
	"github.com/chriserin/cook/quantity"
	"github.com/chriserin/cook/report"
)

// CheckResult is the outcome of a recipe reference lookup. Hints carry
// caller-supplied suggestions for NotFound results.
type CheckResult struct {
	Found bool
	Hints []string
}

// RecipeRefChecker validates that a textual reference to another recipe
// resolves to something the caller considers existing. The core never
// supplies an implementation tied to any storage; callers inject one and
// it must return synchronously.
type RecipeRefChecker interface {
	CheckRecipeRef(name string) CheckResult
}

// RecipeRefCheckerFunc adapts a plain function to RecipeRefChecker.
type RecipeRefCheckerFunc func(name string) CheckResult

func (f RecipeRefCheckerFunc) CheckRecipeRef(name string) CheckResult { return f(name) }

// Analyzer converts an AST into a Recipe. The zero value works; the
// converter and checker are optional capabilities.
type Analyzer struct {
	Extensions parser.Extensions
	Converter  *quantity.Converter
	Checker    RecipeRefChecker
}

// Analyze builds the canonical recipe, appending diagnostics to rep.
func (a *Analyzer) Analyze(ast *parser.AST, name string, rep *report.SourceReport) *model.Recipe {
	w := &walker{
		Analyzer:     a,
		rep:          rep,
		recipe:       &model.Recipe{Name: name},
		lastIngrDef:  map[string]int{},
		lastCookDef:  map[string]int{},
		checkedNames: map[string]CheckResult{},
	}

	for _, entry := range ast.Metadata {
		w.metadata(entry)
	}
	stepNumber := 0
	for _, sec := range ast.Sections {
		out := model.Section{Name: sec.Name, Named: sec.Named}
		for _, block := range sec.Content {
			switch block.Kind {
			case parser.BlockText:
				out.Content = append(out.Content, model.Content{
					Kind: model.ContentText,
					Text: block.Text,
				})
			case parser.BlockStep:
				stepNumber++
				out.Content = append(out.Content, model.Content{
					Kind: model.ContentStep,
					Step: w.step(block, stepNumber),
				})
			}
		}
		w.recipe.Sections = append(w.recipe.Sections, out)
	}
	return w.recipe
}

type walker struct {
	*Analyzer
	rep    *report.SourceReport
	recipe *model.Recipe

	lastIngrDef  map[string]int
	lastCookDef  map[string]int
	checkedNames map[string]CheckResult
}

func (w *walker) metadata(entry parser.MetaEntry) {
	w.recipe.Metadata.Set(entry.Key, entry.Value)
	special, err := w.recipe.Metadata.ApplySpecial(entry.Key, entry.Value)
	if special && err != nil {
		w.rep.Warn(entry.ValueSpan, "metadata key %q kept as plain text: %v", entry.Key, err)
	}
}

func (w *walker) step(block parser.Block, number int) model.Step {
	step := model.Step{Number: number}
	for _, item := range block.Items {
		switch item.Kind {
		case parser.ItemText:
			step.Items = append(step.Items, w.textItems(item)...)
		case parser.ItemIngredient:
			step.Items = append(step.Items, w.ingredient(item.Marker))
		case parser.ItemCookware:
			step.Items = append(step.Items, w.cookware(item.Marker))
		case parser.ItemTimer:
			step.Items = append(step.Items, w.timer(item.Marker))
		case parser.ItemQuantity:
			step.Items = append(step.Items, w.inlineQuantity(item.Marker))
		}
	}
	return step
}

func (w *walker) ingredient(m *parser.Marker) model.Item {
	mods := w.modifiers(m, "ingredient")
	ing := model.Ingredient{
		Name:      m.Name,
		Alias:     m.Alias,
		Note:      m.Note,
		Modifiers: mods,
		Quantity:  w.markerQuantity(m),
	}

	if mods.IsRecipeRef() {
		w.checkRecipeRef(m)
	}

	switch {
	case mods.IsReference():
		if idx, ok := w.lastIngrDef[ing.Name]; ok {
			ing.Relation = &idx
		} else {
			w.rep.Warn(m.NameSpan,
				"reference to undefined ingredient %q; treated as a new definition", ing.Name)
			ing.Modifiers = ing.Modifiers &^ model.ModRef
			w.lastIngrDef[ing.Name] = len(w.recipe.Ingredients)
		}
	case mods.Has(model.ModNew):
		w.lastIngrDef[ing.Name] = len(w.recipe.Ingredients)
	default:
		if idx, ok := w.lastIngrDef[ing.Name]; ok {
			ing.Relation = &idx
		} else {
			w.lastIngrDef[ing.Name] = len(w.recipe.Ingredients)
		}
	}

	w.recipe.Ingredients = append(w.recipe.Ingredients, ing)
	return model.Item{Kind: model.ItemIngredient, Index: len(w.recipe.Ingredients) - 1}
}

func (w *walker) cookware(m *parser.Marker) model.Item {
	mods := w.modifiers(m, "cookware")
	if mods.IsRecipeRef() {
		w.rep.Warn(m.NameSpan, "cookware cannot reference another recipe")
		mods = mods &^ model.ModRecipe
	}
	cw := model.Cookware{
		Name:      m.Name,
		Alias:     m.Alias,
		Note:      m.Note,
		Modifiers: mods,
		Quantity:  w.markerQuantity(m),
	}

	switch {
	case mods.IsReference():
		if idx, ok := w.lastCookDef[cw.Name]; ok {
			cw.Relation = &idx
		} else {
			w.rep.Warn(m.NameSpan,
				"reference to undefined cookware %q; treated as a new definition", cw.Name)
			cw.Modifiers = cw.Modifiers &^ model.ModRef
			w.lastCookDef[cw.Name] = len(w.recipe.Cookware)
		}
	case mods.Has(model.ModNew):
		w.lastCookDef[cw.Name] = len(w.recipe.Cookware)
	default:
		if idx, ok := w.lastCookDef[cw.Name]; ok {
			cw.Relation = &idx
		} else {
			w.lastCookDef[cw.Name] = len(w.recipe.Cookware)
		}
	}

	w.recipe.Cookware = append(w.recipe.Cookware, cw)
	return model.Item{Kind: model.ItemCookware, Index: len(w.recipe.Cookware) - 1}
}

func (w *walker) timer(m *parser.Marker) model.Item {
	t := model.Timer{Name: m.Name, Quantity: w.markerQuantity(m)}
	if t.Quantity != nil && t.Quantity.Unit != "" &&
		w.Extensions.Has(parser.ExtAdvancedUnits) && w.Converter != nil {
		def, ok := w.Converter.Lookup(t.Quantity.Unit)
		switch {
		case !ok:
			w.rep.Warn(m.ValueSpan, "unknown timer unit %q", t.Quantity.Unit)
		case def.Kind != quantity.KindTime:
			w.rep.Warn(m.ValueSpan, "timer unit %q is not a time unit", t.Quantity.Unit)
		}
	}
	w.recipe.Timers = append(w.recipe.Timers, t)
	return model.Item{Kind: model.ItemTimer, Index: len(w.recipe.Timers) - 1}
}

func (w *walker) inlineQuantity(m *parser.Marker) model.Item {
	q := quantity.Quantity{Value: quantity.ParseValue(m.RawValue), Unit: m.RawUnit}
	w.recipe.InlineQuantities = append(w.recipe.InlineQuantities, q)
	return model.Item{Kind: model.ItemInlineQuantity, Index: len(w.recipe.InlineQuantities) - 1}
}

func (w *walker) markerQuantity(m *parser.Marker) *quantity.Quantity {
	if !m.HasQuantity {
		return nil
	}
	return &quantity.Quantity{Value: quantity.ParseValue(m.RawValue), Unit: m.RawUnit}
}

// modifiers maps the marker's modifier characters to flags.
func (w *walker) modifiers(m *parser.Marker, what string) model.Modifiers {
	var mods model.Modifiers
	for _, c := range m.Modifiers {
		switch c {
		case '@':
			mods |= model.ModRecipe
		case '&':
			mods |= model.ModRef
		case '+':
			mods |= model.ModNew
		case '-':
			mods |= model.ModHidden
		case '?':
			mods |= model.ModOptional
		}
	}
	if mods.Has(model.ModRef) && mods.Has(model.ModNew) {
		w.rep.Warn(m.Span, "%s %q cannot both reference and force a new definition", what, m.Name)
		mods = mods &^ model.ModNew
	}
	return mods
}

// checkRecipeRef invokes the injected checker at most once per distinct
// referenced name.
func (w *walker) checkRecipeRef(m *parser.Marker) {
	if w.Checker == nil {
		return
	}
	res, seen := w.checkedNames[m.Name]
	if !seen {
		res = w.Checker.CheckRecipeRef(m.Name)
		w.checkedNames[m.Name] = res
	}
	if !res.Found {
		w.rep.Hint(m.NameSpan, fmt.Sprintf("referenced recipe %q not found", m.Name), res.Hints...)
	}
}

var temperatureRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(°C|°F|ºC|ºF)`)

// textItems splits temperatures like "180 °C" out of a text run into
// inline quantities, when the temperature extension is enabled.
func (w *walker) textItems(item parser.Item) []model.Item {
	if !w.Extensions.Has(parser.ExtTemperature) || item.Text == "" {
		return []model.Item{{Kind: model.ItemText, Text: item.Text}}
	}
	matches := temperatureRe.FindAllStringSubmatchIndex(item.Text, -1)
	if len(matches) == 0 {
		return []model.Item{{Kind: model.ItemText, Text: item.Text}}
	}

	var out []model.Item
	last := 0
	for _, mt := range matches {
		if mt[0] > last {
			out = append(out, model.Item{Kind: model.ItemText, Text: item.Text[last:mt[0]]})
		}
		num := strings.ReplaceAll(item.Text[mt[2]:mt[3]], ",", ".")
		unit := item.Text[mt[4]:mt[5]]
		q := quantity.Quantity{Value: quantity.ParseValue(num), Unit: unit}
		w.recipe.InlineQuantities = append(w.recipe.InlineQuantities, q)
		out = append(out, model.Item{
			Kind:  model.ItemInlineQuantity,
			Index: len(w.recipe.InlineQuantities) - 1,
		})
		last = mt[1]
	}
	if last < len(item.Text) {
		out = append(out, model.Item{Kind: model.ItemText, Text: item.Text[last:]})
	}
	return out
}
