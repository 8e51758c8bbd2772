// Package md renders a scaled recipe as Markdown with a YAML
// frontmatter. It consumes the recipe model only; no parsing or
// conversion logic lives here.
package md

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chriserin/cook/model"
	"github.com/chriserin/cook/quantity"
)

// Options customizes the rendered Markdown.
type Options struct {
	// Tags prints a `#tag1 #tag2` line after the title.
	Tags bool
	// Description prints the description as a blockquote.
	Description bool
	// FrontMatterName adds the recipe name to the frontmatter. An
	// explicit `name` metadata key wins over it.
	FrontMatterName bool
}

// DefaultOptions enables everything.
func DefaultOptions() Options {
	return Options{Tags: true, Description: true, FrontMatterName: true}
}

// Render writes the recipe as Markdown with default options.
func Render(r *model.ScaledRecipe, name string, conv *quantity.Converter, w io.Writer) error {
	return RenderWithOptions(r, name, conv, w, DefaultOptions())
}

// RenderWithOptions writes the recipe as Markdown: frontmatter, title,
// grouped ingredient and cookware listings, then numbered steps.
func RenderWithOptions(r *model.ScaledRecipe, name string, conv *quantity.Converter, w io.Writer, opts Options) error {
	if err := frontmatter(w, &r.Metadata, name, opts); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# %s\n", name); err != nil {
		return err
	}

	if opts.Tags && len(r.Metadata.Tags) > 0 {
		tags := make([]string, len(r.Metadata.Tags))
		for i, t := range r.Metadata.Tags {
			tags[i] = "#" + t
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", strings.Join(tags, " ")); err != nil {
			return err
		}
	}
	if opts.Description && r.Metadata.Description != "" {
		if _, err := fmt.Fprintf(w, "\n> %s\n", r.Metadata.Description); err != nil {
			return err
		}
	}

	if err := ingredients(w, r, conv); err != nil {
		return err
	}
	if err := cookware(w, r); err != nil {
		return err
	}
	return sections(w, r)
}

// frontmatter emits the metadata as an ordered YAML mapping between ---
// fences. Typed special keys override the raw entries.
func frontmatter(w io.Writer, m *model.Metadata, name string, opts Options) error {
	keys := m.Keys()
	if len(keys) == 0 {
		return nil
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value any) error {
		k := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		v := &yaml.Node{}
		if err := v.Encode(value); err != nil {
			return err
		}
		doc.Content = append(doc.Content, k, v)
		return nil
	}
	override := func(key string, value any) error {
		k := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		v := &yaml.Node{}
		if err := v.Encode(value); err != nil {
			return err
		}
		for i := 0; i+1 < len(doc.Content); i += 2 {
			if doc.Content[i].Value == key {
				doc.Content[i+1] = v
				return nil
			}
		}
		doc.Content = append(doc.Content, k, v)
		return nil
	}

	if opts.FrontMatterName {
		if err := add("name", name); err != nil {
			return err
		}
	}
	for _, key := range keys {
		raw, _ := m.Get(key)
		if err := override(key, raw); err != nil {
			return err
		}
	}
	if m.Author != nil {
		if err := override("author", m.Author); err != nil {
			return err
		}
	}
	if m.Source != nil {
		if err := override("source", m.Source); err != nil {
			return err
		}
	}
	if m.Time != nil {
		if err := override("time", fmt.Sprintf("%d min", m.Time.Minutes())); err != nil {
			return err
		}
	}
	if len(m.Servings) > 0 {
		if err := override("servings", m.Servings); err != nil {
			return err
		}
	}
	if len(m.Tags) > 0 {
		if err := override("tags", m.Tags); err != nil {
			return err
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "---\n%s---\n\n", out)
	return err
}

func ingredients(w io.Writer, r *model.ScaledRecipe, conv *quantity.Converter) error {
	groups := r.GroupIngredients(conv)
	if len(groups) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n## Ingredients\n"); err != nil {
		return err
	}
	for _, g := range groups {
		ing := &r.Ingredients[g.Index]
		var b strings.Builder
		b.WriteString("- ")
		switch {
		case g.Outcome == model.OutcomeScaled && g.Total != nil:
			fmt.Fprintf(&b, "*%s* ", g.Total)
		case g.Outcome == model.OutcomeError && len(g.Quantities) > 0:
			parts := make([]string, len(g.Quantities))
			for i, q := range g.Quantities {
				parts[i] = q.String()
			}
			fmt.Fprintf(&b, "*%s* ", strings.Join(parts, ", "))
		}
		b.WriteString(ing.DisplayName())
		if ing.Modifiers.IsOptional() {
			b.WriteString(" (optional)")
		}
		if ing.Note != "" {
			fmt.Fprintf(&b, " (%s)", ing.Note)
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func cookware(w io.Writer, r *model.ScaledRecipe) error {
	groups := r.GroupCookware()
	if len(groups) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n## Cookware\n"); err != nil {
		return err
	}
	for _, g := range groups {
		cw := &r.Cookware[g.Index]
		var b strings.Builder
		b.WriteString("- ")
		if g.Total != nil {
			fmt.Fprintf(&b, "*%s* ", g.Total)
		}
		b.WriteString(cw.DisplayName())
		if cw.Modifiers.IsOptional() {
			b.WriteString(" (optional)")
		}
		if cw.Note != "" {
			fmt.Fprintf(&b, " (%s)", cw.Note)
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func sections(w io.Writer, r *model.ScaledRecipe) error {
	if len(r.Sections) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n## Steps\n"); err != nil {
		return err
	}
	for idx, sec := range r.Sections {
		if sec.Named || len(r.Sections) > 1 {
			heading := sec.Name
			if heading == "" {
				heading = fmt.Sprintf("Section %d", idx+1)
			}
			if _, err := fmt.Fprintf(w, "\n### %s\n", heading); err != nil {
				return err
			}
		}
		for _, content := range sec.Content {
			if content.Kind == model.ContentText {
				if _, err := fmt.Fprintf(w, "\n%s\n", content.Text); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "\n%d. %s\n", content.Step.Number, stepText(&content.Step, r)); err != nil {
				return err
			}
		}
	}
	return nil
}

// stepText resolves every item index against the recipe lists.
func stepText(step *model.Step, r *model.ScaledRecipe) string {
	var b strings.Builder
	for _, item := range step.Items {
		switch item.Kind {
		case model.ItemText:
			b.WriteString(item.Text)
		case model.ItemIngredient:
			b.WriteString(r.Ingredients[item.Index].DisplayName())
		case model.ItemCookware:
			b.WriteString(r.Cookware[item.Index].DisplayName())
		case model.ItemTimer:
			t := &r.Timers[item.Index]
			if t.Name != "" {
				fmt.Fprintf(&b, "(%s) ", t.Name)
			}
			if t.Quantity != nil {
				b.WriteString(t.Quantity.String())
			}
		case model.ItemInlineQuantity:
			b.WriteString(r.InlineQuantities[item.Index].String())
		}
	}
	return b.String()
}
