package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/cook"
	"github.com/chriserin/cook/md"
	"github.com/chriserin/cook/model"
	"github.com/chriserin/cook/quantity"
	"github.com/chriserin/cook/report"
)

var mdCmd = &cobra.Command{
	Use:   "md <file>",
	Short: "Render a recipe as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		servings, _ := cmd.Flags().GetInt("servings")
		system, _ := cmd.Flags().GetString("system")
		return RunMd(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], servings, system)
	},
}

func init() {
	mdCmd.Flags().Int("servings", 0, "scale to this serving count")
	mdCmd.Flags().String("system", "", "convert quantities to a unit system (metric or imperial)")
	rootCmd.AddCommand(mdCmd)
}

func RunMd(w, errW io.Writer, path string, servings int, system string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	src := string(content)
	name := recipeName(path)

	recipe, rep, parseErr := cook.Parse(src, name)
	if werr := rep.Write(path, src, false, errW); werr != nil {
		return werr
	}
	if parseErr != nil {
		return fmt.Errorf("%s: parse failed with %d diagnostics", path, rep.Len())
	}

	conv := quantity.Builtin()
	var scaled *model.ScaledRecipe
	if servings > 0 {
		var srep *report.SourceReport
		scaled, srep = recipe.Scale(servings)
		if werr := srep.Write(path, src, false, errW); werr != nil {
			return werr
		}
	} else {
		scaled = recipe.DefaultScale()
	}

	if system != "" {
		sys, ok := quantity.ParseSystem(system)
		if !ok {
			return fmt.Errorf("unknown unit system %q", system)
		}
		crep := scaled.ConvertSystem(sys, conv)
		if werr := crep.Write(path, src, false, errW); werr != nil {
			return werr
		}
	}

	return md.Render(scaled, name, conv, w)
}
