package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/cook"
	"github.com/chriserin/cook/analysis"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a recipe and print its diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		noColor, _ := cmd.Flags().GetBool("no-color")
		return RunCheck(cmd.OutOrStdout(), args[0], strict, !noColor)
	},
}

func init() {
	checkCmd.Flags().Bool("strict", false, "treat warnings as errors")
	checkCmd.Flags().Bool("no-color", false, "disable colored output")
	rootCmd.AddCommand(checkCmd)
}

func RunCheck(w io.Writer, path string, strict, color bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	src := string(content)
	name := recipeName(path)

	p := cook.New()
	p.WarningsAsErrors = strict
	p.RefChecker = dirRefChecker(filepath.Dir(path))

	recipe, rep, parseErr := p.Parse(src, name)
	if werr := rep.Write(path, src, color, w); werr != nil {
		return werr
	}
	if parseErr != nil {
		return fmt.Errorf("%s: parse failed with %d diagnostics", path, rep.Len())
	}

	fmt.Fprintf(w, "%s: ok (%d ingredients, %d cookware, %d timers)\n",
		name, len(recipe.Ingredients), len(recipe.Cookware), len(recipe.Timers))
	return nil
}

// recipeName derives the recipe name from the file name.
func recipeName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// dirRefChecker resolves recipe references against .cook files next to
// the parsed recipe, suggesting close names as hints.
func dirRefChecker(dir string) analysis.RecipeRefCheckerFunc {
	return func(name string) analysis.CheckResult {
		if _, err := os.Stat(filepath.Join(dir, name+".cook")); err == nil {
			return analysis.CheckResult{Found: true}
		}
		var hints []string
		entries, err := os.ReadDir(dir)
		if err == nil {
			lower := strings.ToLower(name)
			for _, e := range entries {
				base := strings.TrimSuffix(e.Name(), ".cook")
				if base == e.Name() {
					continue
				}
				if strings.Contains(strings.ToLower(base), lower) {
					hints = append(hints, fmt.Sprintf("did you mean %q?", base))
				}
			}
		}
		return analysis.CheckResult{Found: false, Hints: hints}
	}
}
