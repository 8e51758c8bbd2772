package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecipe(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunCheck_CleanRecipe(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "pancakes.cook",
		"Mix @flour{200%g} in a #bowl{} for ~{2%min}.\n")

	var buf bytes.Buffer
	err := RunCheck(&buf, path, false, false)

	require.NoError(t, err)
	assert.Equal(t, "pancakes: ok (1 ingredients, 1 cookware, 1 timers)\n", buf.String())
}

func TestRunCheck_WarningsPrintedButPass(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "loose.cook", "Fold in @&flour{}.\n")

	var buf bytes.Buffer
	err := RunCheck(&buf, path, false, false)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "warning: ")
	assert.Contains(t, buf.String(), "undefined ingredient")
	assert.Contains(t, buf.String(), "loose: ok")
}

func TestRunCheck_StrictFailsOnWarnings(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "loose.cook", "Fold in @&flour{}.\n")

	var buf bytes.Buffer
	err := RunCheck(&buf, path, true, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse failed with 1 diagnostics")
	assert.Contains(t, buf.String(), "undefined ingredient")
}

func TestRunCheck_ErrorDiagnosticFails(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "broken.cook", "Mix @flour{200%g with love.\n")

	var buf bytes.Buffer
	err := RunCheck(&buf, path, false, false)

	require.Error(t, err)
	assert.Contains(t, buf.String(), "error: unterminated quantity")
	assert.Contains(t, buf.String(), "  --> "+path+":1:")
}

func TestRunCheck_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := RunCheck(&buf, filepath.Join(t.TempDir(), "nope.cook"), false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.cook")
}

func TestRunCheck_RecipeRefAgainstDirectory(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "dough.cook", "Knead @flour{500%g}.\n")
	path := writeRecipe(t, dir, "pizza.cook", "Prepare @@dough{} and @@duogh{}.\n")

	var buf bytes.Buffer
	err := RunCheck(&buf, path, false, false)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"duogh" not found`)
	assert.NotContains(t, out, `"dough" not found`)
}

func TestDirRefChecker_Hints(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "tomato sauce.cook", "Simmer @tomatoes{400%g}.\n")

	check := dirRefChecker(dir)
	res := check.CheckRecipeRef("sauce")

	assert.False(t, res.Found)
	assert.Equal(t, []string{`did you mean "tomato sauce"?`}, res.Hints)
}

func TestRecipeName(t *testing.T) {
	assert.Equal(t, "pancakes", recipeName("/tmp/recipes/pancakes.cook"))
	assert.Equal(t, "plain", recipeName("plain"))
}
