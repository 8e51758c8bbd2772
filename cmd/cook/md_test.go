package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pancakesSrc = `>> servings: 4

Mix @flour{200%g} with @milk{300%ml}.

Cook for ~{2%min}.
`

func TestRunMd_RendersMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "pancakes.cook", pancakesSrc)

	var out, errOut bytes.Buffer
	err := RunMd(&out, &errOut, path, 0, "")

	require.NoError(t, err)
	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "# pancakes\n")
	assert.Contains(t, out.String(), "- *200 g* flour\n")
	assert.Contains(t, out.String(), "1. Mix flour with milk.\n")
}

func TestRunMd_ScalesServings(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "pancakes.cook", pancakesSrc)

	var out, errOut bytes.Buffer
	err := RunMd(&out, &errOut, path, 8, "")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "- *400 g* flour\n")
	assert.Contains(t, out.String(), "- *600 ml* milk\n")
}

func TestRunMd_ConvertsSystem(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "pancakes.cook", pancakesSrc)

	var out, errOut bytes.Buffer
	err := RunMd(&out, &errOut, path, 0, "imperial")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "oz* flour\n")
}

func TestRunMd_UnknownSystem(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "pancakes.cook", pancakesSrc)

	var out, errOut bytes.Buffer
	err := RunMd(&out, &errOut, path, 0, "cgs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown unit system "cgs"`)
}

func TestRunMd_DiagnosticsGoToStderr(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "loose.cook", "Fold in @&flour{}.\n")

	var out, errOut bytes.Buffer
	err := RunMd(&out, &errOut, path, 0, "")

	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "undefined ingredient")
	assert.NotContains(t, out.String(), "undefined ingredient")
}

func TestRunMd_ParseFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipe(t, dir, "broken.cook", "Mix @flour{200%g with love.\n")

	var out, errOut bytes.Buffer
	err := RunMd(&out, &errOut, path, 0, "")

	require.Error(t, err)
	assert.Contains(t, errOut.String(), "unterminated quantity")
	assert.Empty(t, out.String())
}
