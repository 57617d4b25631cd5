package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_Notebook_ListSources(t *testing.T) {
	src := `{
 "cells": [
  {
   "cell_type": "markdown",
   "source": ["# Cleaning\n", "Loads the raw extract."]
  },
  {
   "cell_type": "code",
   "source": ["# INPUT_DATASET: raw/funda.csv\n", "# OUTPUT: clean/funda.parquet\n", "df = load()"]
  }
 ],
 "nbformat": 4
}`
	got := Extract([]byte(src), Notebook)

	assert.Equal(t, []Directive{
		{Kind: InputDataset, RawValue: "raw/funda.csv", Line: 3},
		{Kind: OutputDataset, RawValue: "clean/funda.parquet", Line: 4},
	}, got)
}

func TestExtract_Notebook_StringSource(t *testing.T) {
	src := `{"cells": [{"cell_type": "code", "source": "# INPUT_FILE: helpers.py\nimport helpers\n"}]}`

	got := Extract([]byte(src), Notebook)

	assert.Equal(t, []Directive{{Kind: InputFile, RawValue: "helpers.py", Line: 1}}, got)
}

func TestExtract_StataNotebook_UsesBlockRules(t *testing.T) {
	src := `{"cells": [{"cell_type": "code", "source": ["/* INPUT: a.dta */\n", "# INPUT: ignored.dta\n"]}]}`

	got := Extract([]byte(src), StataNotebook)

	assert.Equal(t, []Directive{{Kind: InputDataset, RawValue: "a.dta", Line: 1}}, got)
}

func TestExtract_Notebook_InvalidJSONFallsBackToRawText(t *testing.T) {
	src := "# INPUT: a.csv\nnot json\n"

	got := Extract([]byte(src), Notebook)

	assert.Equal(t, []Directive{{Kind: InputDataset, RawValue: "a.csv", Line: 1}}, got)
}

func TestExtract_Notebook_SkipsHashLinesInsideStrings(t *testing.T) {
	src := `{
 "cells": [
  {
   "cell_type": "markdown",
   "source": ["Don't edit the cell below.\n"]
  },
  {
   "cell_type": "code",
   "source": ["HELP = \"\"\"\n", "# INPUT: not_a_directive.csv\n", "\"\"\"\n", "# OUTPUT: out.csv\n"]
  }
 ]
}`
	got := Extract([]byte(src), Notebook)

	assert.Equal(t, []Directive{{Kind: OutputDataset, RawValue: "out.csv", Line: 5}}, got)
}
