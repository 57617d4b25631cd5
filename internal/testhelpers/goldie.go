package testhelpers

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

func newGoldie(t *testing.T, suffix string) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(suffix),
	)
}

// DotGoldie returns a goldie instance for Graphviz output.
func DotGoldie(t *testing.T) *goldie.Goldie {
	return newGoldie(t, ".gold.dot")
}

// MermaidGoldie returns a goldie instance for Mermaid output.
func MermaidGoldie(t *testing.T) *goldie.Goldie {
	return newGoldie(t, ".gold.mmd")
}

// JSONGoldie returns a goldie instance for JSON output.
func JSONGoldie(t *testing.T) *goldie.Goldie {
	return newGoldie(t, ".gold.json")
}

// TextGoldie returns a goldie instance for plain text reports.
func TextGoldie(t *testing.T) *goldie.Goldie {
	return newGoldie(t, ".gold.txt")
}
