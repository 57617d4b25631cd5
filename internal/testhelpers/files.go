package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFiles creates files under root. Keys are slash-separated paths
// relative to root.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("os.MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("os.WriteFile() error = %v", err)
		}
	}
}

// WalkthroughProject writes the three-step example pipeline: a SAS step that
// converts the raw extract, a Stata loader and an analysis that runs the loader.
func WalkthroughProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, map[string]string{
		"code/data.sas": `/* INPUT_DATASET: funda.sas7bdat */
/* OUTPUT: stata_data.dta */
proc export data=funda outfile="stata_data.dta"; run;
`,
		"code/load_data.do": `/* INPUT_DATASET: stata_data.dta */
use "stata_data.dta", clear
`,
		"code/analysis.do": `/* INPUT_FILE: load_data.do */
do load_data.do
regress y x
`,
	})
	return root
}
