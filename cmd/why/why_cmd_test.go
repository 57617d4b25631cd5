package why

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/datadag/internal/testhelpers"
)

func runWhyCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := testhelpers.WalkthroughProject(t)

	cmd := NewCommand()
	cmd.SetArgs(append([]string{"--root", root, "--code-prefix", "code", "--data-prefix", "data"}, args...))
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	return stdout.String(), err
}

func TestWhyCommand_TextPath(t *testing.T) {
	output, err := runWhyCommand(t, "data/funda.sas7bdat", "code/load_data.do")
	require.NoError(t, err)

	expected := `path from data/funda.sas7bdat to code/load_data.do (3 steps):
  dataset data/funda.sas7bdat is read by file code/data.sas
  file code/data.sas writes dataset data/stata_data.dta
  dataset data/stata_data.dta is read by file code/load_data.do
`
	assert.Equal(t, expected, output)
}

func TestWhyCommand_ReverseDirection(t *testing.T) {
	output, err := runWhyCommand(t, "code/load_data.do", "code/analysis.do")
	require.NoError(t, err)

	expected := `path from code/analysis.do to code/load_data.do (1 step):
  file code/analysis.do runs file code/load_data.do
`
	assert.Equal(t, expected, output)
}

func TestWhyCommand_NoPath(t *testing.T) {
	output, err := runWhyCommand(t, "code/analysis.do", "code/data.sas")
	require.NoError(t, err)

	assert.Equal(t, "No dependency path between code/analysis.do and code/data.sas\n", output)
}

func TestWhyCommand_MermaidFormat(t *testing.T) {
	output, err := runWhyCommand(t, "code/data.sas", "code/load_data.do", "-f", "mermaid")
	require.NoError(t, err)

	expected := strings.Join([]string{
		"flowchart LR",
		`    n0["data.sas"]`,
		`    n1["load_data.do"]`,
		`    n2[("stata_data.dta")]`,
		"",
		"    n0 --> n2",
		"    n2 --> n1",
		"",
		"    classDef scannedFile fill:#2E8B57,stroke:#1B5E3A,color:#FFFFFF",
		"    classDef dataset fill:#D3D3D3,stroke:#999999,color:#000000",
		"    class n0,n1 scannedFile",
		"    class n2 dataset",
	}, "\n") + "\n"
	assert.Equal(t, expected, output)
}

func TestWhyCommand_UnknownNode(t *testing.T) {
	_, err := runWhyCommand(t, "code/missing.do", "code/data.sas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from not found in dependency graph: code/missing.do")
}

func TestWhyCommand_UnknownFormat(t *testing.T) {
	_, err := runWhyCommand(t, "code/data.sas", "code/load_data.do", "-f", "svg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: svg")
}
