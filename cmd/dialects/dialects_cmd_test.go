package dialects

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/datadag/internal/testhelpers"
)

func TestDialectsCommand_PrintsDialectsAndExtensions(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs([]string{"--root", t.TempDir()})
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	expected := `latex (.tex)
manual (.txt)
notebook (.ipynb)
python (.py)
r (.r)
sas (.sas)
stata (.ado, .do)
stata-notebook (none)
`
	assert.Equal(t, expected, out.String())
}

func TestDialectsCommand_AppliesExtensionOverrides(t *testing.T) {
	root := t.TempDir()
	testhelpers.WriteFiles(t, root, map[string]string{
		"datadag.yaml": "extensions:\n  .txt: \"\"\n  .rmd: r\n  .ipynb: stata-notebook\n",
	})

	cmd := NewCommand()
	cmd.SetArgs([]string{"--root", root})
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "manual (none)\n")
	assert.Contains(t, out.String(), "r (.r, .rmd)\n")
	assert.Contains(t, out.String(), "notebook (none)\n")
	assert.Contains(t, out.String(), "stata-notebook (.ipynb)\n")
}

func TestDialectsCommand_UnknownDialectInSettings(t *testing.T) {
	root := t.TempDir()
	testhelpers.WriteFiles(t, root, map[string]string{
		"datadag.yaml": "extensions:\n  .jl: julia\n",
	})

	cmd := NewCommand()
	cmd.SetArgs([]string{"--root", root})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestDialectsCommand_Verbose(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs([]string{"--root", t.TempDir(), "-v"})
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "sas              block      .sas\n")
	assert.Contains(t, out.String(), "python           line       .py\n")
}
