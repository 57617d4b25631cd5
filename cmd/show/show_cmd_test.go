package show

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/datadag/internal/testhelpers"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	cmd.SetArgs(args)
	cmd.SilenceUsage = true

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	return stdout.String(), err
}

func TestShow_Walkthrough(t *testing.T) {
	root := testhelpers.WalkthroughProject(t)

	output, err := runCommand(t, "--root", root, "--code-prefix", "code", "--data-prefix", "data")
	require.NoError(t, err)

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestShow_SummaryOnly(t *testing.T) {
	root := testhelpers.WalkthroughProject(t)

	output, err := runCommand(t, "--root", root, "--code-prefix", "code", "--data-prefix", "data", "--summary")
	require.NoError(t, err)

	assert.Contains(t, output, "DAG is acyclic: 3 files, 2 datasets, 4 edges\n")
	assert.NotContains(t, output, "ROOT DATASETS")
}

func TestShow_StrictFailsOnCycle(t *testing.T) {
	root := t.TempDir()
	testhelpers.WriteFiles(t, root, map[string]string{
		"a.do": "/* INPUT_DATASET: d2 */\n/* OUTPUT: d1 */\n",
		"b.do": "/* INPUT_DATASET: d1 */\n/* OUTPUT: d2 */\n",
	})

	output, err := runCommand(t, "--root", root, "--strict")
	require.ErrorIs(t, err, ErrCyclic)
	assert.Contains(t, output, "CYCLES DETECTED, DAG IS NOT ACYCLIC!")
	assert.Contains(t, output, "CYCLES (found 1):")
}

func TestShow_CycleWithoutStrictSucceeds(t *testing.T) {
	root := t.TempDir()
	testhelpers.WriteFiles(t, root, map[string]string{
		"step.do": "/* INPUT_DATASET: d */\n/* OUTPUT: d */\n",
	})

	output, err := runCommand(t, "--root", root)
	require.NoError(t, err)
	assert.Contains(t, output, "CYCLES DETECTED")
}
