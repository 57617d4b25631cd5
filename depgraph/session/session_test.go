package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/datadag/depgraph"
	"github.com/LegacyCodeHQ/datadag/depgraph/scanner"
	"github.com/LegacyCodeHQ/datadag/depgraph/session"
	"github.com/LegacyCodeHQ/datadag/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWalkthrough(t *testing.T) (*session.Session, string) {
	t.Helper()
	root := testhelpers.WalkthroughProject(t)
	s, err := session.Run(context.Background(), scanner.Options{
		ProjectRoot: root,
		CodePrefix:  "code",
		DataPrefix:  "data",
	})
	require.NoError(t, err)
	return s, filepath.ToSlash(root)
}

func cyclicSession() *session.Session {
	return session.New("/p", []depgraph.DependencyRecord{
		{
			FilePath:       "/p/code/B.do",
			Dialect:        "stata",
			InputDatasets:  []string{"/p/data/d1"},
			OutputDatasets: []string{"/p/data/d2"},
		},
		{
			FilePath:       "/p/code/A.do",
			Dialect:        "stata",
			InputDatasets:  []string{"/p/data/d2"},
			OutputDatasets: []string{"/p/data/d1"},
		},
	}, []scanner.Diagnostic{
		{Path: "/p/code/broken.do", Kind: scanner.DiagnosticRead, Err: errors.New("permission denied")},
	})
}

func TestRun_Walkthrough(t *testing.T) {
	s, p := runWalkthrough(t)

	g := s.Graph()
	assert.Len(t, g.Files(), 3)
	assert.Len(t, g.Datasets(), 2)
	assert.False(t, s.HasCycle())
	assert.Equal(t, []string{p + "/data/funda.sas7bdat"}, s.RootDatasets())
	assert.Empty(t, s.MultiProducerDatasets())
	assert.Empty(t, s.Diagnostics())

	record, ok := s.Record(p + "/code/analysis.do")
	require.True(t, ok)
	assert.Len(t, record.InputFiles, 1)
}

func TestSummary_Walkthrough(t *testing.T) {
	s, _ := runWalkthrough(t)

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(s.Summary()))
}

func TestReport_Walkthrough(t *testing.T) {
	s, _ := runWalkthrough(t)

	report, err := s.Report()
	require.NoError(t, err)

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(report))
}

func TestReport_Cyclic(t *testing.T) {
	s := cyclicSession()

	assert.True(t, s.HasCycle())

	report, err := s.Report()
	require.NoError(t, err)

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(report))
}

func TestSummary_IgnoredRecordIsListed(t *testing.T) {
	s := session.New("/p", []depgraph.DependencyRecord{
		{FilePath: "/p/scratch.py", Dialect: "python", OutputDatasets: []string{"/p/tmp.csv"}, Ignored: true},
	}, nil)

	assert.Equal(t, "Python:: scratch.py (ignored)\n"+
		"\tINPUT FILES (found 0):\n"+
		"\tINPUT DATASETS (found 0):\n"+
		"\tOUTPUT DATASETS (found 1):\n"+
		"\t\ttmp.csv\n"+
		"\n"+
		"DAG is acyclic: 0 files, 0 datasets, 0 edges\n", s.Summary())
}

func TestSession_Export(t *testing.T) {
	s, p := runWalkthrough(t)

	export, err := s.Export(depgraph.ExportOptions{})
	require.NoError(t, err)

	assert.Equal(t, p, export.ProjectRoot)
	assert.Len(t, export.Nodes, 5)
	assert.Len(t, export.Edges, 4)
	assert.False(t, export.Cyclic)
}

func TestSession_Lookup(t *testing.T) {
	s := session.New("/p", []depgraph.DependencyRecord{
		{FilePath: "/p/gen.py", Dialect: "python", OutputDatasets: []string{"/p/gen.py"}},
	}, nil)

	assert.Equal(t, []depgraph.Node{
		{Kind: depgraph.FileNode, Path: "/p/gen.py"},
		{Kind: depgraph.DatasetNode, Path: "/p/gen.py"},
	}, s.Lookup("./gen.py"))
	assert.Len(t, s.Lookup("/p/gen.py"), 2)
	assert.Empty(t, s.Lookup("missing.py"))
}
