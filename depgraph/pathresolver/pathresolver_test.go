package pathresolver

import (
	"testing"

	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		fileDir    string
		codePrefix string
		dataPrefix string
		kind       dialect.Kind
		want       string
	}{
		{name: "dataset under data prefix", raw: "x.dta", dataPrefix: "data", kind: dialect.InputDataset, want: "/p/data/x.dta"},
		{name: "output dataset under data prefix", raw: "out/y.dta", dataPrefix: "data", kind: dialect.OutputDataset, want: "/p/data/out/y.dta"},
		{name: "file under code prefix", raw: "load_data.do", codePrefix: "code", dataPrefix: "data", kind: dialect.InputFile, want: "/p/code/load_data.do"},
		{name: "unset prefix is omitted", raw: "x.dta", kind: dialect.InputDataset, want: "/p/x.dta"},
		{name: "backslashes normalized", raw: `raw\funda.dta`, dataPrefix: "data", kind: dialect.InputDataset, want: "/p/data/raw/funda.dta"},
		{name: "posix absolute kept", raw: "/shared/x.dta", dataPrefix: "data", kind: dialect.InputDataset, want: "/shared/x.dta"},
		{name: "windows absolute kept", raw: `C:\a\b.dta`, dataPrefix: "data", kind: dialect.InputDataset, want: "C:/a/b.dta"},
		{name: "dot relative to file", raw: "./tmp.dta", fileDir: "/p/code/sub", dataPrefix: "data", kind: dialect.OutputDataset, want: "/p/code/sub/tmp.dta"},
		{name: "parent relative to file", raw: "../helpers.do", fileDir: "/p/code/sub", codePrefix: "code", kind: dialect.InputFile, want: "/p/code/helpers.do"},
		{name: "redundant elements cleaned", raw: "a//b/../c.dta/", dataPrefix: "data/", kind: dialect.InputDataset, want: "/p/data/a/c.dta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.raw, tt.fileDir, "/p", tt.codePrefix, tt.dataPrefix, tt.kind)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_MatchesScannedFileIdentity(t *testing.T) {
	r := Resolver{ProjectRoot: "/p", CodePrefix: "code", DataPrefix: "data"}

	assert.Equal(t, r.CodePath("sub/analysis.do"), r.Resolve("sub/analysis.do", "/p/code", dialect.InputFile))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a/b", Clean(`.\a\b\`))
	assert.Equal(t, "a/b", Clean("./a/b/"))
	assert.Equal(t, "/", Clean("/"))
	assert.Equal(t, "", Clean("./"))
	assert.Equal(t, "", Clean(""))
}

func TestIsAbs(t *testing.T) {
	assert.True(t, IsAbs("/x"))
	assert.True(t, IsAbs(`D:\x`))
	assert.False(t, IsAbs("x/y"))
	assert.False(t, IsAbs("C:"))
}

func TestRel(t *testing.T) {
	assert.Equal(t, "data/x.dta", Rel("/p", "/p/data/x.dta"))
	assert.Equal(t, ".", Rel("/p", "/p"))
	assert.Equal(t, "/other/x.dta", Rel("/p", "/other/x.dta"))
	assert.Equal(t, "/pp/x.dta", Rel("/p", "/pp/x.dta"))
	assert.Equal(t, "p/x", Rel("/", "/p/x"))
}
