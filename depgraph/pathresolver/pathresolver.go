// Package pathresolver turns directive values into canonical paths.
// Resolution is purely lexical and never touches the filesystem.
package pathresolver

import (
	"path"
	"strings"

	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
)

// Resolver resolves directive values against one project layout.
type Resolver struct {
	ProjectRoot string
	CodePrefix  string
	DataPrefix  string
}

// Resolve resolves raw as a value of the given kind found in a file under fileDir.
func (r Resolver) Resolve(raw, fileDir string, kind dialect.Kind) string {
	return Resolve(raw, fileDir, r.ProjectRoot, r.CodePrefix, r.DataPrefix, kind)
}

// CodePath returns the canonical path of a file given relative to the code root.
func (r Resolver) CodePath(rel string) string {
	return Join(r.ProjectRoot, r.CodePrefix, rel)
}

// Resolve maps a raw directive value to its canonical path.
//
// Absolute values are kept as written apart from separators. Values starting
// with ./ or ../ are relative to fileDir. Other dataset values live under
// projectRoot/dataPrefix and other file values under projectRoot/codePrefix.
func Resolve(raw, fileDir, projectRoot, codePrefix, dataPrefix string, kind dialect.Kind) string {
	if kind == dialect.IgnoreFlag {
		return raw
	}

	p := normalizeSeparators(raw)
	switch {
	case IsAbs(p):
		return p
	case isFileRelative(p):
		return Join(fileDir, p)
	case kind.IsDataset():
		return Join(projectRoot, dataPrefix, p)
	default:
		return Join(projectRoot, codePrefix, p)
	}
}

// IsAbs reports whether p is absolute in either POSIX or Windows form.
func IsAbs(p string) bool {
	p = normalizeSeparators(p)
	if strings.HasPrefix(p, "/") {
		return true
	}
	return len(p) >= 3 && isDriveLetter(p[0]) && p[1] == ':' && p[2] == '/'
}

// Clean normalizes separators and removes redundant elements, including a
// leading ./ and trailing slashes. The empty path stays empty.
func Clean(p string) string {
	p = normalizeSeparators(p)
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return p
}

// Join joins the non-empty parts and cleans the result.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		part = normalizeSeparators(part)
		if part != "" {
			kept = append(kept, part)
		}
	}
	return Clean(path.Join(kept...))
}

// Rel returns p relative to root when p lies under root, and p otherwise.
func Rel(root, p string) string {
	root = Clean(root)
	if root == "" {
		return p
	}
	if p == root {
		return "."
	}
	if root == "/" {
		return strings.TrimPrefix(p, "/")
	}
	if rest, ok := strings.CutPrefix(p, root+"/"); ok {
		return rest
	}
	return p
}

func normalizeSeparators(p string) string {
	return strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
}

func isFileRelative(p string) bool {
	return p == "." || p == ".." || strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../")
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
