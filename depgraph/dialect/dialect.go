package dialect

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Style selects how a dialect locates comment text.
type Style int

const (
	BlockComment Style = iota
	LinePrefixComment
	NotebookComment
	Manual
)

func (s Style) String() string {
	switch s {
	case BlockComment:
		return "block"
	case LinePrefixComment:
		return "line"
	case NotebookComment:
		return "notebook"
	case Manual:
		return "manual"
	default:
		return "unknown"
	}
}

// Dialect describes the comment syntax of one family of source files.
// It is plain data; all dialects share the matching routine in Extract.
type Dialect struct {
	Name  string
	Label string
	Style Style
	Open  string
	Close string
	// Cell is the dialect applied to the concatenated cells of a notebook.
	Cell *Dialect
	// Syntax, when set, restricts matching to lines that hold a real comment.
	Syntax *sitter.Language
}

// Extract returns the directives found in text.
func (d Dialect) Extract(text []byte) []Directive {
	return Extract(text, d)
}

var pythonCell = Dialect{
	Name:   "python-cell",
	Label:  "Python",
	Style:  LinePrefixComment,
	Open:   "#",
	Syntax: python.GetLanguage(),
}

var stataCell = Dialect{
	Name:  "stata-cell",
	Label: "Stata",
	Style: BlockComment,
	Open:  "/*",
	Close: "*/",
}

var (
	SAS = Dialect{Name: "sas", Label: "SAS", Style: BlockComment, Open: "/*", Close: "*/"}

	Stata = Dialect{Name: "stata", Label: "Stata", Style: BlockComment, Open: "/*", Close: "*/"}

	Python = Dialect{Name: "python", Label: "Python", Style: LinePrefixComment, Open: "#", Syntax: python.GetLanguage()}

	R = Dialect{Name: "r", Label: "R", Style: LinePrefixComment, Open: "#"}

	Latex = Dialect{Name: "latex", Label: "Latex", Style: LinePrefixComment, Open: "%"}

	Notebook = Dialect{Name: "notebook", Label: "Notebook", Style: NotebookComment, Cell: &pythonCell}

	StataNotebook = Dialect{Name: "stata-notebook", Label: "StataNotebook", Style: NotebookComment, Cell: &stataCell}

	ManualSteps = Dialect{Name: "manual", Label: "Manual", Style: Manual}
)

// Builtins returns every built-in dialect, ordered by name.
func Builtins() []Dialect {
	return []Dialect{Latex, ManualSteps, Notebook, Python, R, SAS, Stata, StataNotebook}
}

// ByName looks up a built-in dialect.
func ByName(name string) (Dialect, bool) {
	for _, d := range Builtins() {
		if d.Name == name {
			return d, true
		}
	}
	return Dialect{}, false
}
