package dialect

import (
	"bytes"
	"encoding/json"
	"strings"
)

type notebookDocument struct {
	Cells []notebookCell `json:"cells"`
}

type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

// cellSpan locates one cell inside the concatenated notebook text.
type cellSpan struct {
	start  int
	source string
	code   bool
}

// notebookSource concatenates the source of every cell in a Jupyter notebook.
// It reports false when text is not a notebook document.
func notebookSource(text []byte) ([]byte, []cellSpan, bool) {
	var doc notebookDocument
	if err := json.Unmarshal(text, &doc); err != nil || doc.Cells == nil {
		return nil, nil, false
	}

	var buf bytes.Buffer
	var spans []cellSpan
	row := 0
	for _, cell := range doc.Cells {
		source := cellSource(cell.Source)
		if source == "" {
			continue
		}
		if source[len(source)-1] != '\n' {
			source += "\n"
		}
		spans = append(spans, cellSpan{start: row, source: source, code: cell.CellType == "code"})
		buf.WriteString(source)
		row += strings.Count(source, "\n")
	}
	return buf.Bytes(), spans, true
}

// notebookCommentRows parses each code cell on its own with the cell syntax.
// Rows of other cells, and of code cells that fail to parse, are all allowed.
func notebookCommentRows(spans []cellSpan, cell Dialect) map[int]bool {
	allowed := make(map[int]bool)
	for _, span := range spans {
		if span.code {
			if rows, ok := commentRows([]byte(span.source), cell.Syntax); ok {
				for r := range rows {
					allowed[span.start+r] = true
				}
				continue
			}
		}
		for r := 0; r < strings.Count(span.source, "\n"); r++ {
			allowed[span.start+r] = true
		}
	}
	return allowed
}

// cellSource accepts both encodings nbformat allows: one string or a list of lines.
func cellSource(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return ""
	}
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
	}
	return buf.String()
}
