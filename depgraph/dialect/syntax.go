package dialect

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// commentRows parses src and returns the 0-based rows on which a comment
// node starts. It reports false when the source cannot be parsed.
func commentRows(src []byte, lang *sitter.Language) (map[int]bool, bool) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil || tree == nil {
		return nil, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, false
	}

	rows := make(map[int]bool)
	collectComments(root, rows)
	return rows, true
}

func collectComments(n *sitter.Node, rows map[int]bool) {
	if n.Type() == "comment" {
		rows[int(n.StartPoint().Row)] = true
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil {
			collectComments(child, rows)
		}
	}
}
