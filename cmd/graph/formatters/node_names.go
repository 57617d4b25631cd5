package formatters

import (
	"path"
	"strings"

	"github.com/LegacyCodeHQ/datadag/depgraph"
	"github.com/LegacyCodeHQ/datadag/depgraph/pathresolver"
)

// NodeKey returns a stable identifier for n relative to the project root,
// keeping files and datasets with the same path apart.
func NodeKey(e depgraph.Export, n depgraph.ExportNode) string {
	return n.Kind + ":" + pathresolver.Rel(e.ProjectRoot, n.Path)
}

// NodeKeys maps node IDs to NodeKey values.
func NodeKeys(e depgraph.Export) map[string]string {
	keys := make(map[string]string, len(e.Nodes))
	for _, n := range e.Nodes {
		keys[n.ID] = NodeKey(e, n)
	}
	return keys
}

// NodeLabels returns short, distinct display labels for the nodes of e.
func NodeLabels(e depgraph.Export) map[string]string {
	paths := make([]string, 0, len(e.Nodes))
	seen := make(map[string]bool, len(e.Nodes))
	for _, n := range e.Nodes {
		if !seen[n.Path] {
			seen[n.Path] = true
			paths = append(paths, n.Path)
		}
	}

	names := BuildNodeNames(paths)
	labels := make(map[string]string, len(e.Nodes))
	for _, n := range e.Nodes {
		labels[n.ID] = names[n.Path]
	}
	return labels
}

// BuildNodeNames returns stable, distinct display names for paths.
// Paths that share the same base name are disambiguated by increasing path suffix depth.
func BuildNodeNames(paths []string) map[string]string {
	names := make(map[string]string, len(paths))
	groupedByBase := make(map[string][]string, len(paths))
	for _, p := range paths {
		base := path.Base(p)
		groupedByBase[base] = append(groupedByBase[base], p)
	}

	for base, groupedPaths := range groupedByBase {
		if len(groupedPaths) == 1 {
			names[groupedPaths[0]] = base
			continue
		}

		for depth := 2; ; depth++ {
			suffixCounts := make(map[string]int, len(groupedPaths))
			for _, p := range groupedPaths {
				suffixCounts[pathSuffix(p, depth)]++
			}

			allDistinct := true
			for _, p := range groupedPaths {
				if suffixCounts[pathSuffix(p, depth)] > 1 {
					allDistinct = false
					break
				}
			}
			if !allDistinct && depth < maxDepth(groupedPaths) {
				continue
			}

			for _, p := range groupedPaths {
				names[p] = pathSuffix(p, depth)
			}
			break
		}
	}

	return names
}

func maxDepth(paths []string) int {
	depth := 0
	for _, p := range paths {
		if n := len(splitPath(p)); n > depth {
			depth = n
		}
	}
	return depth
}

func splitPath(p string) []string {
	return strings.Split(strings.TrimPrefix(path.Clean(p), "/"), "/")
}

func pathSuffix(p string, depth int) string {
	parts := splitPath(p)
	if depth > len(parts) {
		depth = len(parts)
	}
	return strings.Join(parts[len(parts)-depth:], "/")
}
