package mermaid

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/datadag/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/datadag/depgraph"
)

// Formatter formats exported graphs as Mermaid.js flowcharts.
type Formatter struct{}

var classOrder = []depgraph.NodeClass{
	depgraph.ClassScannedFile,
	depgraph.ClassReferencedFile,
	depgraph.ClassRootDataset,
	depgraph.ClassDataset,
}

var classDefs = map[depgraph.NodeClass]struct{ name, style string }{
	depgraph.ClassScannedFile:    {name: "scannedFile", style: "fill:#2E8B57,stroke:#1B5E3A,color:#FFFFFF"},
	depgraph.ClassReferencedFile: {name: "referencedFile", style: "fill:#FFD700,stroke:#B8860B,color:#000000"},
	depgraph.ClassRootDataset:    {name: "rootDataset", style: "fill:#FFD700,stroke:#B8860B,color:#000000"},
	depgraph.ClassDataset:        {name: "dataset", style: "fill:#D3D3D3,stroke:#999999,color:#000000"},
}

// Format converts the exported graph to Mermaid.js flowchart format.
// Files are drawn as boxes and datasets as cylinders.
func (f *Formatter) Format(e depgraph.Export, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder

	// Add title if label provided
	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	labels := formatters.NodeLabels(e)

	for i, cycle := range e.Cycles {
		parts := make([]string, 0, len(cycle))
		for _, id := range cycle {
			parts = append(parts, labels[id])
		}
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(parts, ", ")))
	}

	// Mermaid node IDs can't have dots or special characters.
	nodeIDs := make(map[string]string, len(e.Nodes))
	membersByClass := make(map[depgraph.NodeClass][]string)
	var cycleNodes []string
	for i, n := range e.Nodes {
		nodeID := fmt.Sprintf("n%d", i)
		nodeIDs[n.ID] = nodeID
		membersByClass[n.Class] = append(membersByClass[n.Class], nodeID)
		if n.InCycle {
			cycleNodes = append(cycleNodes, nodeID)
		}

		label := strings.ReplaceAll(labels[n.ID], "\"", "#quot;")
		if n.Kind == depgraph.DatasetNode.String() {
			sb.WriteString(fmt.Sprintf("    %s[(\"%s\")]\n", nodeID, label))
		} else {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeID, label))
		}
	}

	var cycleEdgeIndices []int
	if len(e.Edges) > 0 {
		sb.WriteString("\n")
	}
	for i, edge := range e.Edges {
		arrow := "-->"
		if edge.Type == depgraph.InlineRuns.String() {
			arrow = "-.->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeIDs[edge.From], arrow, nodeIDs[edge.To]))
		if edge.InCycle {
			cycleEdgeIndices = append(cycleEdgeIndices, i)
		}
	}

	// Mermaid uses classDef for styling and class for applying styles
	var stylesSB strings.Builder
	for _, class := range classOrder {
		if len(membersByClass[class]) > 0 {
			def := classDefs[class]
			stylesSB.WriteString(fmt.Sprintf("    classDef %s %s\n", def.name, def.style))
		}
	}
	for _, class := range classOrder {
		if members := membersByClass[class]; len(members) > 0 {
			stylesSB.WriteString(fmt.Sprintf("    class %s %s\n", strings.Join(members, ","), classDefs[class].name))
		}
	}
	for _, nodeID := range cycleNodes {
		stylesSB.WriteString(fmt.Sprintf("    style %s stroke:#d62728,stroke-width:3px\n", nodeID))
	}
	for _, idx := range cycleEdgeIndices {
		stylesSB.WriteString(fmt.Sprintf("    linkStyle %d stroke:#d62728,stroke-width:3px,stroke-dasharray: 5 5\n", idx))
	}

	if stylesSB.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(stylesSB.String())
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// GenerateURL creates a mermaid.live URL with the diagram embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	payload := map[string]interface{}{
		"code": output,
		"mermaid": map[string]interface{}{
			"theme": "default",
		},
		"autoSync":      true,
		"updateDiagram": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		// Fallback: just return the code URL-encoded
		return fmt.Sprintf("https://mermaid.live/edit#%s", url.PathEscape(output)), true
	}

	encoded := base64.URLEncoding.EncodeToString(jsonBytes)
	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", encoded), true
}
