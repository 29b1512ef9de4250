package viz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/moviemate/infradiagram/diagram"
)

// --- Mermaid Static Generator ---

// MermaidGenerator writes a Mermaid flowchart with one subgraph per cluster.
type MermaidGenerator struct{}

func (g *MermaidGenerator) Generate(graph *diagram.Graph) (string, error) {
	if err := graph.Validate(); err != nil {
		return "", err
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "flowchart %s\n", graph.Direction)
	nodes, clusters := graph.Root().Members()
	writeMermaidMembers(&b, nodes, clusters, "  ")

	var styles []string
	for i, e := range graph.Edges() {
		from, to := e.From, e.To
		if e.Dir == diagram.Back {
			from, to = to, from
		}
		arrow := mermaidArrow(e)
		if e.Label != "" {
			fmt.Fprintf(&b, "  %s %s|%s| %s\n", from, arrow, mermaidQuote(e.Label), to)
		} else {
			fmt.Fprintf(&b, "  %s %s %s\n", from, arrow, to)
		}
		if s := mermaidLinkStyle(e); s != "" {
			styles = append(styles, fmt.Sprintf("  linkStyle %d %s\n", i, s))
		}
	}
	for _, s := range styles {
		b.WriteString(s)
	}

	var placeholders []string
	for _, n := range graph.Placeholders() {
		placeholders = append(placeholders, n.ID)
	}
	if len(placeholders) > 0 {
		b.WriteString("  classDef placeholder fill:#FFFFFF,stroke-dasharray:5 5\n")
		fmt.Fprintf(&b, "  class %s placeholder\n", strings.Join(placeholders, ","))
	}
	return b.String(), nil
}

func writeMermaidMembers(b *bytes.Buffer, nodes []*diagram.Node, clusters []*diagram.Cluster, indent string) {
	for _, n := range nodes {
		fmt.Fprintf(b, "%s%s\n", indent, mermaidNode(n))
	}
	for _, c := range clusters {
		fmt.Fprintf(b, "%ssubgraph %s[%s]\n", indent, c.ID, mermaidQuote(c.Label))
		writeMermaidMembers(b, c.Nodes, c.Children, indent+"  ")
		fmt.Fprintf(b, "%send\n", indent)
	}
}

func mermaidNode(n *diagram.Node) string {
	label := mermaidQuote(n.Label)
	switch n.Kind {
	case diagram.Users:
		return n.ID + "([" + label + "])"
	case diagram.Kafka:
		return n.ID + "[(" + label + ")]"
	case diagram.Dapr:
		return n.ID + "{{" + label + "}}"
	}
	return n.ID + "[" + label + "]"
}

func mermaidArrow(e *diagram.Edge) string {
	directed := e.Dir != diagram.Undirected
	switch e.Style {
	case diagram.Bold:
		if directed {
			return "==>"
		}
		return "==="
	case diagram.Dashed, diagram.Dotted:
		if directed {
			return "-.->"
		}
		return "-.-"
	}
	if directed {
		return "-->"
	}
	return "---"
}

func mermaidLinkStyle(e *diagram.Edge) string {
	var parts []string
	if e.Color != "" {
		parts = append(parts, "stroke:"+e.Color)
	}
	if e.Style == diagram.Dotted {
		parts = append(parts, "stroke-dasharray:2 4")
	}
	return strings.Join(parts, ",")
}

var mermaidEscaper = strings.NewReplacer(`"`, "#quot;", "\n", "<br/>")

func mermaidQuote(s string) string {
	return `"` + mermaidEscaper.Replace(s) + `"`
}
