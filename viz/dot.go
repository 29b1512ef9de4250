package viz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/moviemate/infradiagram/diagram"
)

// --- DOT Generator ---

// Look and feel, matching the defaults of the Python diagrams library so the
// rendered picture stays familiar.
const (
	fontName      = "Sans-Serif"
	fontColor     = "#2D3436"
	edgeColor     = "#7B8894"
	clusterBorder = "#AEB6BE"
)

var clusterBackgrounds = []string{"#E5F5FD", "#EBF3E7", "#ECE8F6", "#FDF7E3"}

type DotGenerator struct{}

func (g *DotGenerator) Generate(graph *diagram.Graph) (string, error) {
	if err := graph.Validate(); err != nil {
		return "", err
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "digraph %s {\n", dotQuote(graph.Name))
	fmt.Fprintf(&b, "  graph [rankdir=%s, pad=\"2.0\", splines=ortho, nodesep=\"0.60\", ranksep=\"0.75\", fontname=%s, fontsize=\"15\", fontcolor=%s",
		graph.Direction, dotQuote(fontName), dotQuote(fontColor))
	if graph.Name != "" {
		fmt.Fprintf(&b, ", label=%s", dotQuote(graph.Name))
	}
	b.WriteString("];\n")
	fmt.Fprintf(&b, "  node [shape=box, style=rounded, fixedsize=true, width=\"1.4\", height=\"1.4\", labelloc=b, imagescale=true, fontname=%s, fontsize=\"13\", fontcolor=%s];\n",
		dotQuote(fontName), dotQuote(fontColor))
	fmt.Fprintf(&b, "  edge [color=%s];\n", dotQuote(edgeColor))

	nodes, clusters := graph.Root().Members()
	writeDotMembers(&b, nodes, clusters, "  ")

	for _, e := range graph.Edges() {
		fmt.Fprintf(&b, "  %s -> %s [%s];\n", dotQuote(e.From), dotQuote(e.To), dotEdgeAttrs(e))
	}
	b.WriteString("}\n")
	return b.String(), nil
}

func writeDotMembers(b *bytes.Buffer, nodes []*diagram.Node, clusters []*diagram.Cluster, indent string) {
	for _, n := range nodes {
		fmt.Fprintf(b, "%s%s [%s];\n", indent, dotQuote(n.ID), dotNodeAttrs(n))
	}
	for _, c := range clusters {
		fmt.Fprintf(b, "%ssubgraph %s {\n", indent, dotQuote(c.ID))
		fmt.Fprintf(b, "%s  graph [label=%s, style=rounded, labeljust=l, pencolor=%s, fontname=%s, fontsize=\"12\", bgcolor=%s];\n",
			indent, dotQuote(c.Label), dotQuote(clusterBorder), dotQuote(fontName), dotQuote(clusterBackground(c.Depth)))
		writeDotMembers(b, c.Nodes, c.Children, indent+"  ")
		fmt.Fprintf(b, "%s}\n", indent)
	}
}

func clusterBackground(depth int) string {
	return clusterBackgrounds[depth%len(clusterBackgrounds)]
}

func dotNodeAttrs(n *diagram.Node) string {
	attrs := []string{"label=" + dotQuote(n.Label)}
	switch n.Kind {
	case diagram.Custom:
		attrs = append(attrs, "image="+dotQuote(n.Icon), "shape=none")
	case diagram.Blank:
		attrs = append(attrs, `style="rounded,dashed"`)
	default:
		info := n.Kind.Info()
		attrs = append(attrs, "shape="+info.Shape, `style="rounded,filled"`, "fillcolor="+dotQuote(info.FillColor))
	}
	return strings.Join(attrs, ", ")
}

func dotEdgeAttrs(e *diagram.Edge) string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, "label="+dotQuote(e.Label))
	}
	if e.Color != "" {
		attrs = append(attrs, "color="+dotQuote(e.Color))
	}
	if e.Style != "" && e.Style != diagram.Solid {
		attrs = append(attrs, "style="+string(e.Style))
	}
	attrs = append(attrs, "dir="+string(e.Dir))
	return strings.Join(attrs, ", ")
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
