package viz

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/moviemate/infradiagram/diagram"
)

// --- SVG Generator ---

// SvgGenerator draws the graph without Graphviz: every top-level cluster
// becomes one row of boxes, top-level nodes share the first row.
type SvgGenerator struct{}

type svgBox struct{ X, Y, CX, CY float64 }

type svgRow struct {
	label string
	depth int
	nodes []*diagram.Node
}

func (g *SvgGenerator) Generate(graph *diagram.Graph) (string, error) {
	if err := graph.Validate(); err != nil {
		return "", err
	}
	padding := 20.0
	rectWidth := 150.0
	rectHeight := 70.0
	gapX := 60.0
	gapY := 90.0
	rowLabelHeight := 22.0
	fontSize := 14.0
	lineHeight := fontSize * 1.2
	startY := padding + 30

	rootNodes, clusters := graph.Root().Members()
	var rows []svgRow
	if len(rootNodes) > 0 {
		rows = append(rows, svgRow{nodes: rootNodes})
	}
	for _, c := range clusters {
		rows = append(rows, svgRow{label: c.Label, depth: c.Depth, nodes: flattenCluster(c)})
	}

	// First pass: positions and canvas size
	positions := make(map[string]svgBox)
	maxRowWidth := 0.0
	currentY := startY
	for _, row := range rows {
		currentX := padding + 10
		if row.label != "" {
			currentY += rowLabelHeight
		}
		for _, n := range row.nodes {
			positions[n.ID] = svgBox{currentX, currentY, currentX + rectWidth/2, currentY + rectHeight/2}
			currentX += rectWidth + gapX
		}
		maxRowWidth = math.Max(maxRowWidth, currentX-gapX+10)
		currentY += rectHeight + gapY
	}
	canvasWidth := int(math.Max(maxRowWidth+padding, 400))
	canvasHeight := int(currentY - gapY + padding + 10)

	var svg bytes.Buffer
	fmt.Fprintf(&svg, "<svg width=\"%d\" height=\"%d\" xmlns=\"http://www.w3.org/2000/svg\">\n", canvasWidth, canvasHeight)
	svg.WriteString("  <style>\n")
	svg.WriteString("    .node-rect { stroke: #333; stroke-width: 1.5px; }\n")
	svg.WriteString("    .placeholder { stroke-dasharray: 5 5; fill: #ffffff; }\n")
	fmt.Fprintf(&svg, "    .node-text { font-family: Arial, sans-serif; font-size: %.1fpx; fill: %s; text-anchor: middle; }\n", fontSize, fontColor)
	fmt.Fprintf(&svg, "    .edge-label { font-family: Arial, sans-serif; font-size: %.1fpx; fill: #495057; text-anchor: middle; }\n", fontSize*0.8)
	fmt.Fprintf(&svg, "    .row-label { font-family: Arial, sans-serif; font-size: %.1fpx; fill: %s; }\n", fontSize*0.9, fontColor)
	fmt.Fprintf(&svg, "    .diagram-title { font-family: Arial, sans-serif; font-size: %.1fpx; font-weight: bold; text-anchor: middle; }\n", fontSize*1.2)
	svg.WriteString("  </style>\n")
	svg.WriteString("  <defs>\n")
	svg.WriteString("    <marker id=\"arrowhead\" markerWidth=\"10\" markerHeight=\"7\" refX=\"10\" refY=\"3.5\" orient=\"auto-start-reverse\">\n")
	svg.WriteString("      <polygon points=\"0 0, 10 3.5, 0 7\" fill=\"context-stroke\" />\n")
	svg.WriteString("    </marker>\n")
	svg.WriteString("  </defs>\n")
	if graph.Name != "" {
		fmt.Fprintf(&svg, "  <text x=\"%.1f\" y=\"%.1f\" class=\"diagram-title\">%s</text>\n",
			float64(canvasWidth)/2.0, padding+fontSize, html.EscapeString(graph.Name))
	}

	for _, row := range rows {
		if row.label == "" || len(row.nodes) == 0 {
			continue
		}
		first := positions[row.nodes[0].ID]
		last := positions[row.nodes[len(row.nodes)-1].ID]
		x, y := first.X-10, first.Y-rowLabelHeight
		fmt.Fprintf(&svg, "  <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" rx=\"8\" ry=\"8\" fill=\"%s\" stroke=\"%s\" />\n",
			x, y, last.X+rectWidth+10-x, rectHeight+rowLabelHeight+10, clusterBackground(row.depth), clusterBorder)
		fmt.Fprintf(&svg, "  <text x=\"%.1f\" y=\"%.1f\" class=\"row-label\">%s</text>\n", x+8, y+16, html.EscapeString(row.label))
	}

	for _, e := range graph.Edges() {
		writeSvgEdge(&svg, e, positions[e.From], positions[e.To], rectWidth/2, rectHeight/2)
	}

	for _, row := range rows {
		for _, n := range row.nodes {
			pos := positions[n.ID]
			class, fill := "node-rect", n.Kind.Info().FillColor
			if n.IsPlaceholder() {
				class = "node-rect placeholder"
			}
			if n.Kind == diagram.Custom {
				fill = "#ffffff"
			}
			fmt.Fprintf(&svg, "  <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" rx=\"5\" ry=\"5\" class=\"%s\" fill=\"%s\" />\n",
				pos.X, pos.Y, rectWidth, rectHeight, class, fill)
			lines := strings.Split(n.Label, "\n")
			top := pos.CY - lineHeight*float64(len(lines)-1)/2 + fontSize/2.5
			for i, line := range lines {
				fmt.Fprintf(&svg, "  <text x=\"%.1f\" y=\"%.1f\" class=\"node-text\">%s</text>\n",
					pos.CX, top+lineHeight*float64(i), html.EscapeString(line))
			}
		}
	}
	svg.WriteString("</svg>\n")
	return svg.String(), nil
}

func writeSvgEdge(svg *bytes.Buffer, e *diagram.Edge, from, to svgBox, halfW, halfH float64) {
	color := e.Color
	if color == "" {
		color = edgeColor
	}
	width := 1.5
	var extra []string
	switch e.Style {
	case diagram.Bold:
		width = 3
	case diagram.Dashed:
		extra = append(extra, `stroke-dasharray="6 4"`)
	case diagram.Dotted:
		extra = append(extra, `stroke-dasharray="2 4"`)
	}
	switch e.Dir {
	case diagram.Forward:
		extra = append(extra, `marker-end="url(#arrowhead)"`)
	case diagram.Back:
		extra = append(extra, `marker-start="url(#arrowhead)"`)
	}
	dx, dy := to.CX-from.CX, to.CY-from.CY
	x1, y1 := boxExit(from.CX, from.CY, dx, dy, halfW, halfH)
	x2, y2 := boxExit(to.CX, to.CY, -dx, -dy, halfW, halfH)
	fmt.Fprintf(svg, "  <line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"%.1f\" fill=\"none\"",
		x1, y1, x2, y2, html.EscapeString(color), width)
	for _, attr := range extra {
		svg.WriteString(" " + attr)
	}
	svg.WriteString(" />\n")
	if e.Label != "" {
		fmt.Fprintf(svg, "  <text x=\"%.1f\" y=\"%.1f\" class=\"edge-label\">%s</text>\n",
			(from.CX+to.CX)/2, (from.CY+to.CY)/2-5, html.EscapeString(e.Label))
	}
}

// boxExit is the point where a ray from the box center along (dx, dy)
// leaves a box of the given half extents.
func boxExit(cx, cy, dx, dy, halfW, halfH float64) (float64, float64) {
	if dx == 0 && dy == 0 {
		return cx, cy
	}
	t := math.Inf(1)
	if dx != 0 {
		t = halfW / math.Abs(dx)
	}
	if dy != 0 {
		t = math.Min(t, halfH/math.Abs(dy))
	}
	return cx + dx*t, cy + dy*t
}

// flattenCluster lists the nodes of c and all nested clusters, depth first.
func flattenCluster(c *diagram.Cluster) []*diagram.Node {
	out := append([]*diagram.Node(nil), c.Nodes...)
	for _, child := range c.Children {
		out = append(out, flattenCluster(child)...)
	}
	return out
}
