package diagram

// Style is the line style of an edge.
type Style string

const (
	Solid  Style = "solid"
	Dashed Style = "dashed"
	Dotted Style = "dotted"
	Bold   Style = "bold"
)

// EdgeDir says which end of an edge carries the arrowhead.
type EdgeDir string

const (
	Forward    EdgeDir = "forward" // From -> To
	Back       EdgeDir = "back"    // arrow drawn at From
	Undirected EdgeDir = "none"
)

// Attrs are the presentation attributes of an edge.
type Attrs struct {
	Label string
	Color string
	Style Style
}

// Edge is a descriptive association between two nodes.
type Edge struct {
	From  string
	To    string
	Label string
	Color string
	Style Style
	Dir   EdgeDir
}

// Connect adds an edge between two nodes of g.
func (g *Graph) Connect(from, to *Node, dir EdgeDir, a Attrs) *Edge {
	style := a.Style
	if style == "" {
		style = Solid
	}
	e := &Edge{From: from.ID, To: to.ID, Label: a.Label, Color: a.Color, Style: style, Dir: dir}
	g.edges = append(g.edges, e)
	return e
}

// Forward draws from -> to.
func (g *Graph) Forward(from, to *Node, a Attrs) *Edge {
	return g.Connect(from, to, Forward, a)
}

// Back draws an edge between a and b whose arrow points at a, i.e. b feeds a.
func (g *Graph) Back(a, b *Node, attrs Attrs) *Edge {
	return g.Connect(a, b, Back, attrs)
}

// Link draws an undirected association.
func (g *Graph) Link(a, b *Node, attrs Attrs) *Edge {
	return g.Connect(a, b, Undirected, attrs)
}

// LinkAll links a to every node in targets with the same attributes.
func (g *Graph) LinkAll(a *Node, targets []*Node, attrs Attrs) []*Edge {
	out := make([]*Edge, 0, len(targets))
	for _, t := range targets {
		out = append(out, g.Link(a, t, attrs))
	}
	return out
}

// Source returns the node the data flows out of, honoring Back edges.
func (e *Edge) Source() string {
	if e.Dir == Back {
		return e.To
	}
	return e.From
}

// Target is the counterpart of Source.
func (e *Edge) Target() string {
	if e.Dir == Back {
		return e.From
	}
	return e.To
}
