// Package diagram holds the in-memory description of an architecture diagram:
// nodes grouped into clusters and the labeled edges between them.
//
// A Graph is assembled once by a builder, handed to a generator in package
// viz and then discarded. Nothing in here mutates a node or an edge after it
// has been created.
package diagram

import (
	"errors"
	"fmt"
)

// Direction is the main flow direction of the layout.
type Direction string

const (
	LeftToRight Direction = "LR"
	TopToBottom Direction = "TB"
	RightToLeft Direction = "RL"
	BottomToTop Direction = "BT"
)

// ParseDirection accepts the four Graphviz rankdir values.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case LeftToRight, TopToBottom, RightToLeft, BottomToTop:
		return d, nil
	}
	return "", fmt.Errorf("unknown direction %q (want LR, TB, RL or BT)", s)
}

// Node is a labeled visual element.
type Node struct {
	ID      string
	Label   string
	Kind    Kind
	Icon    string // icon file, only set for Custom nodes
	Cluster string // owning cluster ID, empty at top level
}

// IsPlaceholder reports whether the node stands in for a missing icon.
func (n *Node) IsPlaceholder() bool { return n.Kind == Blank }

// Graph is the full collection of clusters, nodes and edges.
type Graph struct {
	Name      string
	Direction Direction

	root     *Scope
	nodes    []*Node
	edges    []*Edge
	clusters []*Cluster
	byID     map[string]*Node
}

// New creates an empty graph.
func New(name string, dir Direction) *Graph {
	if dir == "" {
		dir = LeftToRight
	}
	g := &Graph{Name: name, Direction: dir, byID: make(map[string]*Node)}
	g.root = &Scope{graph: g}
	return g
}

// Root is the top-level scope; nodes added to it belong to no cluster.
func (g *Graph) Root() *Scope { return g.root }

func (g *Graph) Nodes() []*Node { return g.nodes }
func (g *Graph) Edges() []*Edge { return g.edges }
func (g *Graph) Clusters() []*Cluster { return g.clusters }
func (g *Graph) Node(id string) *Node { return g.byID[id] }
func (g *Graph) Placeholders() []*Node { return g.filter((*Node).IsPlaceholder) }

func (g *Graph) filter(keep func(*Node) bool) (out []*Node) {
	for _, n := range g.nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return
}

func (g *Graph) addNode(scope *Scope, kind Kind, label, icon string) *Node {
	n := &Node{
		ID:    fmt.Sprintf("n%d", len(g.nodes)+1),
		Label: label,
		Kind:  kind,
		Icon:  icon,
	}
	if scope.cluster != nil {
		n.Cluster = scope.cluster.ID
		scope.cluster.Nodes = append(scope.cluster.Nodes, n)
	} else {
		scope.nodes = append(scope.nodes, n)
	}
	g.nodes = append(g.nodes, n)
	g.byID[n.ID] = n
	return n
}

// Validate checks that every edge points at a node of this graph.
func (g *Graph) Validate() error {
	var errs []error
	for i, e := range g.edges {
		if g.byID[e.From] == nil {
			errs = append(errs, fmt.Errorf("edge %d (%q): unknown source node %q", i, e.Label, e.From))
		}
		if g.byID[e.To] == nil {
			errs = append(errs, fmt.Errorf("edge %d (%q): unknown target node %q", i, e.Label, e.To))
		}
	}
	return errors.Join(errs...)
}
