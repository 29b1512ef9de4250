package diagram

import "fmt"

// Cluster is a labeled box grouping nodes and nested clusters.
type Cluster struct {
	ID       string
	Label    string
	Parent   string // parent cluster ID, empty at top level
	Depth    int    // 0 for top-level clusters
	Nodes    []*Node
	Children []*Cluster
}

// Scope is where new nodes and clusters are added: either the graph root or
// a cluster.
type Scope struct {
	graph   *Graph
	cluster *Cluster

	// top-level content, only used by the root scope
	nodes    []*Node
	children []*Cluster
}

// Cluster opens a nested cluster inside s.
func (s *Scope) Cluster(label string) *Scope {
	g := s.graph
	c := &Cluster{ID: fmt.Sprintf("cluster_%d", len(g.clusters)+1), Label: label}
	if s.cluster != nil {
		c.Parent = s.cluster.ID
		c.Depth = s.cluster.Depth + 1
		s.cluster.Children = append(s.cluster.Children, c)
	} else {
		s.children = append(s.children, c)
	}
	g.clusters = append(g.clusters, c)
	return &Scope{graph: g, cluster: c}
}

// Node adds a node of a built-in kind.
func (s *Scope) Node(kind Kind, label string) *Node {
	return s.graph.addNode(s, kind, label, "")
}

// CustomNode adds a node drawn from an icon file.
func (s *Scope) CustomNode(label, icon string) *Node {
	return s.graph.addNode(s, Custom, label, icon)
}

// Placeholder adds a blank node carrying only a label.
func (s *Scope) Placeholder(label string) *Node {
	return s.graph.addNode(s, Blank, label, "")
}

// Info returns the cluster this scope writes to, nil for the root.
func (s *Scope) Info() *Cluster { return s.cluster }

// Members returns the nodes and clusters directly inside s, in insertion
// order.
func (s *Scope) Members() ([]*Node, []*Cluster) {
	if s.cluster != nil {
		return s.cluster.Nodes, s.cluster.Children
	}
	return s.nodes, s.children
}
