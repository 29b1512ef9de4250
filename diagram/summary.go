package diagram

// Summary is a structural fingerprint of a graph. Two builds from the same
// inputs must produce equal summaries.
type Summary struct {
	Nodes         int      `json:"nodes" yaml:"nodes"`
	Edges         int      `json:"edges" yaml:"edges"`
	Clusters      int      `json:"clusters" yaml:"clusters"`
	Placeholders  int      `json:"placeholders" yaml:"placeholders"`
	NodeLabels    []string `json:"nodeLabels" yaml:"nodeLabels"`
	EdgeLabels    []string `json:"edgeLabels" yaml:"edgeLabels"`
	ClusterLabels []string `json:"clusterLabels" yaml:"clusterLabels"`
}

func (g *Graph) Summary() Summary {
	s := Summary{
		Nodes:    len(g.nodes),
		Edges:    len(g.edges),
		Clusters: len(g.clusters),
	}
	for _, n := range g.nodes {
		s.NodeLabels = append(s.NodeLabels, n.Label)
		if n.IsPlaceholder() {
			s.Placeholders++
		}
	}
	for _, e := range g.edges {
		s.EdgeLabels = append(s.EdgeLabels, e.Label)
	}
	for _, c := range g.clusters {
		s.ClusterLabels = append(s.ClusterLabels, c.Label)
	}
	return s
}
