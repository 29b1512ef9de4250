package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsDirection(t *testing.T) {
	g := New("x", "")
	assert.Equal(t, LeftToRight, g.Direction)
	assert.Empty(t, g.Nodes())
	assert.Empty(t, g.Edges())
	assert.Nil(t, g.Root().Info())
	assert.NoError(t, g.Validate())
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"LR", "TB", "RL", "BT"} {
		d, err := ParseDirection(s)
		require.NoError(t, err)
		assert.Equal(t, Direction(s), d)
	}
	_, err := ParseDirection("lr")
	assert.ErrorContains(t, err, `unknown direction "lr"`)
}

func TestScopesAndIDs(t *testing.T) {
	g := New("", TopToBottom)
	root := g.Root()
	a := root.Node(Users, "A")
	outer := root.Cluster("Outer")
	b := outer.Node(Java, "B")
	inner := outer.Cluster("Inner")
	c := inner.Placeholder("C")
	d := inner.CustomNode("D", "icons/d.png")

	assert.Equal(t, []string{"n1", "n2", "n3", "n4"}, []string{a.ID, b.ID, c.ID, d.ID})
	assert.Equal(t, "", a.Cluster)
	assert.Equal(t, "cluster_1", b.Cluster)
	assert.Equal(t, "cluster_2", c.Cluster)

	oc, ic := outer.Info(), inner.Info()
	assert.Equal(t, 0, oc.Depth)
	assert.Equal(t, "", oc.Parent)
	assert.Equal(t, 1, ic.Depth)
	assert.Equal(t, oc.ID, ic.Parent)
	assert.Equal(t, []*Cluster{ic}, oc.Children)

	nodes, clusters := root.Members()
	assert.Equal(t, []*Node{a}, nodes)
	assert.Equal(t, []*Cluster{oc}, clusters)
	nodes, clusters = inner.Members()
	assert.Equal(t, []*Node{c, d}, nodes)
	assert.Empty(t, clusters)

	assert.Same(t, d, g.Node("n4"))
	assert.Nil(t, g.Node("n5"))
	assert.Equal(t, Custom, d.Kind)
	assert.Equal(t, "icons/d.png", d.Icon)
	assert.Equal(t, []*Node{c}, g.Placeholders())
}

func TestEdges(t *testing.T) {
	g := New("", LeftToRight)
	root := g.Root()
	a, b, c := root.Node(Grafana, "a"), root.Node(Prometheus, "b"), root.Node(Loki, "c")

	fwd := g.Forward(a, b, Attrs{Label: "x", Color: "red", Style: Bold})
	assert.Equal(t, &Edge{From: "n1", To: "n2", Label: "x", Color: "red", Style: Bold, Dir: Forward}, fwd)
	assert.Equal(t, "n1", fwd.Source())
	assert.Equal(t, "n2", fwd.Target())

	back := g.Back(a, b, Attrs{})
	assert.Equal(t, Solid, back.Style)
	assert.Equal(t, "n2", back.Source())
	assert.Equal(t, "n1", back.Target())

	links := g.LinkAll(c, []*Node{a, b}, Attrs{Style: Dotted})
	require.Len(t, links, 2)
	for _, l := range links {
		assert.Equal(t, Undirected, l.Dir)
		assert.Equal(t, Dotted, l.Style)
		assert.Equal(t, "n3", l.From)
	}
	assert.Len(t, g.Edges(), 4)
	assert.NoError(t, g.Validate())
}

func TestValidateReportsEveryBadEdge(t *testing.T) {
	g := New("", LeftToRight)
	a := g.Root().Node(Java, "a")
	ghost := &Node{ID: "ghost"}
	g.Forward(a, ghost, Attrs{Label: "one"})
	g.Forward(ghost, ghost, Attrs{Label: "two"})

	err := g.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, `edge 0 ("one"): unknown target node "ghost"`)
	assert.ErrorContains(t, err, `edge 1 ("two"): unknown source node "ghost"`)
	assert.ErrorContains(t, err, `edge 1 ("two"): unknown target node "ghost"`)

	var joined interface{ Unwrap() []error }
	require.ErrorAs(t, err, &joined)
	assert.Len(t, joined.Unwrap(), 3)
}

func TestSummary(t *testing.T) {
	g := New("", LeftToRight)
	root := g.Root()
	svc := root.Cluster("svc")
	a := svc.Node(Kotlin, "a")
	b := svc.Placeholder("b")
	g.Link(a, b, Attrs{Label: "l"})

	assert.Equal(t, Summary{
		Nodes:         2,
		Edges:         1,
		Clusters:      1,
		Placeholders:  1,
		NodeLabels:    []string{"a", "b"},
		EdgeLabels:    []string{"l"},
		ClusterLabels: []string{"svc"},
	}, g.Summary())
}

func TestKindInfo(t *testing.T) {
	assert.Equal(t, CategoryQueue, Kafka.Info().Category)
	assert.Equal(t, "hexagon", Dapr.Info().Shape)
	assert.Equal(t, Blank.Info(), Kind("mainframe").Info())
	assert.Equal(t, "traefik", Traefik.String())
	assert.True(t, (&Node{Kind: Blank}).IsPlaceholder())
	assert.False(t, (&Node{Kind: Custom}).IsPlaceholder())
}
