package topology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moviemate/infradiagram/diagram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIcons(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("\x89PNG"), 0o644))
	}
}

func labels(nodes []*diagram.Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}

func TestBuildShape(t *testing.T) {
	m := Build(NewAssets(t.TempDir()))
	g := m.Graph

	require.NoError(t, g.Validate())
	s := g.Summary()
	assert.Equal(t, 18, s.Nodes)
	assert.Equal(t, 25, s.Edges)
	assert.Equal(t, 9, s.Clusters)
	assert.Equal(t, diagram.LeftToRight, g.Direction)
	assert.Equal(t, []string{
		"MovieMate Microservices",
		"mm-user-service", "mm-movie-service", "mm-recommendation-service", "mm-activity-service",
		"mm-openapi-hub",
		"Messaging", "Observability", "API Edge",
	}, s.ClusterLabels)

	_, top := g.Root().Members()
	assert.Len(t, top, 4)
	assert.Equal(t, []string{"Java", "Node.js", "Kotlin", "Python"}, labels(m.Services.Languages()))
	for _, svc := range m.Services.All() {
		assert.Equal(t, diagram.Dapr, svc.Dapr.Kind)
		assert.Equal(t, svc.Lang.Cluster, svc.Dapr.Cluster)
	}
}

func TestBuildWithoutIcons(t *testing.T) {
	m := Build(NewAssets(filepath.Join(t.TempDir(), "missing")))

	assert.Equal(t, []string{"OpenAPI Hub", "OTEL Collector", "Zipkin"}, labels(m.Graph.Placeholders()))
	for _, n := range m.OptionalNodes() {
		assert.True(t, n.IsPlaceholder(), n.Label)
		assert.Empty(t, n.Icon)
	}
}

func TestBuildWithIcons(t *testing.T) {
	dir := t.TempDir()
	writeIcons(t, dir, OptionalIcons...)
	m := Build(NewAssets(dir))

	assert.Empty(t, m.Graph.Placeholders())
	want := map[string]string{
		"OpenAPI Hub":    filepath.Join(dir, OpenAPIIcon),
		"OTEL Collector": filepath.Join(dir, OTelIcon),
		"Zipkin":         filepath.Join(dir, ZipkinIcon),
	}
	for _, n := range m.OptionalNodes() {
		assert.Equal(t, diagram.Custom, n.Kind, n.Label)
		assert.Equal(t, want[n.Label], n.Icon)
	}
}

func TestBuildMixedIcons(t *testing.T) {
	dir := t.TempDir()
	writeIcons(t, dir, ZipkinIcon)
	// A directory is not an icon.
	require.NoError(t, os.Mkdir(filepath.Join(dir, OTelIcon), 0o755))

	m := Build(NewAssets(dir))
	assert.True(t, m.Services.OpenAPI.IsPlaceholder())
	assert.True(t, m.Observability.OTel.IsPlaceholder())
	assert.Equal(t, diagram.Custom, m.Observability.Zipkin.Kind)
}

func TestIconsDoNotChangeShape(t *testing.T) {
	with := t.TempDir()
	writeIcons(t, with, OptionalIcons...)

	a := Build(NewAssets(t.TempDir())).Graph.Summary()
	b := Build(NewAssets(with)).Graph.Summary()
	assert.Equal(t, 3, a.Placeholders)
	assert.Equal(t, 0, b.Placeholders)
	a.Placeholders, b.Placeholders = 0, 0
	assert.Equal(t, a, b)
}

func TestBuildIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	first := Build(NewAssets(dir)).Graph
	second := Build(NewAssets(dir)).Graph
	assert.Equal(t, first.Summary(), second.Summary())
	assert.Equal(t, first.Edges(), second.Edges())
}

func TestEdgeSemantics(t *testing.T) {
	m := Build(NewAssets(t.TempDir()))
	g := m.Graph
	find := func(label string) []*diagram.Edge {
		var out []*diagram.Edge
		for _, e := range g.Edges() {
			if e.Label == label {
				out = append(out, e)
			}
		}
		return out
	}

	https := find("HTTPS/REST")
	require.Len(t, https, 1)
	assert.Equal(t, m.User.ID, https[0].From)
	assert.Equal(t, m.APIEdge.Gateway.ID, https[0].To)
	assert.Equal(t, "green", https[0].Color)
	assert.Equal(t, diagram.Bold, https[0].Style)

	consume := find("consume ratings/activity")
	require.Len(t, consume, 1)
	assert.Equal(t, diagram.Back, consume[0].Dir)
	assert.Equal(t, m.Messaging.Kafka.ID, consume[0].Source())
	assert.Equal(t, m.Services.Rec.Dapr.ID, consume[0].Target())

	assert.Len(t, find("Dapr sidecar"), 4)
	assert.Len(t, find("metrics/traces/logs"), 4)
	docs := find("OpenAPI docs")
	require.Len(t, docs, 4)
	for _, e := range docs {
		assert.Equal(t, diagram.Undirected, e.Dir)
		assert.Equal(t, diagram.Dotted, e.Style)
		assert.Equal(t, m.Services.OpenAPI.ID, e.From)
	}

	traces := find("traces")
	require.Len(t, traces, 2)
	assert.Equal(t, diagram.Forward, traces[0].Dir)
	assert.Equal(t, diagram.Back, traces[1].Dir)
	assert.Equal(t, m.Observability.Grafana.ID, traces[1].Target())
}

func TestBuildWithDirection(t *testing.T) {
	g := BuildWithDirection(NewAssets(t.TempDir()), diagram.TopToBottom).Graph
	assert.Equal(t, diagram.TopToBottom, g.Direction)
}

func TestLookup(t *testing.T) {
	var nilAssets *Assets
	_, ok := nilAssets.Lookup(ZipkinIcon)
	assert.False(t, ok)

	assert.Equal(t, DefaultAssetsDir, NewAssets("").Dir)
}
