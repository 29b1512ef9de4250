package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/moviemate/infradiagram/diagram"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Lists the nodes and edges of the diagram",
	Long: `Describes the MovieMate graph without rendering it: every node with its
kind and cluster, every edge with its label and style, and which optional
icons fell back to placeholders.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")
		return describe(cmd.OutOrStdout(), buildMovieMate().Graph, format)
	},
}

func init() {
	AddCommand(describeCmd)
	describeCmd.Flags().StringP("output", "o", "table", "Output format: table, yaml or json")
}

type nodeView struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Kind        string `json:"kind" yaml:"kind"`
	Cluster     string `json:"cluster,omitempty" yaml:"cluster,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

type edgeView struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Style string `json:"style" yaml:"style"`
	Dir   string `json:"dir" yaml:"dir"`
}

type description struct {
	Summary diagram.Summary `json:"summary" yaml:"summary"`
	Nodes   []nodeView      `json:"nodes" yaml:"nodes"`
	Edges   []edgeView      `json:"edges" yaml:"edges"`
}

func describeGraph(g *diagram.Graph) description {
	clusterLabels := map[string]string{}
	for _, c := range g.Clusters() {
		clusterLabels[c.ID] = c.Label
	}
	d := description{Summary: g.Summary()}
	for _, n := range g.Nodes() {
		d.Nodes = append(d.Nodes, nodeView{
			ID:          n.ID,
			Label:       n.Label,
			Kind:        n.Kind.String(),
			Cluster:     clusterLabels[n.Cluster],
			Icon:        n.Icon,
			Placeholder: n.IsPlaceholder(),
		})
	}
	for _, e := range g.Edges() {
		d.Edges = append(d.Edges, edgeView{
			From:  g.Node(e.From).Label,
			To:    g.Node(e.To).Label,
			Label: e.Label,
			Color: e.Color,
			Style: string(e.Style),
			Dir:   string(e.Dir),
		})
	}
	return d
}

func describe(w io.Writer, g *diagram.Graph, format string) error {
	d := describeGraph(g)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(d)
	case "table", "":
		return describeTable(w, d)
	}
	return fmt.Errorf("unknown output format %q, choose table, yaml or json", format)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func describeTable(w io.Writer, d description) error {
	oneLine := func(s string) string { return strings.ReplaceAll(s, "\n", " ") }

	nodes := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "LABEL", "KIND", "CLUSTER", "ICON")
	for _, n := range d.Nodes {
		icon := n.Icon
		if n.Placeholder {
			icon = "(placeholder)"
		}
		nodes.Row(n.ID, oneLine(n.Label), n.Kind, n.Cluster, icon)
	}

	edges := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("FROM", "TO", "LABEL", "STYLE", "DIR")
	for _, e := range d.Edges {
		edges.Row(oneLine(e.From), oneLine(e.To), e.Label, e.Style, e.Dir)
	}

	s := d.Summary
	_, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n%s\n\n%d nodes, %d edges, %d clusters, %d placeholders\n",
		headerStyle.Render("Nodes"), nodes.Render(),
		headerStyle.Render("Edges"), edges.Render(),
		s.Nodes, s.Edges, s.Clusters, s.Placeholders)
	return err
}
