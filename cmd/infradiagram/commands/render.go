package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/moviemate/infradiagram/diagram"
	"github.com/moviemate/infradiagram/topology"
	"github.com/moviemate/infradiagram/viz"
	"github.com/spf13/cobra"
)

var (
	outputBase string
	formatList string

	// newRenderer is swapped out in tests.
	newRenderer = viz.NewRenderer
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders the diagram to one or more files",
	Long: `Builds the MovieMate graph and writes it in every requested format.
Image formats (png, jpg, svg) are laid out by Graphviz, the others are
generated directly:

  png, jpg, svg   Graphviz rendered image
  dot             Graphviz source
  mermaid         Mermaid flowchart (.mmd)
  sketch          Built-in grid layout SVG (.sketch.svg)
  excalidraw      Excalidraw scene (.excalidraw)`,
	Example: `  infradiagram render
  infradiagram render -F png,svg,mermaid -o docs/infra/moviemate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

func init() {
	AddCommand(renderCmd)
	addRenderFlags(renderCmd)
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputBase, "output", "o", viz.DefaultOutput, "Output base path; the format extension is appended")
	cmd.Flags().StringVarP(&formatList, "format", "F", string(viz.PNG), "Comma separated output formats")
}

func runRender(cmd *cobra.Command) error {
	paths, err := renderDiagram(cmd.Context())
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "Diagram written to %s\n", p)
	}
	return nil
}

func renderDiagram(ctx context.Context) ([]string, error) {
	formats, err := viz.ParseFormats(strings.Join(cfg.Formats, ","))
	if err != nil {
		return nil, err
	}
	var renderer viz.Renderer
	for _, f := range formats {
		if f.Image() {
			if renderer, err = newRenderer(cfg.Renderer); err != nil {
				return nil, err
			}
			break
		}
	}
	m := buildMovieMate()
	return viz.Emit(ctx, m.Graph, viz.EmitOptions{
		Output:   cfg.Output,
		Formats:  formats,
		Renderer: renderer,
	})
}

func buildMovieMate() *topology.MovieMate {
	m := topology.BuildWithDirection(topology.NewAssets(cfg.AssetsDir), diagram.Direction(cfg.Direction))
	for _, n := range m.Graph.Placeholders() {
		slog.Info("Optional icon missing, drawing placeholder", "node", n.Label, "assets", cfg.AssetsDir)
	}
	return m
}
