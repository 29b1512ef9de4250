package commands

import (
	"fmt"
	"os"

	"github.com/moviemate/infradiagram/viz"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <dot|mermaid|sketch|excalidraw>",
	Short: "Prints the diagram source in a text format",
	Long: `Generates a textual representation of the MovieMate diagram without
rendering it. Output goes to stdout unless -o is given.

Formats:
  dot         Graphviz source, can be rendered with 'dot -Tpng'
  mermaid     Mermaid flowchart
  sketch      SVG with a simple grid layout
  excalidraw  Excalidraw scene JSON`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(viz.DOT), string(viz.Mermaid), string(viz.Sketch), string(viz.Excalidraw)},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := viz.Format(args[0])
		gen, ok := viz.Generator(format)
		if !ok {
			return fmt.Errorf("unknown format %q, choose dot, mermaid, sketch or excalidraw", args[0])
		}
		out, err := gen.Generate(buildMovieMate().Graph)
		if err != nil {
			return fmt.Errorf("generating %s diagram: %w", format, err)
		}
		outputFile, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, outputFile, out)
	},
}

func writeOutput(cmd *cobra.Command, outputFile, content string) error {
	if content == "" {
		return nil
	}
	if outputFile == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing diagram to %s: %w", outputFile, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Diagram content written to %s\n", outputFile)
	return nil
}

func init() {
	AddCommand(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}
