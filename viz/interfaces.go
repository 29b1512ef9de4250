// Package viz turns a diagram.Graph into something a person can look at:
// Graphviz DOT, Mermaid, SVG and Excalidraw text, and rendered images.
package viz

import (
	"context"
	"io"

	"github.com/moviemate/infradiagram/diagram"
)

// --- Interfaces for Generators ---

// StaticDiagramGenerator creates a textual description of a static
// architecture diagram.
type StaticDiagramGenerator interface {
	Generate(g *diagram.Graph) (string, error)
}

// Renderer lays out DOT source and writes the resulting image.
type Renderer interface {
	Render(ctx context.Context, dot string, format Format, w io.Writer) error
}

// Format is an output format understood by Emit.
type Format string

const (
	PNG        Format = "png"
	JPG        Format = "jpg"
	SVG        Format = "svg" // laid out by Graphviz
	DOT        Format = "dot"
	Mermaid    Format = "mermaid"
	Sketch     Format = "sketch" // built-in grid layout SVG, no Graphviz needed
	Excalidraw Format = "excalidraw"
)

// Formats lists every supported format.
var Formats = []Format{PNG, JPG, SVG, DOT, Mermaid, Sketch, Excalidraw}

// Image reports whether the format goes through a Renderer.
func (f Format) Image() bool {
	return f == PNG || f == JPG || f == SVG
}

// Ext is the file extension written for the format.
func (f Format) Ext() string {
	switch f {
	case Mermaid:
		return ".mmd"
	case Sketch:
		return ".sketch.svg"
	case Excalidraw:
		return ".excalidraw"
	}
	return "." + string(f)
}

// Generator returns the text generator for a non-image format.
func Generator(f Format) (StaticDiagramGenerator, bool) {
	switch f {
	case DOT:
		return &DotGenerator{}, true
	case Mermaid:
		return &MermaidGenerator{}, true
	case Sketch:
		return &SvgGenerator{}, true
	case Excalidraw:
		return &ExcalidrawGenerator{}, true
	}
	return nil, false
}
