package viz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/goccy/go-graphviz"
)

// Renderer names accepted by NewRenderer.
const (
	RendererAuto     = "auto"
	RendererGraphviz = "graphviz"
	RendererCommand  = "command"
)

// GraphvizRenderer lays out and rasterizes DOT in-process with the
// WebAssembly build of Graphviz, so no system install is required.
type GraphvizRenderer struct{}

func (r *GraphvizRenderer) Render(ctx context.Context, dot string, format Format, w io.Writer) error {
	if !format.Image() {
		return fmt.Errorf("graphviz cannot render format %q", format)
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("starting graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parsing dot: %w", err)
	}
	defer graph.Close()

	return gv.Render(ctx, graph, graphviz.Format(format), w)
}

// CommandRenderer pipes DOT through an installed `dot` binary.
type CommandRenderer struct {
	// Path to the dot executable, "dot" when empty.
	Path string
}

func (r *CommandRenderer) Render(ctx context.Context, dot string, format Format, w io.Writer) error {
	if !format.Image() {
		return fmt.Errorf("dot cannot render format %q", format)
	}
	bin := r.Path
	if bin == "" {
		bin = "dot"
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-T"+string(format))
	cmd.Stdin = bytes.NewBufferString(dot)
	cmd.Stdout = w
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w: %s", bin, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

// NewRenderer picks a renderer by name. "auto" prefers the host dot binary,
// which runs natively, and falls back to the in-process engine.
func NewRenderer(name string) (Renderer, error) {
	switch name {
	case RendererGraphviz:
		return &GraphvizRenderer{}, nil
	case RendererCommand:
		path, err := exec.LookPath("dot")
		if err != nil {
			return nil, fmt.Errorf("graphviz dot binary not found: %w", err)
		}
		return &CommandRenderer{Path: path}, nil
	case RendererAuto, "":
		if path, err := exec.LookPath("dot"); err == nil {
			slog.Debug("Using host graphviz", "path", path)
			return &CommandRenderer{Path: path}, nil
		}
		slog.Debug("dot not on PATH, using in-process graphviz")
		return &GraphvizRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown renderer %q (want auto, graphviz or command)", name)
}
