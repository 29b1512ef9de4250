package viz

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/moviemate/infradiagram/diagram"
)

// DefaultOutput is the base name of emitted files.
const DefaultOutput = "diagram"

// EmitOptions controls which files Emit writes.
type EmitOptions struct {
	// Output is the base path; the format extension is appended unless it is
	// already there.
	Output   string
	Formats  []Format
	Renderer Renderer
}

// OutputPath is the file written for format f.
func OutputPath(base string, f Format) string {
	if base == "" {
		base = DefaultOutput
	}
	if strings.HasSuffix(base, f.Ext()) {
		return base
	}
	return base + f.Ext()
}

// ParseFormats splits a comma separated list like "png,svg".
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		if !knownFormat(f) {
			return nil, fmt.Errorf("unknown format %q", part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no output format given")
	}
	return out, nil
}

func knownFormat(f Format) bool {
	for _, k := range Formats {
		if k == f {
			return true
		}
	}
	return false
}

// Produce returns the bytes of g in format f. Image formats go through r.
func Produce(ctx context.Context, g *diagram.Graph, f Format, r Renderer) ([]byte, error) {
	if f.Image() {
		if r == nil {
			return nil, fmt.Errorf("format %s needs a renderer", f)
		}
		dot, err := (&DotGenerator{}).Generate(g)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := r.Render(ctx, dot, f, &buf); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", f, err)
		}
		return buf.Bytes(), nil
	}
	gen, ok := Generator(f)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", f)
	}
	out, err := gen.Generate(g)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", f, err)
	}
	return []byte(out), nil
}

// Emit writes one file per requested format and returns their paths in the
// order the formats were given. Formats are produced concurrently; the graph
// is only read.
func Emit(ctx context.Context, g *diagram.Graph, opts EmitOptions) ([]string, error) {
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []Format{PNG}
	}
	paths := make([]string, len(formats))
	owner := make(map[string]Format, len(formats))
	for i, f := range formats {
		path := OutputPath(opts.Output, f)
		if prev, dup := owner[path]; dup {
			return nil, fmt.Errorf("formats %s and %s would both write %s", prev, f, path)
		}
		owner[path] = f
		paths[i] = path
	}
	eg, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		path := paths[i]
		eg.Go(func() error {
			data, err := Produce(ctx, g, f, opts.Renderer)
			if err != nil {
				return err
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			slog.Info("Diagram written", "format", f, "path", path, "bytes", len(data))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
