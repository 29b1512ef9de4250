package topology

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/moviemate/infradiagram/diagram"
)

// DefaultAssetsDir is where optional icon files are looked up.
const DefaultAssetsDir = "assets"

// Icon files that are not shipped with the tool. When one is missing the node
// is drawn as a placeholder instead.
const (
	OpenAPIIcon = "openapi.png"
	OTelIcon    = "otel.png"
	ZipkinIcon  = "zipkin.png"
)

// OptionalIcons lists every optional icon file the MovieMate graph uses.
var OptionalIcons = []string{OpenAPIIcon, OTelIcon, ZipkinIcon}

// Assets resolves optional icon files.
type Assets struct {
	Dir string
	fs  fs.FS
}

// NewAssets looks icons up in dir. A missing directory is fine: every icon
// then resolves to a placeholder.
func NewAssets(dir string) *Assets {
	if dir == "" {
		dir = DefaultAssetsDir
	}
	return &Assets{Dir: dir, fs: os.DirFS(dir)}
}

// Lookup returns the path of the named icon and whether it is a usable
// regular file.
func (a *Assets) Lookup(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	info, err := fs.Stat(a.fs, name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return filepath.Join(a.Dir, name), true
}

// iconNode adds a custom node when the icon exists and a placeholder with the
// same label otherwise.
func iconNode(scope *diagram.Scope, assets *Assets, label, icon string) *diagram.Node {
	if path, ok := assets.Lookup(icon); ok {
		return scope.CustomNode(label, path)
	}
	slog.Debug("Icon not found, using placeholder", "label", label, "icon", icon)
	return scope.Placeholder(label)
}

func openAPINode(scope *diagram.Scope, assets *Assets) *diagram.Node {
	return iconNode(scope, assets, "OpenAPI Hub", OpenAPIIcon)
}

func otelNode(scope *diagram.Scope, assets *Assets) *diagram.Node {
	return iconNode(scope, assets, "OTEL Collector", OTelIcon)
}

func zipkinNode(scope *diagram.Scope, assets *Assets) *diagram.Node {
	return iconNode(scope, assets, "Zipkin", ZipkinIcon)
}
