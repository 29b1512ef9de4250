package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAssetsDir, EnvOutput, EnvFormat, EnvRenderer, EnvDirection, EnvMode} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "assets", c.AssetsDir)
	assert.Equal(t, "diagram", c.Output)
	assert.Equal(t, []string{"png"}, c.Formats)
	assert.Equal(t, "auto", c.Renderer)
	assert.Equal(t, "LR", c.Direction)
	assert.False(t, c.Dev)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAssetsDir, "/icons")
	t.Setenv(EnvOutput, "out/arch")
	t.Setenv(EnvFormat, "SVG, mermaid")
	t.Setenv(EnvRenderer, "graphviz")
	t.Setenv(EnvDirection, "tb")
	t.Setenv(EnvMode, "dev")

	c, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	assert.Equal(t, Config{
		AssetsDir: "/icons",
		Output:    "out/arch",
		Formats:   []string{"svg", "mermaid"},
		Renderer:  "graphviz",
		Direction: "TB",
		Dev:       true,
	}, c)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"format", func(c *Config) { c.Formats = []string{"png", "pdf"} }, `Config.Formats[1]: invalid value "pdf"`},
		{"no formats", func(c *Config) { c.Formats = nil }, "Config.Formats"},
		{"renderer", func(c *Config) { c.Renderer = "cairo" }, `Config.Renderer: invalid value "cairo" (oneof)`},
		{"direction", func(c *Config) { c.Direction = "XY" }, "Config.Direction"},
		{"assets", func(c *Config) { c.AssetsDir = "" }, "Config.AssetsDir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			assert.ErrorContains(t, err, "invalid config")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	c, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "infra.env")
	require.NoError(t, os.WriteFile(path, []byte("INFRADIAGRAM_FORMAT=dot,excalidraw\nINFRADIAGRAM_RENDERER=command\n"), 0o644))
	// The process environment wins over the file.
	t.Setenv(EnvRenderer, "graphviz")
	t.Cleanup(func() { os.Unsetenv(EnvFormat) })

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dot", "excalidraw"}, c.Formats)
	assert.Equal(t, "graphviz", c.Renderer)
}

func TestLoadInvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDirection, "diagonal")
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.ErrorContains(t, err, "Config.Direction")
}

func TestLoadOverridesWin(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDirection, "TB")
	t.Setenv(EnvAssetsDir, "/from/env")

	c, err := Load(filepath.Join(t.TempDir(), "nope.env"), func(c *Config) {
		c.Direction = "rl"
		c.Renderer = "Command"
	})
	require.NoError(t, err)
	assert.Equal(t, "RL", c.Direction)
	assert.Equal(t, "command", c.Renderer)
	assert.Equal(t, "/from/env", c.AssetsDir)
}

func TestLoadReturnsConfigOnInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMode, "dev")
	c, err := Load(filepath.Join(t.TempDir(), "nope.env"), func(c *Config) { c.Formats = []string{"gif"} })
	assert.ErrorContains(t, err, "Config.Formats[0]")
	assert.True(t, c.Dev)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"png", "svg"}, SplitList(" PNG ,, svg,"))
	assert.Nil(t, SplitList(""))
}
