package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, PrettyHandlerOptions{})).With("component", "viz")

	logger.Info("Diagram written", "path", "diagram.png")
	out := buf.String()
	assert.Contains(t, out, "INFO: Diagram written")
	assert.Contains(t, out, `"component": "viz"`)
	assert.Contains(t, out, `"path": "diagram.png"`)

	buf.Reset()
	slog.New(NewPrettyHandler(&buf, PrettyHandlerOptions{})).Warn("bare")
	assert.Contains(t, buf.String(), "WARN: bare\n")
}

func TestPrettyHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, PrettyHandlerOptions{SlogOpts: slog.HandlerOptions{Level: slog.LevelInfo}})
	logger := slog.New(h)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Setup(true)
	assert.IsType(t, &PrettyHandler{}, slog.Default().Handler())
	Setup(false)
	assert.IsType(t, &slog.TextHandler{}, slog.Default().Handler())
}
