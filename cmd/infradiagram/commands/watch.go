package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-renders the diagram whenever the assets directory changes",
	Long: `Renders once, then watches the assets directory and renders again after
icons are added, replaced or removed. Stops on Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debounce, _ := cmd.Flags().GetDuration("debounce")
		return watchAssets(cmd.Context(), cfg.AssetsDir, debounce, func() error {
			return runRender(cmd)
		})
	},
}

func init() {
	AddCommand(watchCmd)
	addRenderFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", 250*time.Millisecond, "Quiet period before re-rendering")
}

// watchAssets calls render once, then again each time the assets directory
// has been quiet for debounce after a change. It returns when ctx is done.
func watchAssets(ctx context.Context, assetsDir string, debounce time.Duration, render func() error) error {
	assets, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watching the parent notices the assets directory being created or removed.
	if err := watcher.Add(filepath.Dir(assets)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(assets), err)
	}
	if info, err := os.Stat(assets); err == nil && info.IsDir() {
		if err := watcher.Add(assets); err != nil {
			return fmt.Errorf("watching %s: %w", assets, err)
		}
	}

	rerender := func() {
		if err := render(); err != nil {
			slog.Error("Render failed", "error", err)
		}
	}
	rerender()
	slog.Info("Watching for icon changes", "assets", assets)

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != assets && !strings.HasPrefix(ev.Name, assets+string(filepath.Separator)) {
				continue
			}
			if ev.Name == assets && ev.Has(fsnotify.Create) {
				if err := watcher.Add(assets); err != nil {
					slog.Warn("Could not watch assets directory", "error", err)
				}
			}
			slog.Debug("Assets changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		case <-timer.C:
			rerender()
		}
	}
}
