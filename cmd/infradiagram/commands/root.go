package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moviemate/infradiagram/config"
	"github.com/moviemate/infradiagram/logging"
	"github.com/spf13/cobra"
)

var (
	envFile      string
	assetsDir    string
	rendererName string
	direction    string
	verbose      bool

	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "infradiagram",
	Short: "Renders the MovieMate infrastructure diagram",
	Long: `infradiagram draws the MovieMate microservices topology: services and
their Dapr sidecars, messaging, observability and the API edge.

Run without arguments it writes diagram.png to the working directory.
Optional icons (openapi.png, otel.png, zipkin.png) are read from the assets
directory; missing ones are drawn as placeholders.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Env file with INFRADIAGRAM_* defaults (optional)")
	rootCmd.PersistentFlags().StringVar(&assetsDir, "assets", "", "Directory holding optional icons (default: INFRADIAGRAM_ASSETS_DIR or ./assets)")
	rootCmd.PersistentFlags().StringVar(&rendererName, "renderer", "", "Image renderer: auto, graphviz or command (default: INFRADIAGRAM_RENDERER or auto)")
	rootCmd.PersistentFlags().StringVar(&direction, "direction", "", "Layout direction: LR, TB, RL or BT (default: INFRADIAGRAM_DIRECTION or LR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	addRenderFlags(rootCmd)
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// loadConfig resolves settings: env file, then environment, then flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	c, err := config.Load(envFile, func(c *config.Config) {
		if flags.Changed("assets") {
			c.AssetsDir = assetsDir
		}
		if flags.Changed("renderer") {
			c.Renderer = rendererName
		}
		if flags.Changed("direction") {
			c.Direction = direction
		}
		// Only commands that render files carry --format; generate has its own -o.
		if flags.Lookup("format") != nil {
			if flags.Changed("output") {
				c.Output = outputBase
			}
			if flags.Changed("format") {
				c.Formats = config.SplitList(formatList)
			}
		}
	})
	logging.Setup(c.Dev || verbose)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}
