package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/radio-source-codec/internal/config"
	"github.com/example/radio-source-codec/internal/logging"
	"github.com/example/radio-source-codec/pkg/board"
)

// Version can be set during build time
var Version = "dev"

// app holds the state shared by every subcommand once flags are parsed.
type app struct {
	// Global flags
	configFile string
	boardName  string
	verbose    bool

	cfg      *config.Config
	logger   *zap.Logger
	registry *board.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "srcconv",
		Short: "Convert radio signal-source references to and from their persisted form",
		Long: `srcconv encodes and decodes the source tokens (sticks, switches, trims,
channels, telemetry and so on) stored in radio model and settings files.

Tokens are board specific: the same token may name a different input, or
nothing at all, on another board. Documents written by older firmware may use
legacy spellings, which are recognised based on the document's format version.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "srcconv.yaml", "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&a.boardName, "board", "b", "", "Board to use (overrides configuration)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		a.boardsCmd(),
		a.encodeCmd(),
		a.decodeCmd(),
		a.convertCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

// setup loads configuration, the logger and the board registry.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.boardName != "" {
		cfg.Board = a.boardName
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}

	a.registry, err = loadRegistry(cfg, a.logger)
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "srcconv %s\n", Version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
