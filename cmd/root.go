package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arcanaland/methuselah/internal/config"
)

var (
	logger  = zap.NewNop()
	cfg     *config.Config
	verbose bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "methuselah",
	Short: "Tool for loading and inspecting VTES decks",
	Long: `Methuselah is a command-line tool for loading, validating and inspecting
Vampire: The Eternal Struggle decks.

Decks are read from plain text deck lists ("4x Howler [Crypt]") or from
structured JSON exports resolved against a local card database. When a deck
cannot be loaded the built-in sample deck is shown instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		level := zapcore.WarnLevel
		if cfg.LogLevel != "" {
			if level, err = zapcore.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
		}
		if verbose {
			level = zapcore.DebugLevel
		}

		zapConfig := zap.NewProductionConfig()
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.DisableStacktrace = true
		zapConfig.Level = zap.NewAtomicLevelAt(level)

		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
