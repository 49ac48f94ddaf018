// Package cmd implements the CLI commands for m3ugen.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tvheadless/m3ugen/internal/config"
	"github.com/tvheadless/m3ugen/internal/observability"
	"github.com/tvheadless/m3ugen/internal/version"
)

// cfgFile holds the config file path from the CLI flag.
var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "m3ugen",
	Short:   "Convert channel lists and Xtream panels into M3U playlists",
	Version: version.Short(),
	Long: `m3ugen builds M3U playlists from channel definitions in a config file,
delimited text channel lists, and live stream listings fetched from
Xtream-Codes panels.

Sources are processed in order into a single playlist file; a failing
panel is logged and skipped so one dead server never loses the rest.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.{json,yaml} in ., /etc/m3ugen, $HOME/.m3ugen)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (text, json)")
}

// loadConfig reads the configuration and builds the logger from it.
// CLI flags override the config file only when explicitly set, keeping
// the priority: flag > env var > config > default.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if rootCmd.PersistentFlags().Changed("log-level") {
		cfg.Logging.Level, _ = rootCmd.PersistentFlags().GetString("log-level")
	}
	if rootCmd.PersistentFlags().Changed("log-format") {
		cfg.Logging.Format, _ = rootCmd.PersistentFlags().GetString("log-format")
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	if cfg.Logging.Level == "warning" {
		cfg.Logging.Level = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := observability.NewLoggerWithWriter(cfg.Logging, os.Stderr)
	observability.SetDefault(logger)

	return cfg, logger, nil
}
