package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/pareto-cli/internal/config"
	"github.com/KaramelBytes/pareto-cli/internal/logging"
	"github.com/KaramelBytes/pareto-cli/internal/source"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// HTTP/logging flags (override config if set)
	flagHTTPTimeoutSec int
	flagLogFormat      string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Shared logger, built from cfg in loadConfig
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pareto",
	Short: "Pareto CLI: find the 20% of rows that carry 80% of the value",
	Long: `Pareto ranks the rows of a CSV, text export or XLSX sheet by their numeric
weight, classifies them into High, Medium and Low priority tiers around the
80/20 threshold and prints recommendations for each row. Inputs may be local
files, http(s) URLs or Google Sheets links; the same analysis is available
over HTTP with "pareto serve".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pareto/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP fetch timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text|json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so local commands still work
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("log-format") && flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	logger = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)
}

// settings returns the loaded config, or defaults when none was loaded.
func settings() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return cfgpkg.Default()
}

func cliLogger() *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func newFetcher() *source.Fetcher {
	s := settings()
	return source.NewFetcher(time.Duration(s.HTTPTimeoutSec)*time.Second, s.MaxFetchBytes, cliLogger())
}
