package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pareto-cli/internal/parser"
	"github.com/KaramelBytes/pareto-cli/internal/server"
)

var (
	serveAddr    string
	serveTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := settings()
		addr := s.ServerAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		defaults := parser.DefaultOptions()
		defaults.Language = s.Language
		defaults.StrictQuotes = s.StrictQuotes
		defaults.MaxRows = s.MaxRows

		srv := server.New(server.Config{
			Addr:           addr,
			RequestTimeout: time.Duration(serveTimeout) * time.Second,
			MaxBodyBytes:   s.MaxFetchBytes,
			Defaults:       defaults,
		}, newFetcher(), cliLogger())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address (default from config)")
	serveCmd.Flags().IntVar(&serveTimeout, "request-timeout", 60, "per-request timeout in seconds")
}
