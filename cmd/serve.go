package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/cli"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live-preview scoring API",
	Long: `Serve exposes the GTC-45 calculator, the compliance roll-up and the
classification wizard over HTTP so forms can preview results while editing.

Endpoints:
  POST /api/v1/gtc45/evaluate
  POST /api/v1/compliance/score
  POST /api/v1/compliance/autoevaluation
  POST /api/v1/compliance/bracket
  GET  /health
  GET  /metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides server.addr")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(
		server.WithAggregator(compliance.NewAggregator(compliance.WithNotApplicablePolicy(cfg.Policy()))),
	)
	return srv.Run(ctx, addr)
}
