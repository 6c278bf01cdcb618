// Package cmd implements the sgsst CLI commands using Cobra.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/backend"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/cli"
)

var (
	cfgFile string
	verbose bool
	format  string
	output  string
)

var rootCmd = &cobra.Command{
	Use:   "sgsst",
	Short: "Occupational health and safety management toolkit",
	Long: `sgsst evaluates a company's occupational health and safety management
system (SG-SST) under Colombian regulation.

It scores hazards with the GTC-45 method, rolls up the minimum standards of
Resolución 0312 into a weighted compliance percentage, selects the applicable
standards set for a company, and reports everything as a traffic-light rating.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns any error.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: .sgsst.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format (terminal|json|markdown), overrides output.format")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write output to file instead of stdout")
}

func setupLogging() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

// outputFormat resolves the --format flag against the config file.
func outputFormat(cfg *cli.Config) string {
	if format != "" {
		return format
	}
	return cfg.Output.Format
}

// openOutput returns the command's writer, or the --output file when set.
// The returned close func is always safe to call.
func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	if output == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	file, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

// newBackendClient builds a client from the backend section of the config.
func newBackendClient(cfg *cli.Config) (*backend.Client, error) {
	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("backend.url is not configured (set it in %s or SGSST_BACKEND_URL)", cli.DefaultConfigFile)
	}
	return backend.NewClient(cfg.Backend.URL,
		backend.WithToken(cfg.Backend.Token()),
		backend.WithTimeout(cfg.Backend.Timeout),
	)
}
