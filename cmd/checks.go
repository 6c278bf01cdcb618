package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/cli"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the review checks and whether they are enabled",
	Long: `Checks lists every built-in review check with its state after applying the
checks section of the config file.`,
	Args: cobra.NoArgs,
	RunE: runChecks,
}

func init() {
	rootCmd.AddCommand(checksCmd)
}

func runChecks(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("checks: %w", err)
	}
	registry, err := newRegistry(cfg)
	if err != nil {
		return fmt.Errorf("checks: %w", err)
	}

	w := cmd.OutOrStdout()
	for _, name := range registry.List() {
		state := "habilitado"
		if !registry.IsEnabled(name) {
			state = "deshabilitado"
		}
		fmt.Fprintf(w, "%-20s %s\n", name, state)
	}
	return nil
}
