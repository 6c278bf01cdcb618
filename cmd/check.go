package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/cli"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

var failOn string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a company and fail when the rating is not acceptable",
	Long: `Check runs the same evaluation as "evaluate" and exits non-zero when the
overall rating reaches the configured threshold. Use it in scheduled jobs.

Exit code is determined by the fail_on config:
  fail_on: "red"    → exit 1 only on RED rating (default)
  fail_on: "yellow" → exit 1 on YELLOW or RED rating
  fail_on: "never"  → always exit 0`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	addSnapshotFlags(checkCmd)
	checkCmd.Flags().StringVar(&failOn, "fail-on", "", "override check.fail_on (red|yellow|never)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if failOn != "" {
		cfg.Check.FailOn = failOn
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("check: %w", err)
		}
	}

	rpt, err := evaluate(cmd, cfg)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	if shouldFail(cfg.Check.FailOn, rpt.Rating) {
		return fmt.Errorf("check: rating %s (fail_on %s)", rpt.Rating, cfg.Check.FailOn)
	}
	return nil
}

// shouldFail determines if check should exit with a failure code.
func shouldFail(failOn string, rating interfaces.Rating) bool {
	switch failOn {
	case "never":
		return false
	case "yellow":
		return rating == interfaces.RatingRed || rating == interfaces.RatingYellow
	default: // "red"
		return rating == interfaces.RatingRed
	}
}
