package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/cli"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/matrix"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/report"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/snapshot"
)

var (
	snapshotFile  string
	empresaID     string
	filterProcess string
	filterTier    string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a company's risk matrix and minimum standards",
	Long: `Evaluate classifies the hazard matrix with GTC-45, reviews the minimum
standards and the company classification, and prints a report.

Evaluate a local snapshot (YAML or JSON):
  sgsst evaluate --file ./empresa.yml
  cat empresa.json | sgsst evaluate --file -

Evaluate a company stored in the web app:
  sgsst evaluate --empresa EMP-001`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	addSnapshotFlags(evaluateCmd)
	rootCmd.AddCommand(evaluateCmd)
}

func addSnapshotFlags(c *cobra.Command) {
	c.Flags().StringVar(&snapshotFile, "file", "", "path to a company snapshot (YAML or JSON), - for stdin")
	c.Flags().StringVar(&empresaID, "empresa", "", "company ID to fetch from the backend")
	c.MarkFlagsMutuallyExclusive("file", "empresa")
	c.MarkFlagsOneRequired("file", "empresa")
	c.Flags().StringVar(&filterProcess, "proceso", "", "only review risks of this process ID")
	c.Flags().StringVar(&filterTier, "nivel", "", "only review risks of this tier (I|II|III|IV)")
}

func matrixFilter() (matrix.Filter, error) {
	f := matrix.Filter{ProcessID: filterProcess}
	if filterTier != "" {
		t := interfaces.RiskTier(strings.ToUpper(strings.TrimSpace(filterTier)))
		if t.Rank() == 0 {
			return matrix.Filter{}, fmt.Errorf("unknown risk tier %q", filterTier)
		}
		f.Tier = t
	}
	return f, nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	rpt, err := evaluate(cmd, cfg)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	slog.Debug("report written", "id", rpt.ID, "rating", rpt.Rating)
	return nil
}

// evaluate loads the snapshot, runs the pipeline and writes the report.
func evaluate(cmd *cobra.Command, cfg *cli.Config) (*interfaces.Report, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	slog.Debug("config loaded",
		"compliance.not_applicable", cfg.Compliance.NotApplicable,
		"check.fail_on", cfg.Check.FailOn,
	)

	filter, err := matrixFilter()
	if err != nil {
		return nil, err
	}

	snap, err := loadSnapshot(ctx, cmd, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("snapshot loaded",
		"empresa", snap.Company.ID,
		"riesgos", len(snap.Risks),
		"estandares", len(snap.Standards),
	)

	pipeline, err := newPipeline(cfg, filter)
	if err != nil {
		return nil, err
	}
	rpt, err := pipeline.Run(ctx, snap)
	if err != nil {
		return nil, err
	}

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return nil, err
	}
	defer closeOut()

	if err := report.NewFormatter(outputFormat(cfg)).Format(w, rpt); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	return rpt, nil
}

func loadSnapshot(ctx context.Context, cmd *cobra.Command, cfg *cli.Config) (*interfaces.Snapshot, error) {
	if snapshotFile == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading snapshot from stdin: %w", err)
		}
		return snapshot.NewLoader().Parse(ctx, raw)
	}
	if snapshotFile != "" {
		slog.Info("parsing snapshot file", "path", snapshotFile)
		return snapshot.NewLoader().ParseFile(ctx, snapshotFile)
	}

	client, err := newBackendClient(cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("fetching snapshot from backend", "empresa", empresaID)
	return client.FetchSnapshot(ctx, empresaID)
}
