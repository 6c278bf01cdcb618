package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/cli"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/matrix"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/report"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/scorer"
)

var (
	riskND string
	riskNE string
	riskNC string
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Score a single hazard with GTC-45",
	Long: `Risk computes the probability level (NP = ND x NE) and the risk level
(NR = NP x NC) of one hazard and prints their interpretation.

  sgsst risk --nd 6 --ne 3 --nc 25

Leaving a factor out yields an incomplete assessment.`,
	Args: cobra.NoArgs,
	RunE: runRisk,
}

func init() {
	riskCmd.Flags().StringVar(&riskND, "nd", "", "deficiency level (10, 6, 2, 0)")
	riskCmd.Flags().StringVar(&riskNE, "ne", "", "exposure level (4, 3, 2, 1)")
	riskCmd.Flags().StringVar(&riskNC, "nc", "", "consequence level (100, 60, 25, 10)")
	rootCmd.AddCommand(riskCmd)
}

func runRisk(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("risk: %w", err)
	}

	factors, err := matrix.ParseFactors(interfaces.RawFactors{
		Deficiency:  interfaces.FactorValue(riskND),
		Exposure:    interfaces.FactorValue(riskNE),
		Consequence: interfaces.FactorValue(riskNC),
	})
	if err != nil {
		return fmt.Errorf("risk: %w", err)
	}
	a := scorer.NewCalculator().Compute(factors)

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return fmt.Errorf("risk: %w", err)
	}
	defer closeOut()

	if outputFormat(cfg) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	if !a.Complete() {
		fmt.Fprintln(w, "Evaluación incompleta: seleccione ND, NE y NC")
		return nil
	}
	fmt.Fprintf(w, "NP = %d (%s)\n", a.ProbabilityScore, report.ProbabilityLabel(a.ProbabilityTier))
	fmt.Fprintf(w, "NR = %d (Nivel %s)\n", a.RiskScore, a.RiskTier)
	fmt.Fprintf(w, "Aceptabilidad: %s\n", report.AcceptabilityLabel(a.Acceptability))
	return nil
}
