package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/cli"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

var (
	classifyWorkers   int
	classifyRiskClass string
	classifySave      bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Select the minimum standards set for a company",
	Long: `Classify proposes the applicable standards set (7, 21 or 60 items) from the
number of workers and the ARL risk class.

  sgsst classify --workers 25 --risk-class II
  sgsst classify --workers 25 --risk-class II --save --empresa EMP-001`,
	Args: cobra.NoArgs,
	RunE: runClassify,
}

type classifyResult struct {
	Complete bool                   `json:"complete"`
	Type     interfaces.BracketType `json:"clasificacion_tipo,omitempty"`
	Items    int                    `json:"items,omitempty"`
	Label    string                 `json:"label,omitempty"`
	Saved    bool                   `json:"saved,omitempty"`
}

func init() {
	classifyCmd.Flags().IntVar(&classifyWorkers, "workers", 0, "number of workers")
	classifyCmd.Flags().StringVar(&classifyRiskClass, "risk-class", "", "ARL risk class (I..V or 1..5)")
	classifyCmd.Flags().BoolVar(&classifySave, "save", false, "store the classification in the backend")
	classifyCmd.Flags().StringVar(&empresaID, "empresa", "", "company ID to update with --save")
	classifyCmd.MarkFlagsRequiredTogether("save", "empresa")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	var class interfaces.RiskClass
	if classifyRiskClass != "" {
		class, err = compliance.ParseRiskClass(classifyRiskClass)
		if err != nil {
			return fmt.Errorf("classify: %w", err)
		}
	}

	res := classifyResult{}
	if b, ok := compliance.Classify(classifyWorkers, class); ok {
		res = classifyResult{
			Complete: true,
			Type:     b.Type,
			Items:    b.Items,
			Label:    compliance.BracketLabel(b.Type),
		}
	}

	if classifySave {
		if !res.Complete {
			return fmt.Errorf("classify: --workers and --risk-class are required to save")
		}
		client, err := newBackendClient(cfg)
		if err != nil {
			return fmt.Errorf("classify: %w", err)
		}
		if err := client.UpdateClassification(cmd.Context(), empresaID, classifyWorkers, class, res.Type); err != nil {
			return fmt.Errorf("classify: %w", err)
		}
		slog.Info("classification saved", "empresa", empresaID, "clasificacion_tipo", res.Type)
		res.Saved = true
	}

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	defer closeOut()

	if outputFormat(cfg) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if !res.Complete {
		fmt.Fprintln(w, "Clasificación incompleta: indique número de trabajadores y nivel de riesgo")
		return nil
	}
	fmt.Fprintf(w, "%s (%d estándares)\n", res.Label, res.Items)
	return nil
}
