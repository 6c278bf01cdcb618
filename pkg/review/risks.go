package review

import (
	"context"
	"fmt"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// RiskAcceptabilityCheck flags hazards whose risk tier is not acceptable.
type RiskAcceptabilityCheck struct{}

// NewRiskAcceptabilityCheck creates the risk acceptability check.
func NewRiskAcceptabilityCheck() *RiskAcceptabilityCheck {
	return &RiskAcceptabilityCheck{}
}

// Name implements Check.
func (c *RiskAcceptabilityCheck) Name() string { return "risk-acceptability" }

// Run implements Check. Tier I is critical, tier II high.
func (c *RiskAcceptabilityCheck) Run(ctx context.Context, in *Input) (*interfaces.CheckResult, error) {
	result := &interfaces.CheckResult{CheckName: c.Name()}

	for _, r := range in.Risks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a := r.Assessment
		var sev interfaces.Severity
		var suggestion string
		switch a.RiskTier {
		case interfaces.RiskTierI:
			sev = interfaces.SeverityCritical
			suggestion = "Suspender la actividad hasta controlar el riesgo"
		case interfaces.RiskTierII:
			sev = interfaces.SeverityHigh
			suggestion = "Corregir y adoptar medidas de control de inmediato"
		default:
			continue
		}

		result.Findings = append(result.Findings, interfaces.Finding{
			ID:       fmt.Sprintf("%s:%s", c.Name(), r.Record.ID),
			Check:    c.Name(),
			Category: interfaces.CategoryRisk,
			Severity: sev,
			Subject:  r.Record.ID,
			Title:    fmt.Sprintf("Nivel de riesgo %s: %s", a.RiskTier, r.Record.HazardDescription),
			Description: fmt.Sprintf("Proceso %q, actividad %q: NP=%d NR=%d (%s)",
				r.Record.ProcessID, r.Record.Activity, a.ProbabilityScore, a.RiskScore, a.Acceptability),
			Suggestion: suggestion,
			Metadata: map[string]any{
				"nivel_riesgo":      a.RiskScore,
				"interpretacion_nr": string(a.RiskTier),
			},
		})
	}

	return result, nil
}

const incompleteFactors = "Uno o más factores GTC-45 no están seleccionados"

// RiskCompletenessCheck flags hazards that could not be scored.
type RiskCompletenessCheck struct{}

// NewRiskCompletenessCheck creates the risk completeness check.
func NewRiskCompletenessCheck() *RiskCompletenessCheck {
	return &RiskCompletenessCheck{}
}

// Name implements Check.
func (c *RiskCompletenessCheck) Name() string { return "risk-completeness" }

// Run implements Check.
func (c *RiskCompletenessCheck) Run(ctx context.Context, in *Input) (*interfaces.CheckResult, error) {
	result := &interfaces.CheckResult{CheckName: c.Name()}

	for _, r := range in.Risks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.Assessment.Complete() {
			continue
		}

		desc := incompleteFactors
		if r.ParseError != "" {
			desc = r.ParseError
		}

		result.Findings = append(result.Findings, interfaces.Finding{
			ID:          fmt.Sprintf("%s:%s", c.Name(), r.Record.ID),
			Check:       c.Name(),
			Category:    interfaces.CategoryRisk,
			Severity:    interfaces.SeverityMedium,
			Subject:     r.Record.ID,
			Title:       fmt.Sprintf("El riesgo %s no se puede evaluar", r.Record.ID),
			Description: desc,
			Suggestion:  "Seleccione los niveles de deficiencia, exposición y consecuencia",
		})
	}

	return result, nil
}
