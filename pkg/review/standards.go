package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// StandardsStatusCheck flags standards that are not met or not yet assessed.
type StandardsStatusCheck struct{}

// NewStandardsStatusCheck creates the standards status check.
func NewStandardsStatusCheck() *StandardsStatusCheck {
	return &StandardsStatusCheck{}
}

// Name implements Check.
func (c *StandardsStatusCheck) Name() string { return "standards-status" }

// Run implements Check.
func (c *StandardsStatusCheck) Run(ctx context.Context, in *Input) (*interfaces.CheckResult, error) {
	result := &interfaces.CheckResult{CheckName: c.Name()}

	for i, std := range in.Snapshot.Standards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ref := std.Code
		if ref == "" {
			ref = fmt.Sprintf("#%d", i+1)
		}
		f := interfaces.Finding{
			ID:       fmt.Sprintf("%s:%s", c.Name(), ref),
			Check:    c.Name(),
			Category: interfaces.CategoryStandards,
			Subject:  std.Code,
			Metadata: map[string]any{"peso": std.Weight},
		}
		if cycle, ok := compliance.ParseCycle(std.Cycle); ok {
			f.Metadata["ciclo"] = string(cycle)
		}

		switch std.Status.Normalize() {
		case interfaces.StatusNonCompliant:
			f.Severity = interfaces.SeverityHigh
			f.Title = fmt.Sprintf("Estándar %s no cumple: %s", ref, std.Name)
			f.Description = fmt.Sprintf("Se pierden %.2f puntos de peso", std.Weight)
			f.Suggestion = "Abrir un plan de acción para este estándar"
		case interfaces.StatusPending:
			f.Severity = interfaces.SeverityLow
			f.Title = fmt.Sprintf("Estándar %s sin evaluar: %s", ref, std.Name)
			f.Description = "Los estándares pendientes suman al total pero nunca al cumplimiento"
		case interfaces.StatusNotApplicable:
			if strings.TrimSpace(std.Justification) != "" {
				continue
			}
			f.Severity = interfaces.SeverityInfo
			f.Title = fmt.Sprintf("Estándar %s marcado como no aplica sin justificación", ref)
			f.Description = "Documente por qué el estándar no aplica"
		default:
			continue
		}

		result.Findings = append(result.Findings, f)
	}

	return result, nil
}

// ClassificationCheck verifies the company is classified into the right standards set.
type ClassificationCheck struct{}

// NewClassificationCheck creates the classification check.
func NewClassificationCheck() *ClassificationCheck {
	return &ClassificationCheck{}
}

// Name implements Check.
func (c *ClassificationCheck) Name() string { return "classification" }

// Run implements Check.
func (c *ClassificationCheck) Run(ctx context.Context, in *Input) (*interfaces.CheckResult, error) {
	result := &interfaces.CheckResult{CheckName: c.Name()}
	company := in.Snapshot.Company

	finding := func(suffix string, sev interfaces.Severity, title, desc, suggestion string) interfaces.Finding {
		return interfaces.Finding{
			ID:          fmt.Sprintf("%s:%s", c.Name(), suffix),
			Check:       c.Name(),
			Category:    interfaces.CategoryClassification,
			Severity:    sev,
			Subject:     company.ID,
			Title:       title,
			Description: desc,
			Suggestion:  suggestion,
		}
	}

	if compliance.NeedsClassification(company) {
		result.Findings = append(result.Findings, finding("unclassified", interfaces.SeverityHigh,
			"Empresa sin clasificar",
			"Falta el tipo de clasificación o el nivel de riesgo; no se conoce el grupo de estándares aplicable",
			"Ejecute el asistente de clasificación con el número de trabajadores y la clase de riesgo ARL"))
		return result, nil
	}

	expected, ok := compliance.Classify(company.Headcount, company.RiskClass)
	if !ok {
		result.Findings = append(result.Findings, finding("headcount", interfaces.SeverityMedium,
			"Falta el número de trabajadores",
			"La clasificación registrada no se puede verificar sin el número de trabajadores",
			"Actualice el número de trabajadores"))
		return result, nil
	}

	if expected.Type != company.ClassificationType {
		result.Findings = append(result.Findings, finding("bracket", interfaces.SeverityMedium,
			fmt.Sprintf("Empresa clasificada como %s pero aplica %s", company.ClassificationType, expected.Type),
			fmt.Sprintf("%d trabajadores, clase de riesgo %s", company.Headcount, company.RiskClass),
			"Vuelva a ejecutar el asistente de clasificación"))
	}

	if n := len(in.Snapshot.Standards); n > 0 && n != expected.Items {
		result.Findings = append(result.Findings, finding("items", interfaces.SeverityLow,
			fmt.Sprintf("%d estándares cargados, %s espera %d", n, expected.Type, expected.Items),
			"La lista de chequeo no coincide con el grupo de estándares aplicable", ""))
	}

	return result, nil
}
