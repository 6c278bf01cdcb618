package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// MarkdownFormatter writes a report as Markdown for sharing with the SST committee.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a Markdown report formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes the report as Markdown to the given writer.
func (f *MarkdownFormatter) Format(w io.Writer, report *interfaces.Report) error {
	f.writeHeader(w, report)
	f.writeSummaryTable(w, report)
	f.writeCycles(w, report)
	f.writeFindings(w, report)
	f.writeFooter(w, report)
	return nil
}

func (f *MarkdownFormatter) writeHeader(w io.Writer, report *interfaces.Report) {
	fmt.Fprintf(w, "# Evaluación SG-SST: %s %s\n\n", companyName(report.Company), ratingBadge(report.Rating))
}

func (f *MarkdownFormatter) writeSummaryTable(w io.Writer, report *interfaces.Report) {
	ev := report.Autoevaluation
	m := report.Matrix

	fmt.Fprintln(w, "| Indicador | Valor |")
	fmt.Fprintln(w, "|--------|-------|")
	fmt.Fprintf(w, "| **Calificación** | %s %s |\n", report.Rating, ratingBadge(report.Rating))
	fmt.Fprintf(w, "| **Cumplimiento** | %d%% (%s) |\n", ev.Score, ClassificationLabel(ev.Classification))
	fmt.Fprintf(w, "| **Estándares cumplidos** | %d/%d |\n", ev.TotalCompleted, ev.TotalApplicable)
	if report.Bracket != nil {
		fmt.Fprintf(w, "| **Estándares aplicables** | %s |\n", compliance.BracketLabel(report.Bracket.Type))
	}
	fmt.Fprintf(w, "| **Peligros identificados** | %d (%d incompletos) |\n", m.Total, m.Incomplete)
	fmt.Fprintf(w, "| **Nivel de riesgo** | I: %d, II: %d, III: %d, IV: %d |\n",
		m.ByTier[interfaces.RiskTierI], m.ByTier[interfaces.RiskTierII],
		m.ByTier[interfaces.RiskTierIII], m.ByTier[interfaces.RiskTierIV])
	fmt.Fprintf(w, "| **Hallazgos** | %d |\n", len(report.Findings))

	if len(report.FindingCount) > 0 {
		fmt.Fprintf(w, "| **Detalle** | %s |\n", formatFindingCounts(report.FindingCount))
	}

	fmt.Fprintln(w)
	if ev.ActionRequired != "" {
		fmt.Fprintf(w, "> %s\n\n", ev.ActionRequired)
	}
}

func (f *MarkdownFormatter) writeCycles(w io.Writer, report *interfaces.Report) {
	if len(report.Autoevaluation.Breakdown) == 0 {
		return
	}
	fmt.Fprintln(w, "## Ciclo PHVA")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Ciclo | Cumplimiento | Estándares |")
	fmt.Fprintln(w, "|-------|--------------|------------|")
	for _, cb := range report.Autoevaluation.Breakdown {
		fmt.Fprintf(w, "| %s | %d%% | %d/%d |\n", cb.Cycle, cb.Percentage, cb.CompletedStandards, cb.TotalStandards)
	}
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeFindings(w io.Writer, report *interfaces.Report) {
	if len(report.Findings) == 0 {
		fmt.Fprintln(w, "> Sin hallazgos.")
		fmt.Fprintln(w)
		return
	}

	grouped := groupByCategory(report.Findings)

	for _, cat := range []interfaces.Category{
		interfaces.CategoryRisk,
		interfaces.CategoryStandards,
		interfaces.CategoryClassification,
	} {
		findings, ok := grouped[cat]
		if !ok {
			continue
		}

		fmt.Fprintf(w, "## %s (%d)\n\n", categoryTitle(cat), len(findings))

		for _, finding := range findings {
			fmt.Fprintf(w, "<details>\n")
			fmt.Fprintf(w, "<summary><strong>%s</strong> [%s] — <code>%s</code></summary>\n\n",
				finding.Title, strings.ToUpper(string(finding.Severity)), finding.Subject)

			if finding.Description != "" {
				fmt.Fprintf(w, "%s\n\n", finding.Description)
			}
			if finding.Suggestion != "" {
				fmt.Fprintf(w, "**Acción sugerida:** %s\n\n", finding.Suggestion)
			}
			fmt.Fprintf(w, "*Verificación: %s*\n\n", finding.Check)
			fmt.Fprintln(w, "</details>")
			fmt.Fprintln(w)
		}
	}
}

func (f *MarkdownFormatter) writeFooter(w io.Writer, report *interfaces.Report) {
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "*Report ID: %s | Generated: %s*\n",
		report.ID, report.Timestamp.Format("2006-01-02 15:04:05"))
}

// ratingBadge returns a text badge based on the rating.
func ratingBadge(r interfaces.Rating) string {
	switch r {
	case interfaces.RatingGreen:
		return "🟢"
	case interfaces.RatingYellow:
		return "🟡"
	case interfaces.RatingRed:
		return "🔴"
	default:
		return "⚪"
	}
}

// groupByCategory groups findings by their category.
func groupByCategory(findings []interfaces.Finding) map[interfaces.Category][]interfaces.Finding {
	grouped := make(map[interfaces.Category][]interfaces.Finding)
	for _, f := range findings {
		grouped[f.Category] = append(grouped[f.Category], f)
	}
	return grouped
}
