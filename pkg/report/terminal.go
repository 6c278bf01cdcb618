package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// TerminalFormatter writes a color-coded report to a terminal.
type TerminalFormatter struct{}

// NewTerminalFormatter creates a terminal report formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// Format writes the report to the given writer using ANSI colors.
func (f *TerminalFormatter) Format(w io.Writer, report *interfaces.Report) error {
	f.writeHeader(w, report)
	f.writeSummary(w, report)
	f.writeCycles(w, report)
	f.writeFindings(w, report)
	f.writeFooter(w, report)
	return nil
}

func (f *TerminalFormatter) writeHeader(w io.Writer, report *interfaces.Report) {
	fmt.Fprintf(w, "\n%s%s══════════════════════════════════════════%s\n", colorBold, colorCyan, colorReset)
	fmt.Fprintf(w, "%s%s  Evaluación SG-SST: %s%s\n", colorBold, colorCyan, companyName(report.Company), colorReset)
	fmt.Fprintf(w, "%s%s══════════════════════════════════════════%s\n\n", colorBold, colorCyan, colorReset)
}

func (f *TerminalFormatter) writeSummary(w io.Writer, report *interfaces.Report) {
	ev := report.Autoevaluation
	color := ratingColor(report.Rating)

	fmt.Fprintf(w, "  %s%sCalificación: %s%s\n", colorBold, color, report.Rating, colorReset)
	fmt.Fprintf(w, "  Cumplimiento: %d%% [%s] (%d/%d estándares)\n",
		ev.Score, ClassificationLabel(ev.Classification), ev.TotalCompleted, ev.TotalApplicable)
	if ev.ActionRequired != "" {
		fmt.Fprintf(w, "  %s→ %s%s\n", colorCyan, ev.ActionRequired, colorReset)
	}
	if report.Bracket != nil {
		fmt.Fprintf(w, "  Estándares aplicables: %s\n", compliance.BracketLabel(report.Bracket.Type))
	}

	m := report.Matrix
	fmt.Fprintf(w, "  Matriz de riesgos: %d peligros, %d incompletos | I:%d II:%d III:%d IV:%d\n\n",
		m.Total, m.Incomplete,
		m.ByTier[interfaces.RiskTierI], m.ByTier[interfaces.RiskTierII],
		m.ByTier[interfaces.RiskTierIII], m.ByTier[interfaces.RiskTierIV])
}

func (f *TerminalFormatter) writeCycles(w io.Writer, report *interfaces.Report) {
	if len(report.Autoevaluation.Breakdown) == 0 {
		return
	}
	fmt.Fprintf(w, "  %sCiclo PHVA%s\n", colorBold, colorReset)
	for _, cb := range report.Autoevaluation.Breakdown {
		fmt.Fprintf(w, "    %-10s %3d%%  %s(%d/%d)%s\n",
			cb.Cycle, cb.Percentage, colorDim, cb.CompletedStandards, cb.TotalStandards, colorReset)
	}
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) writeFindings(w io.Writer, report *interfaces.Report) {
	if len(report.Findings) == 0 {
		fmt.Fprintf(w, "  %sSin hallazgos%s\n\n", colorGreen, colorReset)
		return
	}

	fmt.Fprintf(w, "  %d hallazgos (%s)\n\n", len(report.Findings), formatFindingCounts(report.FindingCount))

	grouped := groupBySeverity(report.Findings)

	for _, sev := range severities {
		findings, ok := grouped[sev]
		if !ok {
			continue
		}

		color := severityColor(sev)
		label := strings.ToUpper(string(sev))
		fmt.Fprintf(w, "  %s%s── %s (%d) ──%s\n", colorBold, color, label, len(findings), colorReset)

		for _, finding := range findings {
			fmt.Fprintf(w, "    %s[%s]%s %s\n", color, finding.ID, colorReset, finding.Title)
			if finding.Description != "" {
				fmt.Fprintf(w, "      %s\n", finding.Description)
			}
			if finding.Suggestion != "" {
				fmt.Fprintf(w, "      %s→ %s%s\n", colorCyan, finding.Suggestion, colorReset)
			}
			fmt.Fprintln(w)
		}
	}
}

func (f *TerminalFormatter) writeFooter(w io.Writer, report *interfaces.Report) {
	fmt.Fprintf(w, "  %s%s──────────────────────────────────────────%s\n", colorDim, colorCyan, colorReset)
	fmt.Fprintf(w, "  %sReport: %s%s\n", colorDim, report.ID, colorReset)
	fmt.Fprintf(w, "  %sGenerated: %s%s\n\n",
		colorDim, report.Timestamp.Format("2006-01-02 15:04:05"), colorReset)
}

func companyName(c interfaces.Company) string {
	switch {
	case c.Name != "" && c.NIT != "":
		return fmt.Sprintf("%s (NIT %s)", c.Name, c.NIT)
	case c.Name != "":
		return c.Name
	case c.ID != "":
		return c.ID
	default:
		return "empresa sin nombre"
	}
}

// ratingColor returns the ANSI color for a rating.
func ratingColor(r interfaces.Rating) string {
	switch r {
	case interfaces.RatingGreen:
		return colorGreen
	case interfaces.RatingYellow:
		return colorYellow
	case interfaces.RatingRed:
		return colorRed
	default:
		return colorReset
	}
}

// severityColor returns the ANSI color for a severity level.
func severityColor(s interfaces.Severity) string {
	switch s {
	case interfaces.SeverityCritical, interfaces.SeverityHigh:
		return colorRed
	case interfaces.SeverityMedium:
		return colorYellow
	case interfaces.SeverityLow, interfaces.SeverityInfo:
		return colorDim
	default:
		return colorReset
	}
}

// groupBySeverity groups findings by their severity.
func groupBySeverity(findings []interfaces.Finding) map[interfaces.Severity][]interfaces.Finding {
	grouped := make(map[interfaces.Severity][]interfaces.Finding)
	for _, f := range findings {
		grouped[f.Severity] = append(grouped[f.Severity], f)
	}
	return grouped
}
