// Package report builds evaluation reports and renders them for terminals, JSON and Markdown.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// severityOrder defines the sort priority for findings (critical first).
var severityOrder = map[interfaces.Severity]int{
	interfaces.SeverityCritical: 0,
	interfaces.SeverityHigh:     1,
	interfaces.SeverityMedium:   2,
	interfaces.SeverityLow:      3,
	interfaces.SeverityInfo:     4,
}

// Generator builds reports from a snapshot and its evaluation results.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate produces a Report for the snapshot from the matrix summary, the
// autoevaluation and the review check results.
func (g *Generator) Generate(
	snap *interfaces.Snapshot,
	matrix interfaces.MatrixSummary,
	eval interfaces.Autoevaluation,
	results []*interfaces.CheckResult,
) *interfaces.Report {
	start := g.now()

	findings := collectFindings(results)
	sortFindingsBySeverity(findings)
	counts := countBySeverity(findings)
	rating := Rate(eval, matrix)

	rpt := &interfaces.Report{
		ID:             generateID(),
		Timestamp:      start,
		Rating:         rating,
		Matrix:         matrix,
		Autoevaluation: eval,
		FindingCount:   counts,
		Findings:       findings,
	}
	if snap != nil {
		rpt.Company = snap.Company
		if b, ok := compliance.Classify(snap.Company.Headcount, snap.Company.RiskClass); ok {
			rpt.Bracket = &b
		}
	}
	rpt.Summary = buildSummary(rpt)
	rpt.Duration = time.Since(start)
	return rpt
}

// Rate computes the overall traffic light. Red wins over yellow.
func Rate(eval interfaces.Autoevaluation, matrix interfaces.MatrixSummary) interfaces.Rating {
	switch {
	case eval.Classification == interfaces.ClassificationCritical || matrix.ByTier[interfaces.RiskTierI] > 0:
		return interfaces.RatingRed
	case eval.Classification == interfaces.ClassificationModerate || matrix.ByTier[interfaces.RiskTierII] > 0:
		return interfaces.RatingYellow
	default:
		return interfaces.RatingGreen
	}
}

// collectFindings merges findings from all check results.
func collectFindings(results []*interfaces.CheckResult) []interfaces.Finding {
	all := []interfaces.Finding{}
	for _, r := range results {
		if r == nil || r.Error != nil {
			continue
		}
		all = append(all, r.Findings...)
	}
	return all
}

// sortFindingsBySeverity sorts findings with critical first, info last.
func sortFindingsBySeverity(findings []interfaces.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		oi := severityOrder[findings[i].Severity]
		oj := severityOrder[findings[j].Severity]
		if oi != oj {
			return oi < oj
		}
		return findings[i].ID < findings[j].ID
	})
}

func countBySeverity(findings []interfaces.Finding) map[interfaces.Severity]int {
	counts := make(map[interfaces.Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}

// buildSummary creates a one-line summary of the rating, score and findings.
func buildSummary(rpt *interfaces.Report) string {
	head := fmt.Sprintf("Cumplimiento: %d%% [%s] | Riesgos: %d (%d I, %d II) | Calificación %s",
		rpt.Autoevaluation.Score, ClassificationLabel(rpt.Autoevaluation.Classification),
		rpt.Matrix.Total, rpt.Matrix.ByTier[interfaces.RiskTierI], rpt.Matrix.ByTier[interfaces.RiskTierII],
		rpt.Rating)

	if len(rpt.Findings) == 0 {
		return head + " | sin hallazgos"
	}
	return fmt.Sprintf("%s | %d hallazgos (%s)", head, len(rpt.Findings), formatFindingCounts(rpt.FindingCount))
}

// formatFindingCounts produces a summary like "1 high, 4 medium, 7 low".
func formatFindingCounts(counts map[interfaces.Severity]int) string {
	var parts []string
	for _, sev := range severities {
		if c := counts[sev]; c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, sev))
		}
	}
	return strings.Join(parts, ", ")
}

var severities = []interfaces.Severity{
	interfaces.SeverityCritical,
	interfaces.SeverityHigh,
	interfaces.SeverityMedium,
	interfaces.SeverityLow,
	interfaces.SeverityInfo,
}

// generateID creates a unique report identifier.
func generateID() string {
	return "rpt-" + uuid.NewString()
}
