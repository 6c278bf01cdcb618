package compliance

import (
	"strings"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// ClassificationBand maps scores >= Min to a classification.
type ClassificationBand struct {
	Min            int
	Classification interfaces.Classification
}

// ClassificationBands interprets the autoevaluation score, highest first.
// Below 60 is critical, 60 to 85 moderately acceptable, above 85 acceptable.
var ClassificationBands = []ClassificationBand{
	{Min: 86, Classification: interfaces.ClassificationAcceptable},
	{Min: 60, Classification: interfaces.ClassificationModerate},
}

var classificationColor = map[interfaces.Classification]string{
	interfaces.ClassificationCritical:   "red",
	interfaces.ClassificationModerate:   "yellow",
	interfaces.ClassificationAcceptable: "green",
}

var classificationAction = map[interfaces.Classification]string{
	interfaces.ClassificationCritical: "Realizar y tener a disposición del Ministerio del Trabajo un Plan de Mejoramiento de inmediato " +
		"y enviar a la ARL un reporte de avances en un término máximo de tres meses.",
	interfaces.ClassificationModerate: "Realizar y tener a disposición del Ministerio del Trabajo un Plan de Mejoramiento " +
		"y enviar a la ARL un reporte de avances en un término máximo de seis meses.",
	interfaces.ClassificationAcceptable: "Mantener la calificación y evidencias a disposición del Ministerio del Trabajo " +
		"e incluir en el Plan de Anual de Trabajo las mejoras detectadas.",
}

// ClassifyScore interprets an autoevaluation percentage.
func ClassifyScore(score int) interfaces.Classification {
	for _, b := range ClassificationBands {
		if score >= b.Min {
			return b.Classification
		}
	}
	return interfaces.ClassificationCritical
}

// ClassificationColor returns the gauge color for a classification.
func ClassificationColor(c interfaces.Classification) string {
	return classificationColor[c]
}

// ParseCycle normalizes a backend cycle label such as "I. PLANEAR" or "hacer".
// ok is false when the label names no PHVA phase.
func ParseCycle(label string) (interfaces.Cycle, bool) {
	s := strings.TrimSpace(label)
	if i := strings.Index(s, "."); i >= 0 {
		s = s[i+1:]
	}
	c := interfaces.Cycle(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range interfaces.Cycles {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Autoevaluate scores a company's standards and breaks the result down by PHVA phase.
func (a *Aggregator) Autoevaluate(items []interfaces.ComplianceItem) interfaces.Autoevaluation {
	result := a.Compute(items)
	class := ClassifyScore(result.Percentage)

	byCycle := make(map[interfaces.Cycle][]interfaces.ComplianceItem)
	var completed, applicable int
	for _, item := range items {
		if a.Counted(item) {
			applicable++
			if a.Satisfied(item) {
				completed++
			}
		}
		if c, ok := ParseCycle(item.Cycle); ok {
			byCycle[c] = append(byCycle[c], item)
		}
	}

	breakdown := make([]interfaces.CycleBreakdown, 0, len(interfaces.Cycles))
	for _, c := range interfaces.Cycles {
		cycleItems := byCycle[c]
		cb := interfaces.CycleBreakdown{
			Cycle:      c,
			Percentage: a.Compute(cycleItems).Percentage,
		}
		for _, item := range cycleItems {
			if a.Counted(item) {
				cb.TotalStandards++
				if a.Satisfied(item) {
					cb.CompletedStandards++
				}
			}
		}
		breakdown = append(breakdown, cb)
	}

	return interfaces.Autoevaluation{
		Score:               result.Percentage,
		Classification:      class,
		ClassificationColor: ClassificationColor(class),
		ActionRequired:      classificationAction[class],
		TotalCompleted:      completed,
		TotalApplicable:     applicable,
		Result:              result,
		Breakdown:           breakdown,
	}
}
