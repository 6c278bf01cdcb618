package report

import "github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"

// Display labels. The scoring packages keep stable identifiers; only reports
// are localized.

var probabilityLabels = map[interfaces.ProbabilityTier]string{
	interfaces.ProbabilityVeryHigh: "Muy Alto",
	interfaces.ProbabilityHigh:     "Alto",
	interfaces.ProbabilityMedium:   "Medio",
	interfaces.ProbabilityLow:      "Bajo",
}

var acceptabilityLabels = map[interfaces.Acceptability]string{
	interfaces.NotAcceptable:                        "No Aceptable",
	interfaces.NotAcceptableOrAcceptableWithControl: "No Aceptable o Aceptable con Control Específico",
	interfaces.Improvable:                           "Mejorable",
	interfaces.Acceptable:                           "Aceptable",
}

var classificationLabels = map[interfaces.Classification]string{
	interfaces.ClassificationCritical:   "Crítico",
	interfaces.ClassificationModerate:   "Moderadamente Aceptable",
	interfaces.ClassificationAcceptable: "Aceptable",
}

// ProbabilityLabel returns the Spanish label for a probability tier.
func ProbabilityLabel(t interfaces.ProbabilityTier) string {
	return labelOr(probabilityLabels, t)
}

// AcceptabilityLabel returns the Spanish label for an acceptability verdict.
func AcceptabilityLabel(a interfaces.Acceptability) string {
	return labelOr(acceptabilityLabels, a)
}

// ClassificationLabel returns the Spanish label for an autoevaluation classification.
func ClassificationLabel(c interfaces.Classification) string {
	return labelOr(classificationLabels, c)
}

// categoryTitle returns a human-readable title for a category.
func categoryTitle(c interfaces.Category) string {
	switch c {
	case interfaces.CategoryRisk:
		return "Matriz de Riesgos"
	case interfaces.CategoryStandards:
		return "Estándares Mínimos"
	case interfaces.CategoryClassification:
		return "Clasificación"
	default:
		return string(c)
	}
}

func labelOr[K ~string](m map[K]string, k K) string {
	if l, ok := m[k]; ok {
		return l
	}
	if k == "" {
		return "-"
	}
	return string(k)
}
