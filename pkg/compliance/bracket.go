package compliance

import (
	"fmt"
	"strings"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// Nominal size of each standards set.
const (
	MinimalItems = 7
	MediumItems  = 21
	MaximalItems = 60
)

// Headcount limits above which a larger standards set applies.
const (
	MaximalHeadcountAbove = 50
	MediumHeadcountAbove  = 10
)

var bracketItems = map[interfaces.BracketType]int{
	interfaces.BracketMinimal: MinimalItems,
	interfaces.BracketMedium:  MediumItems,
	interfaces.BracketMaximal: MaximalItems,
}

var bracketLabels = map[interfaces.BracketType]string{
	interfaces.BracketMinimal: "Estándares Mínimos (7 Ítems)",
	interfaces.BracketMedium:  "Estándares Medios (21 Ítems)",
	interfaces.BracketMaximal: "Estándares Máximos (60 Ítems)",
}

// NewBracket returns the bracket of the given type with its nominal size.
func NewBracket(t interfaces.BracketType) interfaces.Bracket {
	return interfaces.Bracket{Type: t, Items: bracketItems[t]}
}

// SelectBracket decides which standards set a company is scored against.
// Rules are evaluated in order and the first match wins:
// risk class IV or V, then more than 50 workers, select the maximal set;
// more than 10 workers selects the medium set; anything else the minimal set.
func SelectBracket(headcount int, class interfaces.RiskClass) interfaces.Bracket {
	switch {
	case class == interfaces.RiskClassIV || class == interfaces.RiskClassV:
		return NewBracket(interfaces.BracketMaximal)
	case headcount > MaximalHeadcountAbove:
		return NewBracket(interfaces.BracketMaximal)
	case headcount > MediumHeadcountAbove:
		return NewBracket(interfaces.BracketMedium)
	default:
		return NewBracket(interfaces.BracketMinimal)
	}
}

// Classify runs the classification wizard: it proposes a bracket only once
// the headcount is positive and a risk class is selected.
func Classify(headcount int, class interfaces.RiskClass) (interfaces.Bracket, bool) {
	if headcount <= 0 || class == "" {
		return interfaces.Bracket{}, false
	}
	return SelectBracket(headcount, class), true
}

// NeedsClassification reports whether the wizard must be shown for a company.
func NeedsClassification(c interfaces.Company) bool {
	return c.ClassificationType == "" || c.RiskClass == ""
}

// BracketLabel returns the display label of a bracket type.
func BracketLabel(t interfaces.BracketType) string {
	if l, ok := bracketLabels[t]; ok {
		return l
	}
	return "Desconocido"
}

// ParseBracketType accepts "ESTANDARES_21", "21" or "estandares_21".
func ParseBracketType(s string) (interfaces.BracketType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "ESTANDARES_") {
		s = "ESTANDARES_" + s
	}
	t := interfaces.BracketType(s)
	if _, ok := bracketItems[t]; !ok {
		return "", fmt.Errorf("compliance: unknown bracket %q", s)
	}
	return t, nil
}

// ParseRiskClass accepts roman numerals I..V or digits 1..5.
func ParseRiskClass(s string) (interfaces.RiskClass, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "1":
		s = "I"
	case "2":
		s = "II"
	case "3":
		s = "III"
	case "4":
		s = "IV"
	case "5":
		s = "V"
	}
	c := interfaces.RiskClass(s)
	if !c.Valid() {
		return "", fmt.Errorf("compliance: unknown risk class %q", s)
	}
	return c, nil
}
