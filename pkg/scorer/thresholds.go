package scorer

import "github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"

// Band maps every score >= Min to Label. Tables are evaluated top-down and the
// first match wins, so they must be sorted by Min descending.
type Band[T any] struct {
	Min   int
	Label T
}

// ProbabilityBands interprets the probability score (NP = ND x NE).
var ProbabilityBands = []Band[interfaces.ProbabilityTier]{
	{Min: 40, Label: interfaces.ProbabilityVeryHigh},
	{Min: 24, Label: interfaces.ProbabilityHigh},
	{Min: 10, Label: interfaces.ProbabilityMedium},
}

// RiskBands interprets the risk score (NR = NP x NC).
var RiskBands = []Band[interfaces.RiskTier]{
	{Min: 600, Label: interfaces.RiskTierI},
	{Min: 150, Label: interfaces.RiskTierII},
	{Min: 40, Label: interfaces.RiskTierIII},
}

// tierAcceptability is fixed by the guideline: one verdict per tier.
var tierAcceptability = map[interfaces.RiskTier]interfaces.Acceptability{
	interfaces.RiskTierI:   interfaces.NotAcceptable,
	interfaces.RiskTierII:  interfaces.NotAcceptableOrAcceptableWithControl,
	interfaces.RiskTierIII: interfaces.Improvable,
	interfaces.RiskTierIV:  interfaces.Acceptable,
}

// Lookup returns the label of the first band whose Min is <= score,
// or fallback when the score is below every band.
func Lookup[T any](bands []Band[T], score int, fallback T) T {
	for _, b := range bands {
		if score >= b.Min {
			return b.Label
		}
	}
	return fallback
}

// ProbabilityTierFromScore interprets a probability score.
func ProbabilityTierFromScore(np int) interfaces.ProbabilityTier {
	return Lookup(ProbabilityBands, np, interfaces.ProbabilityLow)
}

// RiskTierFromScore interprets a risk score.
func RiskTierFromScore(nr int) interfaces.RiskTier {
	return Lookup(RiskBands, nr, interfaces.RiskTierIV)
}

// AcceptabilityForTier returns the verdict for a tier; unknown tiers yield "".
func AcceptabilityForTier(t interfaces.RiskTier) interfaces.Acceptability {
	return tierAcceptability[t]
}
