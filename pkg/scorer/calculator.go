package scorer

import "github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"

// Calculator computes GTC-45 assessments. It holds no state and is safe for
// concurrent use.
type Calculator struct{}

// NewCalculator creates a risk calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute is ComputeRisk as a method, for callers that inject a calculator.
func (c *Calculator) Compute(f interfaces.HazardFactor) interfaces.RiskAssessment {
	return ComputeRisk(f)
}

// ComputeRisk classifies a hazard.
// Formula: NP = ND * NE, NR = NP * NC; both scores are then interpreted through
// ProbabilityBands and RiskBands.
// Returns an incomplete assessment when a factor is unselected. A deficiency of 0
// is a real level; an exposure or consequence of 0 counts as unselected.
// Levels are not re-checked against the guideline's enumerations.
func ComputeRisk(f interfaces.HazardFactor) interfaces.RiskAssessment {
	if !ready(f) {
		return interfaces.RiskAssessment{Status: interfaces.AssessmentIncomplete}
	}

	np := int(*f.Deficiency) * int(*f.Exposure)
	nr := np * int(*f.Consequence)
	tier := RiskTierFromScore(nr)

	return interfaces.RiskAssessment{
		Status:           interfaces.AssessmentComplete,
		ProbabilityScore: np,
		ProbabilityTier:  ProbabilityTierFromScore(np),
		RiskScore:        nr,
		RiskTier:         tier,
		Acceptability:    AcceptabilityForTier(tier),
	}
}

func ready(f interfaces.HazardFactor) bool {
	return f.Deficiency != nil &&
		f.Exposure != nil && *f.Exposure != 0 &&
		f.Consequence != nil && *f.Consequence != 0
}
