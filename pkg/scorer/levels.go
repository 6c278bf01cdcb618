// Package scorer classifies hazards with the GTC-45 risk assessment method.
package scorer

import "github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"

// Permitted factor levels, highest first.
var (
	DeficiencyLevels = []interfaces.DeficiencyLevel{
		interfaces.DeficiencyVeryHigh,
		interfaces.DeficiencyHigh,
		interfaces.DeficiencyMedium,
		interfaces.DeficiencyLow,
	}
	ExposureLevels = []interfaces.ExposureLevel{
		interfaces.ExposureContinuous,
		interfaces.ExposureFrequent,
		interfaces.ExposureOccasional,
		interfaces.ExposureSporadic,
	}
	ConsequenceLevels = []interfaces.ConsequenceLevel{
		interfaces.ConsequenceFatal,
		interfaces.ConsequenceVerySerious,
		interfaces.ConsequenceSerious,
		interfaces.ConsequenceMinor,
	}
)

// ValidDeficiency reports whether nd is a GTC-45 deficiency level.
func ValidDeficiency(nd interfaces.DeficiencyLevel) bool {
	return contains(DeficiencyLevels, nd)
}

// ValidExposure reports whether ne is a GTC-45 exposure level.
func ValidExposure(ne interfaces.ExposureLevel) bool {
	return contains(ExposureLevels, ne)
}

// ValidConsequence reports whether nc is a GTC-45 consequence level.
func ValidConsequence(nc interfaces.ConsequenceLevel) bool {
	return contains(ConsequenceLevels, nc)
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
