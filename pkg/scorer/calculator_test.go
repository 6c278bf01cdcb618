package scorer

import (
	"testing"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

func ptr[T any](v T) *T { return &v }

func TestComputeRisk_VeryHighDeficiencyContinuousFatal_TierI(t *testing.T) {
	a := ComputeRisk(interfaces.NewHazardFactor(10, 4, 100))

	if a.Status != interfaces.AssessmentComplete {
		t.Fatalf("expected complete assessment, got %s", a.Status)
	}
	if a.ProbabilityScore != 40 || a.ProbabilityTier != interfaces.ProbabilityVeryHigh {
		t.Errorf("expected NP=40 VERY_HIGH, got %d %s", a.ProbabilityScore, a.ProbabilityTier)
	}
	if a.RiskScore != 4000 || a.RiskTier != interfaces.RiskTierI {
		t.Errorf("expected NR=4000 tier I, got %d %s", a.RiskScore, a.RiskTier)
	}
	if a.Acceptability != interfaces.NotAcceptable {
		t.Errorf("expected NOT_ACCEPTABLE, got %s", a.Acceptability)
	}
}

func TestComputeRisk_MediumDeficiencySporadicMinor_TierIV(t *testing.T) {
	a := ComputeRisk(interfaces.NewHazardFactor(2, 1, 10))

	if a.ProbabilityScore != 2 || a.ProbabilityTier != interfaces.ProbabilityLow {
		t.Errorf("expected NP=2 LOW, got %d %s", a.ProbabilityScore, a.ProbabilityTier)
	}
	if a.RiskScore != 20 || a.RiskTier != interfaces.RiskTierIV {
		t.Errorf("expected NR=20 tier IV, got %d %s", a.RiskScore, a.RiskTier)
	}
	if a.Acceptability != interfaces.Acceptable {
		t.Errorf("expected ACCEPTABLE, got %s", a.Acceptability)
	}
}

func TestComputeRisk_HighDeficiencyFrequentVerySerious_TierI(t *testing.T) {
	a := ComputeRisk(interfaces.NewHazardFactor(6, 3, 60))

	// NP = 18 (MEDIUM), NR = 1080 (I): a medium probability can still be unacceptable.
	if a.ProbabilityScore != 18 || a.ProbabilityTier != interfaces.ProbabilityMedium {
		t.Errorf("expected NP=18 MEDIUM, got %d %s", a.ProbabilityScore, a.ProbabilityTier)
	}
	if a.RiskScore != 1080 || a.RiskTier != interfaces.RiskTierI {
		t.Errorf("expected NR=1080 tier I, got %d %s", a.RiskScore, a.RiskTier)
	}
	if a.Acceptability != interfaces.NotAcceptable {
		t.Errorf("expected NOT_ACCEPTABLE, got %s", a.Acceptability)
	}
}

func TestComputeRisk_ZeroDeficiency_IsCompleteLowTier(t *testing.T) {
	a := ComputeRisk(interfaces.NewHazardFactor(interfaces.DeficiencyLow, 4, 100))

	if a.Status != interfaces.AssessmentComplete {
		t.Fatalf("deficiency 0 is a valid level, expected complete, got %s", a.Status)
	}
	if a.ProbabilityScore != 0 || a.RiskScore != 0 {
		t.Errorf("expected NP=0 NR=0, got %d %d", a.ProbabilityScore, a.RiskScore)
	}
	if a.RiskTier != interfaces.RiskTierIV || a.Acceptability != interfaces.Acceptable {
		t.Errorf("expected tier IV ACCEPTABLE, got %s %s", a.RiskTier, a.Acceptability)
	}
}

func TestComputeRisk_MissingFactor_Incomplete(t *testing.T) {
	tests := []struct {
		name    string
		factors interfaces.HazardFactor
	}{
		{"nothing selected", interfaces.HazardFactor{}},
		{"no deficiency", interfaces.HazardFactor{Exposure: ptr(interfaces.ExposureFrequent), Consequence: ptr(interfaces.ConsequenceMinor)}},
		{"no exposure", interfaces.HazardFactor{Deficiency: ptr(interfaces.DeficiencyHigh), Consequence: ptr(interfaces.ConsequenceMinor)}},
		{"no consequence", interfaces.HazardFactor{Deficiency: ptr(interfaces.DeficiencyHigh), Exposure: ptr(interfaces.ExposureFrequent)}},
		{"zero exposure", interfaces.NewHazardFactor(6, 0, 10)},
		{"zero consequence", interfaces.NewHazardFactor(6, 3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ComputeRisk(tt.factors)
			if a.Status != interfaces.AssessmentIncomplete {
				t.Fatalf("expected incomplete, got %s", a.Status)
			}
			if a != (interfaces.RiskAssessment{Status: interfaces.AssessmentIncomplete}) {
				t.Errorf("expected zero-valued incomplete assessment, got %+v", a)
			}
		})
	}
}

func TestProbabilityTierFromScore_Boundaries(t *testing.T) {
	tests := []struct {
		np   int
		want interfaces.ProbabilityTier
	}{
		{40, interfaces.ProbabilityVeryHigh},
		{39, interfaces.ProbabilityHigh},
		{24, interfaces.ProbabilityHigh},
		{23, interfaces.ProbabilityMedium},
		{10, interfaces.ProbabilityMedium},
		{9, interfaces.ProbabilityLow},
		{0, interfaces.ProbabilityLow},
	}

	for _, tt := range tests {
		if got := ProbabilityTierFromScore(tt.np); got != tt.want {
			t.Errorf("NP=%d: expected %s, got %s", tt.np, tt.want, got)
		}
	}
}

func TestRiskTierFromScore_Boundaries(t *testing.T) {
	tests := []struct {
		nr         int
		want       interfaces.RiskTier
		acceptable interfaces.Acceptability
	}{
		{600, interfaces.RiskTierI, interfaces.NotAcceptable},
		{599, interfaces.RiskTierII, interfaces.NotAcceptableOrAcceptableWithControl},
		{150, interfaces.RiskTierII, interfaces.NotAcceptableOrAcceptableWithControl},
		{149, interfaces.RiskTierIII, interfaces.Improvable},
		{40, interfaces.RiskTierIII, interfaces.Improvable},
		{39, interfaces.RiskTierIV, interfaces.Acceptable},
		{0, interfaces.RiskTierIV, interfaces.Acceptable},
	}

	for _, tt := range tests {
		got := RiskTierFromScore(tt.nr)
		if got != tt.want {
			t.Errorf("NR=%d: expected tier %s, got %s", tt.nr, tt.want, got)
		}
		if acc := AcceptabilityForTier(got); acc != tt.acceptable {
			t.Errorf("NR=%d: expected %s, got %s", tt.nr, tt.acceptable, acc)
		}
	}
}

func TestComputeRisk_ExactBoundariesThroughFormula(t *testing.T) {
	// The core does not re-validate enumerations, so off-grid levels probe the bands.
	tests := []struct {
		nd, ne, nc int
		wantNP     interfaces.ProbabilityTier
		wantNR     interfaces.RiskTier
	}{
		{10, 4, 15, interfaces.ProbabilityVeryHigh, interfaces.RiskTierI},   // NP 40, NR 600
		{13, 3, 1, interfaces.ProbabilityHigh, interfaces.RiskTierIV},       // NP 39, NR 39
		{6, 4, 25, interfaces.ProbabilityHigh, interfaces.RiskTierI},        // NP 24, NR 600
		{23, 1, 26, interfaces.ProbabilityMedium, interfaces.RiskTierII},    // NP 23, NR 598
		{10, 1, 15, interfaces.ProbabilityMedium, interfaces.RiskTierII},    // NP 10, NR 150
		{3, 3, 1, interfaces.ProbabilityLow, interfaces.RiskTierIV},         // NP 9, NR 9
		{149, 1, 1, interfaces.ProbabilityVeryHigh, interfaces.RiskTierIII}, // NP 149, NR 149
		{2, 2, 10, interfaces.ProbabilityLow, interfaces.RiskTierIII},       // NP 4, NR 40
	}

	for _, tt := range tests {
		f := interfaces.NewHazardFactor(
			interfaces.DeficiencyLevel(tt.nd),
			interfaces.ExposureLevel(tt.ne),
			interfaces.ConsequenceLevel(tt.nc),
		)
		a := ComputeRisk(f)
		if a.ProbabilityTier != tt.wantNP || a.RiskTier != tt.wantNR {
			t.Errorf("ND=%d NE=%d NC=%d: expected %s/%s, got %s/%s (NP=%d NR=%d)",
				tt.nd, tt.ne, tt.nc, tt.wantNP, tt.wantNR, a.ProbabilityTier, a.RiskTier, a.ProbabilityScore, a.RiskScore)
		}
	}
}

func TestComputeRisk_Deterministic(t *testing.T) {
	f := interfaces.NewHazardFactor(6, 2, 25)

	first := ComputeRisk(f)
	second := NewCalculator().Compute(f)

	if first != second {
		t.Errorf("expected identical assessments, got %+v and %+v", first, second)
	}
	if *f.Deficiency != 6 || *f.Exposure != 2 || *f.Consequence != 25 {
		t.Errorf("input factors were mutated: %+v", f)
	}
}

func TestComputeRisk_MonotonicInEachFactor(t *testing.T) {
	// Levels are listed highest first; walk them lowest first.
	for _, ne := range ExposureLevels {
		for _, nc := range ConsequenceLevels {
			prev := interfaces.RiskAssessment{ProbabilityScore: -1, RiskScore: -1}
			for i := len(DeficiencyLevels) - 1; i >= 0; i-- {
				a := ComputeRisk(interfaces.NewHazardFactor(DeficiencyLevels[i], ne, nc))
				if a.ProbabilityScore < prev.ProbabilityScore || a.RiskScore < prev.RiskScore {
					t.Errorf("ND increase lowered scores at NE=%d NC=%d: %+v -> %+v", ne, nc, prev, a)
				}
				prev = a
			}
		}
	}

	for _, nd := range DeficiencyLevels {
		for _, nc := range ConsequenceLevels {
			prev := interfaces.RiskAssessment{ProbabilityScore: -1, RiskScore: -1}
			for i := len(ExposureLevels) - 1; i >= 0; i-- {
				a := ComputeRisk(interfaces.NewHazardFactor(nd, ExposureLevels[i], nc))
				if a.ProbabilityScore < prev.ProbabilityScore || a.RiskScore < prev.RiskScore {
					t.Errorf("NE increase lowered scores at ND=%d NC=%d: %+v -> %+v", nd, nc, prev, a)
				}
				prev = a
			}
		}
	}

	for _, nd := range DeficiencyLevels {
		for _, ne := range ExposureLevels {
			prev := interfaces.RiskAssessment{ProbabilityScore: -1, RiskScore: -1}
			for i := len(ConsequenceLevels) - 1; i >= 0; i-- {
				a := ComputeRisk(interfaces.NewHazardFactor(nd, ne, ConsequenceLevels[i]))
				if a.ProbabilityScore < prev.ProbabilityScore || a.RiskScore < prev.RiskScore {
					t.Errorf("NC increase lowered scores at ND=%d NE=%d: %+v -> %+v", nd, ne, prev, a)
				}
				prev = a
			}
		}
	}
}

func TestComputeRisk_AllPermittedLevels_ScoresInRange(t *testing.T) {
	for _, nd := range DeficiencyLevels {
		for _, ne := range ExposureLevels {
			for _, nc := range ConsequenceLevels {
				a := ComputeRisk(interfaces.NewHazardFactor(nd, ne, nc))
				if a.ProbabilityScore < 0 || a.ProbabilityScore > 40 {
					t.Errorf("NP out of range: %d", a.ProbabilityScore)
				}
				if a.RiskScore < 0 || a.RiskScore > 4000 {
					t.Errorf("NR out of range: %d", a.RiskScore)
				}
				if a.Acceptability == "" {
					t.Errorf("missing acceptability for ND=%d NE=%d NC=%d", nd, ne, nc)
				}
			}
		}
	}
}

func TestLookup_BandsSortedDescending(t *testing.T) {
	for i := 1; i < len(ProbabilityBands); i++ {
		if ProbabilityBands[i].Min >= ProbabilityBands[i-1].Min {
			t.Errorf("ProbabilityBands not descending at %d", i)
		}
	}
	for i := 1; i < len(RiskBands); i++ {
		if RiskBands[i].Min >= RiskBands[i-1].Min {
			t.Errorf("RiskBands not descending at %d", i)
		}
	}
}

func TestValidLevels(t *testing.T) {
	if !ValidDeficiency(0) || ValidDeficiency(5) {
		t.Error("deficiency enumeration mismatch")
	}
	if !ValidExposure(1) || ValidExposure(0) {
		t.Error("exposure enumeration mismatch")
	}
	if !ValidConsequence(25) || ValidConsequence(45) {
		t.Error("consequence enumeration mismatch")
	}
}
