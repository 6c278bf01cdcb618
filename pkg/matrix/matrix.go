package matrix

import (
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/scorer"
)

// Classify parses and scores every record. Records whose factors do not parse
// keep the parse error and an incomplete assessment.
func Classify(records []interfaces.RiskRecord) []interfaces.ClassifiedRecord {
	out := make([]interfaces.ClassifiedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, ClassifyRecord(r))
	}
	return out
}

// ClassifyRecord parses and scores a single record.
func ClassifyRecord(r interfaces.RiskRecord) interfaces.ClassifiedRecord {
	cr := interfaces.ClassifiedRecord{Record: r}

	factors, err := ParseFactors(r.RawFactors)
	if err != nil {
		cr.ParseError = err.Error()
		cr.Assessment = interfaces.RiskAssessment{Status: interfaces.AssessmentIncomplete}
		return cr
	}

	cr.Factors = factors
	cr.Assessment = scorer.ComputeRisk(factors)
	return cr
}

// Filter narrows a classified matrix. Empty fields match everything.
type Filter struct {
	ProcessID string
	Tier      interfaces.RiskTier
}

// Apply returns the records matching the filter, preserving order.
func (f Filter) Apply(records []interfaces.ClassifiedRecord) []interfaces.ClassifiedRecord {
	var out []interfaces.ClassifiedRecord
	for _, r := range records {
		if f.ProcessID != "" && r.Record.ProcessID != f.ProcessID {
			continue
		}
		if f.Tier != "" && r.Assessment.RiskTier != f.Tier {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Processes returns the distinct non-empty process IDs in first-seen order.
func Processes(records []interfaces.ClassifiedRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		p := r.Record.ProcessID
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Summarize counts records per tier and finds the worst one.
func Summarize(records []interfaces.ClassifiedRecord) interfaces.MatrixSummary {
	s := interfaces.MatrixSummary{
		Total:  len(records),
		ByTier: make(map[interfaces.RiskTier]int),
	}

	for _, r := range records {
		a := r.Assessment
		if !a.Complete() {
			s.Incomplete++
			continue
		}
		s.ByTier[a.RiskTier]++
		if s.WorstTier == "" || a.RiskTier.Rank() < s.WorstTier.Rank() {
			s.WorstTier = a.RiskTier
		}
		if a.RiskScore > s.MaxScore {
			s.MaxScore = a.RiskScore
		}
	}

	return s
}
