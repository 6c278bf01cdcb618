// Package compliance rolls weighted minimum-standards checklists up into a
// compliance percentage and derives the classification built on top of it.
package compliance

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// NotApplicablePolicy decides how NotApplicable items count toward the total.
type NotApplicablePolicy string

const (
	// NotApplicableAchieved counts every NotApplicable item as satisfied.
	NotApplicableAchieved NotApplicablePolicy = "achieved"
	// NotApplicableJustified counts NotApplicable as satisfied only with a justification.
	NotApplicableJustified NotApplicablePolicy = "justified"
	// NotApplicableExcluded removes NotApplicable items from both totals.
	NotApplicableExcluded NotApplicablePolicy = "excluded"
)

// DefaultNotApplicablePolicy matches the dashboard's historical behaviour.
const DefaultNotApplicablePolicy = NotApplicableAchieved

// ParseNotApplicablePolicy parses a policy name. Empty selects the default.
func ParseNotApplicablePolicy(s string) (NotApplicablePolicy, error) {
	switch p := NotApplicablePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultNotApplicablePolicy, nil
	case NotApplicableAchieved, NotApplicableJustified, NotApplicableExcluded:
		return p, nil
	default:
		return "", fmt.Errorf("compliance: unknown not-applicable policy %q", s)
	}
}

// Aggregator computes weighted compliance percentages.
type Aggregator struct {
	naPolicy NotApplicablePolicy
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithNotApplicablePolicy overrides how NotApplicable items are counted.
func WithNotApplicablePolicy(p NotApplicablePolicy) Option {
	return func(a *Aggregator) {
		a.naPolicy = p
	}
}

// NewAggregator creates an aggregator with optional configuration.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{naPolicy: DefaultNotApplicablePolicy}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Policy returns the configured NotApplicable policy.
func (a *Aggregator) Policy() NotApplicablePolicy {
	return a.naPolicy
}

// ComputeCompliance rolls items up with the default policy.
func ComputeCompliance(items []interfaces.ComplianceItem) interfaces.ComplianceResult {
	return NewAggregator().Compute(items)
}

// Compute rolls items up into a percentage.
// total = sum of every counted weight; achieved = sum of Compliant weights plus
// NotApplicable weights accepted by the policy. Pending items only add to total.
// percentage = round(achieved / total * 100), 0 when total is 0, clamped to [0, 100].
func (a *Aggregator) Compute(items []interfaces.ComplianceItem) interfaces.ComplianceResult {
	total := decimal.Zero
	achieved := decimal.Zero
	counts := make(map[interfaces.ComplianceStatus]int)

	for _, item := range items {
		status := item.Status.Normalize()
		counts[status]++

		counted, satisfied := a.classify(item, status)
		if !counted {
			continue
		}
		w := weight(item.Weight)
		total = total.Add(w)
		if satisfied {
			achieved = achieved.Add(w)
		}
	}

	totalF, _ := total.Float64()
	achievedF, _ := achieved.Float64()

	return interfaces.ComplianceResult{
		Percentage:     percentage(achieved, total),
		AchievedWeight: achievedF,
		TotalWeight:    totalF,
		Counts:         counts,
	}
}

// Satisfied reports whether a single item counts as achieved under the policy.
func (a *Aggregator) Satisfied(item interfaces.ComplianceItem) bool {
	counted, satisfied := a.classify(item, item.Status.Normalize())
	return counted && satisfied
}

// Counted reports whether a single item takes part in the totals under the policy.
func (a *Aggregator) Counted(item interfaces.ComplianceItem) bool {
	counted, _ := a.classify(item, item.Status.Normalize())
	return counted
}

func (a *Aggregator) classify(item interfaces.ComplianceItem, status interfaces.ComplianceStatus) (counted, satisfied bool) {
	switch status {
	case interfaces.StatusCompliant:
		return true, true
	case interfaces.StatusNotApplicable:
		switch a.naPolicy {
		case NotApplicableExcluded:
			return false, false
		case NotApplicableJustified:
			return true, strings.TrimSpace(item.Justification) != ""
		default:
			return true, true
		}
	default:
		return true, false
	}
}

var hundred = decimal.NewFromInt(100)

// weight converts a checklist weight; NaN and infinities count as zero.
func weight(w float64) decimal.Decimal {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(w)
}

func percentage(achieved, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	pct := achieved.Div(total).Mul(hundred).Round(0).IntPart()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}
