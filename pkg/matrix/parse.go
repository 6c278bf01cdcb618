// Package matrix handles the hazard identification matrix: it turns raw form
// values into GTC-45 factors and classifies, filters and summarizes records.
package matrix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/scorer"
)

// ErrInvalidFactor is returned when a rating is not a number or not a GTC-45 level.
var ErrInvalidFactor = errors.New("invalid GTC-45 factor")

// Field names as used by the backend records.
const (
	FieldDeficiency  = "nivel_deficiencia"
	FieldExposure    = "nivel_exposicion"
	FieldConsequence = "nivel_consecuencia"
)

// FieldIssue is a single rating that could not be used.
type FieldIssue struct {
	Field   string
	Message string
}

// FactorError reports every invalid rating of a record. It matches ErrInvalidFactor.
type FactorError struct {
	Issues []FieldIssue
}

func (e *FactorError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+": "+is.Message)
	}
	return fmt.Sprintf("matrix: %v: %s", ErrInvalidFactor, strings.Join(parts, "; "))
}

func (e *FactorError) Unwrap() error { return ErrInvalidFactor }

// ParseFactors converts raw ratings into a HazardFactor.
// Empty values stay unselected (nil); "0" is a selected deficiency of zero.
// Values that do not parse or fall outside the GTC-45 levels are reported
// together in one *FactorError; valid fields are still set.
func ParseFactors(raw interfaces.RawFactors) (interfaces.HazardFactor, error) {
	var (
		f    interfaces.HazardFactor
		errs []FieldIssue
	)

	if v, ok, err := parseLevel(raw.Deficiency); err != nil {
		errs = append(errs, FieldIssue{FieldDeficiency, err.Error()})
	} else if ok {
		nd := interfaces.DeficiencyLevel(v)
		if scorer.ValidDeficiency(nd) {
			f.Deficiency = &nd
		} else {
			errs = append(errs, FieldIssue{FieldDeficiency, fmt.Sprintf("%d is not one of 10, 6, 2, 0", v)})
		}
	}

	if v, ok, err := parseLevel(raw.Exposure); err != nil {
		errs = append(errs, FieldIssue{FieldExposure, err.Error()})
	} else if ok {
		ne := interfaces.ExposureLevel(v)
		if scorer.ValidExposure(ne) {
			f.Exposure = &ne
		} else {
			errs = append(errs, FieldIssue{FieldExposure, fmt.Sprintf("%d is not one of 4, 3, 2, 1", v)})
		}
	}

	if v, ok, err := parseLevel(raw.Consequence); err != nil {
		errs = append(errs, FieldIssue{FieldConsequence, err.Error()})
	} else if ok {
		nc := interfaces.ConsequenceLevel(v)
		if scorer.ValidConsequence(nc) {
			f.Consequence = &nc
		} else {
			errs = append(errs, FieldIssue{FieldConsequence, fmt.Sprintf("%d is not one of 100, 60, 25, 10", v)})
		}
	}

	if len(errs) > 0 {
		return f, &FactorError{Issues: errs}
	}
	return f, nil
}

// parseLevel returns ok=false for an empty value.
// Form selects sometimes carry labels such as "10 - Muy Alto"; the leading number wins.
func parseLevel(v interfaces.FactorValue) (int, bool, error) {
	if v.IsEmpty() {
		return 0, false, nil
	}
	s := strings.TrimSpace(string(v))
	if i := strings.IndexAny(s, " -"); i > 0 {
		s = s[:i]
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true, nil
	}
	return 0, false, fmt.Errorf("%q is not a number", string(v))
}
