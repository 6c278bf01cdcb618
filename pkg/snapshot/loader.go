// Package snapshot loads company snapshots (company, risk matrix, standards) from YAML or JSON.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

var (
	ErrEmptySnapshot   = errors.New("snapshot: empty input")
	ErrInvalidSnapshot = errors.New("snapshot: invalid document")
)

type loader struct{}

// NewLoader creates a snapshot loader. JSON is read through the YAML decoder,
// so one loader handles both formats.
func NewLoader() interfaces.SnapshotLoader {
	return &loader{}
}

// Parse decodes raw YAML or JSON into a Snapshot.
// Enumerated fields are normalized; empty statuses are read as pending downstream.
func (l *loader) Parse(ctx context.Context, raw []byte) (*interfaces.Snapshot, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptySnapshot
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("snapshot: parsing cancelled: %w", err)
	}

	snap := &interfaces.Snapshot{}
	if err := yaml.Unmarshal(raw, snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	if snap.Company.ID == "" && snap.Company.Name == "" && len(snap.Risks) == 0 && len(snap.Standards) == 0 {
		return nil, fmt.Errorf("%w: no empresa, riesgos or estandares", ErrInvalidSnapshot)
	}

	normalize(snap)
	if err := validateWeights(snap.Standards); err != nil {
		return nil, err
	}
	return snap, nil
}

// validateWeights rejects weights that cannot be rolled up: NaN, infinities
// (YAML .nan / .inf) and negative values.
func validateWeights(items []interfaces.ComplianceItem) error {
	for i, it := range items {
		w := it.Weight
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			ref := it.Code
			if ref == "" {
				ref = fmt.Sprintf("#%d", i+1)
			}
			return fmt.Errorf("%w: estandar %s: peso %v is not a non-negative number", ErrInvalidSnapshot, ref, w)
		}
	}
	return nil
}

// ParseFile reads a snapshot file from disk and parses it.
func (l *loader) ParseFile(ctx context.Context, path string) (*interfaces.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: reading file %s: %w", path, err)
	}
	snap, err := l.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s: %w", path, err)
	}
	return snap, nil
}

// normalize trims identifiers and upper-cases enumerated fields the way the
// backend stores them.
func normalize(snap *interfaces.Snapshot) {
	c := &snap.Company
	c.ID = strings.TrimSpace(c.ID)
	c.RiskClass = interfaces.RiskClass(strings.ToUpper(strings.TrimSpace(string(c.RiskClass))))
	if c.ClassificationType != "" {
		if t, err := compliance.ParseBracketType(string(c.ClassificationType)); err == nil {
			c.ClassificationType = t
		} else {
			c.ClassificationType = interfaces.BracketType(strings.ToUpper(strings.TrimSpace(string(c.ClassificationType))))
		}
	}

	for i := range snap.Risks {
		snap.Risks[i].ID = strings.TrimSpace(snap.Risks[i].ID)
		if snap.Risks[i].ID == "" {
			snap.Risks[i].ID = fmt.Sprintf("R%d", i+1)
		}
	}
	for i := range snap.Standards {
		s := &snap.Standards[i]
		s.Code = strings.TrimSpace(s.Code)
		s.Status = interfaces.ComplianceStatus(strings.ToUpper(strings.TrimSpace(string(s.Status))))
	}
}
