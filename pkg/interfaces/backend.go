package interfaces

import "context"

// Backend abstracts the remote spreadsheet-style API that owns company data.
// It fetches companies, risk matrices and standards, and persists the classification.
type Backend interface {
	// GetEmpresa retrieves a company by ID.
	GetEmpresa(ctx context.Context, empresaID string) (*Company, error)

	// GetMatrizRiesgos retrieves the hazard identification matrix of a company.
	GetMatrizRiesgos(ctx context.Context, empresaID string) ([]RiskRecord, error)

	// GetEstandares retrieves the standards checklist and the bracket it was built for.
	GetEstandares(ctx context.Context, empresaID string) ([]ComplianceItem, BracketType, error)

	// UpdateClassification stores the wizard outcome on the company record.
	UpdateClassification(ctx context.Context, empresaID string, headcount int, class RiskClass, bracket BracketType) error
}

// SnapshotLoader loads a company snapshot from raw bytes or a file.
// Used for both local files and piped input.
type SnapshotLoader interface {
	// Parse converts raw YAML or JSON bytes into a Snapshot.
	Parse(ctx context.Context, raw []byte) (*Snapshot, error)

	// ParseFile reads a snapshot file from disk and parses it.
	ParseFile(ctx context.Context, path string) (*Snapshot, error)
}

// Pipeline orchestrates the full evaluation workflow.
// It coordinates matrix classification, review checks, autoevaluation and reporting.
type Pipeline interface {
	// Run evaluates a snapshot and returns a report.
	Run(ctx context.Context, snap *Snapshot) (*Report, error)
}
