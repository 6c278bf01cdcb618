// Package interfaces defines the shared types and contracts for all SG-SST modules.
// This package has ZERO dependencies on any other pkg/ package.
// All cross-module communication goes through types and interfaces defined here.
package interfaces

import "time"

// DeficiencyLevel (ND) rates how deficient the existing controls are.
type DeficiencyLevel int

const (
	DeficiencyVeryHigh DeficiencyLevel = 10
	DeficiencyHigh     DeficiencyLevel = 6
	DeficiencyMedium   DeficiencyLevel = 2
	DeficiencyLow      DeficiencyLevel = 0 // Valid level, not "unset"
)

// ExposureLevel (NE) rates how often workers are exposed to the hazard.
type ExposureLevel int

const (
	ExposureContinuous ExposureLevel = 4
	ExposureFrequent   ExposureLevel = 3
	ExposureOccasional ExposureLevel = 2
	ExposureSporadic   ExposureLevel = 1
)

// ConsequenceLevel (NC) rates the worst plausible harm.
type ConsequenceLevel int

const (
	ConsequenceFatal       ConsequenceLevel = 100
	ConsequenceVerySerious ConsequenceLevel = 60
	ConsequenceSerious     ConsequenceLevel = 25
	ConsequenceMinor       ConsequenceLevel = 10
)

// HazardFactor holds the three GTC-45 ratings of a hazard.
// A nil field means the rating has not been selected yet.
type HazardFactor struct {
	Deficiency  *DeficiencyLevel  `json:"nivel_deficiencia,omitempty"`
	Exposure    *ExposureLevel    `json:"nivel_exposicion,omitempty"`
	Consequence *ConsequenceLevel `json:"nivel_consecuencia,omitempty"`
}

// NewHazardFactor builds a fully selected HazardFactor.
func NewHazardFactor(nd DeficiencyLevel, ne ExposureLevel, nc ConsequenceLevel) HazardFactor {
	return HazardFactor{Deficiency: &nd, Exposure: &ne, Consequence: &nc}
}

// AssessmentStatus tells whether a RiskAssessment could be computed.
type AssessmentStatus string

const (
	AssessmentComplete   AssessmentStatus = "complete"
	AssessmentIncomplete AssessmentStatus = "incomplete"
)

// ProbabilityTier is the interpretation of the probability score (NP).
type ProbabilityTier string

const (
	ProbabilityLow      ProbabilityTier = "LOW"
	ProbabilityMedium   ProbabilityTier = "MEDIUM"
	ProbabilityHigh     ProbabilityTier = "HIGH"
	ProbabilityVeryHigh ProbabilityTier = "VERY_HIGH"
)

// RiskTier is the interpretation of the risk score (NR). Tier I is the worst.
type RiskTier string

const (
	RiskTierI   RiskTier = "I"
	RiskTierII  RiskTier = "II"
	RiskTierIII RiskTier = "III"
	RiskTierIV  RiskTier = "IV"
)

// Rank orders tiers from worst (1) to best (4). Unknown tiers rank 0.
func (t RiskTier) Rank() int {
	switch t {
	case RiskTierI:
		return 1
	case RiskTierII:
		return 2
	case RiskTierIII:
		return 3
	case RiskTierIV:
		return 4
	default:
		return 0
	}
}

// Acceptability is the qualitative verdict attached to a risk tier.
type Acceptability string

const (
	NotAcceptable                        Acceptability = "NOT_ACCEPTABLE"
	NotAcceptableOrAcceptableWithControl Acceptability = "NOT_ACCEPTABLE_OR_ACCEPTABLE_WITH_CONTROL"
	Improvable                           Acceptability = "IMPROVABLE"
	Acceptable                           Acceptability = "ACCEPTABLE"
)

// RiskAssessment is the GTC-45 classification of a HazardFactor.
// When Status is AssessmentIncomplete every other field is its zero value.
type RiskAssessment struct {
	Status           AssessmentStatus `json:"status"`
	ProbabilityScore int              `json:"nivel_probabilidad"`
	ProbabilityTier  ProbabilityTier  `json:"interpretacion_np,omitempty"`
	RiskScore        int              `json:"nivel_riesgo"`
	RiskTier         RiskTier         `json:"interpretacion_nr,omitempty"`
	Acceptability    Acceptability    `json:"aceptabilidad,omitempty"`
}

// Complete reports whether the assessment carries a classification.
func (a RiskAssessment) Complete() bool {
	return a.Status == AssessmentComplete
}

// ComplianceStatus is the evaluation state of a single standard.
type ComplianceStatus string

const (
	StatusCompliant     ComplianceStatus = "CUMPLE"
	StatusNonCompliant  ComplianceStatus = "NO_CUMPLE"
	StatusNotApplicable ComplianceStatus = "NO_APLICA"
	StatusPending       ComplianceStatus = "PENDIENTE"
)

// Normalize maps an empty or unknown status to StatusPending.
func (s ComplianceStatus) Normalize() ComplianceStatus {
	switch s {
	case StatusCompliant, StatusNonCompliant, StatusNotApplicable:
		return s
	default:
		return StatusPending
	}
}

// Cycle is a PHVA (plan-do-check-act) phase grouping standards.
type Cycle string

const (
	CyclePlan  Cycle = "PLANEAR"
	CycleDo    Cycle = "HACER"
	CycleCheck Cycle = "VERIFICAR"
	CycleAct   Cycle = "ACTUAR"
)

// Cycles lists the PHVA phases in order.
var Cycles = []Cycle{CyclePlan, CycleDo, CycleCheck, CycleAct}

// ComplianceItem is a weighted standard from the minimum standards checklist.
type ComplianceItem struct {
	Code          string           `json:"codigo" yaml:"codigo"`
	Name          string           `json:"nombre,omitempty" yaml:"nombre,omitempty"`
	Cycle         string           `json:"ciclo,omitempty" yaml:"ciclo,omitempty"`
	Weight        float64          `json:"peso" yaml:"peso"`
	Status        ComplianceStatus `json:"estado" yaml:"estado"`
	Justification string           `json:"justificacion,omitempty" yaml:"justificacion,omitempty"`
	EvidenceDocID string           `json:"evidencia_doc_id,omitempty" yaml:"evidencia_doc_id,omitempty"`
	Observation   string           `json:"observacion,omitempty" yaml:"observacion,omitempty"`
}

// ComplianceResult is the weighted roll-up of a set of ComplianceItems.
type ComplianceResult struct {
	Percentage     int                      `json:"porcentaje"`
	AchievedWeight float64                  `json:"peso_logrado"`
	TotalWeight    float64                  `json:"peso_total"`
	Counts         map[ComplianceStatus]int `json:"conteo,omitempty"`
}

// RiskClass is the ARL risk class assigned to a company (I lowest, V highest).
type RiskClass string

const (
	RiskClassI   RiskClass = "I"
	RiskClassII  RiskClass = "II"
	RiskClassIII RiskClass = "III"
	RiskClassIV  RiskClass = "IV"
	RiskClassV   RiskClass = "V"
)

// Valid reports whether r is one of the five ARL classes.
func (r RiskClass) Valid() bool {
	switch r {
	case RiskClassI, RiskClassII, RiskClassIII, RiskClassIV, RiskClassV:
		return true
	default:
		return false
	}
}

// BracketType identifies which minimum standards set applies to a company.
type BracketType string

const (
	BracketMinimal BracketType = "ESTANDARES_7"
	BracketMedium  BracketType = "ESTANDARES_21"
	BracketMaximal BracketType = "ESTANDARES_60"
)

// Bracket is the applicable standards set and its nominal size.
type Bracket struct {
	Type  BracketType `json:"clasificacion_tipo"`
	Items int         `json:"items"`
}

// Classification is the autoevaluation verdict on a compliance percentage.
type Classification string

const (
	ClassificationCritical   Classification = "CRITICO"
	ClassificationModerate   Classification = "MODERADAMENTE_ACEPTABLE"
	ClassificationAcceptable Classification = "ACEPTABLE"
)

// CycleBreakdown is the compliance of a single PHVA phase.
type CycleBreakdown struct {
	Cycle              Cycle `json:"cycle"`
	Percentage         int   `json:"percentage"`
	CompletedStandards int   `json:"completedStandards"`
	TotalStandards     int   `json:"totalStandards"`
}

// Autoevaluation is the scored self-assessment of a company's standards.
type Autoevaluation struct {
	Score               int              `json:"score"`
	Classification      Classification   `json:"classification"`
	ClassificationColor string           `json:"classificationColor"`
	ActionRequired      string           `json:"actionRequired"`
	TotalCompleted      int              `json:"totalCompleted"`
	TotalApplicable     int              `json:"totalApplicable"`
	Result              ComplianceResult `json:"result"`
	Breakdown           []CycleBreakdown `json:"breakdown"`
}

// Company is the subset of a company record the toolkit needs.
type Company struct {
	ID                 string      `json:"empresa_id" yaml:"empresa_id"`
	Name               string      `json:"nombre" yaml:"nombre"`
	NIT                string      `json:"nit,omitempty" yaml:"nit,omitempty"`
	Headcount          int         `json:"numero_trabajadores" yaml:"numero_trabajadores"`
	RiskClass          RiskClass   `json:"nivel_riesgo" yaml:"nivel_riesgo"`
	ClassificationType BracketType `json:"clasificacion_tipo" yaml:"clasificacion_tipo"`
}

// RawFactors carries GTC-45 ratings exactly as a form or stored record holds them.
type RawFactors struct {
	Deficiency  FactorValue `json:"nivel_deficiencia" yaml:"nivel_deficiencia"`
	Exposure    FactorValue `json:"nivel_exposicion" yaml:"nivel_exposicion"`
	Consequence FactorValue `json:"nivel_consecuencia" yaml:"nivel_consecuencia"`
}

// RiskRecord is a row of the hazard identification matrix.
type RiskRecord struct {
	ID                   string `json:"riesgo_id" yaml:"riesgo_id"`
	ProcessID            string `json:"proceso_id" yaml:"proceso_id"`
	Activity             string `json:"actividad" yaml:"actividad"`
	HazardDescription    string `json:"peligro_descripcion" yaml:"peligro_descripcion"`
	HazardClassification string `json:"peligro_clasificacion" yaml:"peligro_clasificacion"`
	RawFactors           `yaml:",inline"`
}

// ClassifiedRecord is a RiskRecord with its computed assessment.
type ClassifiedRecord struct {
	Record     RiskRecord     `json:"record"`
	Factors    HazardFactor   `json:"factors"`
	Assessment RiskAssessment `json:"assessment"`
	ParseError string         `json:"parse_error,omitempty"`
}

// MatrixSummary aggregates a classified risk matrix.
type MatrixSummary struct {
	Total      int              `json:"total"`
	Incomplete int              `json:"incomplete"`
	ByTier     map[RiskTier]int `json:"by_tier"`
	WorstTier  RiskTier         `json:"worst_tier,omitempty"`
	MaxScore   int              `json:"max_score"`
}

// Snapshot is everything known about one company at evaluation time.
type Snapshot struct {
	Company   Company          `json:"empresa" yaml:"empresa"`
	Risks     []RiskRecord     `json:"riesgos" yaml:"riesgos"`
	Standards []ComplianceItem `json:"estandares" yaml:"estandares"`
}

// Severity levels for findings
type Severity string

const (
	SeverityCritical Severity = "critical" // Immediate intervention
	SeverityHigh     Severity = "high"     // Needs an action plan
	SeverityMedium   Severity = "medium"   // Should be corrected
	SeverityLow      Severity = "low"      // Informational
	SeverityInfo     Severity = "info"     // FYI only
)

// Category classifies what a finding is about.
type Category string

const (
	CategoryRisk           Category = "risk"
	CategoryStandards      Category = "standards"
	CategoryClassification Category = "classification"
)

// Finding represents a single issue found while reviewing a snapshot.
type Finding struct {
	ID          string         `json:"id"`
	Check       string         `json:"check"`
	Category    Category       `json:"category"`
	Severity    Severity       `json:"severity"`
	Subject     string         `json:"subject"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Suggestion  string         `json:"suggestion,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// CheckResult is what each review check returns.
type CheckResult struct {
	CheckName string        `json:"check_name"`
	Findings  []Finding     `json:"findings"`
	Duration  time.Duration `json:"duration"`
	Error     error         `json:"-"`
}

// Rating represents the overall traffic-light rating of a report.
type Rating string

const (
	RatingGreen  Rating = "GREEN"
	RatingYellow Rating = "YELLOW"
	RatingRed    Rating = "RED"
)

// Report is the final output of an evaluation run.
type Report struct {
	ID             string           `json:"id"`
	Timestamp      time.Time        `json:"timestamp"`
	Company        Company          `json:"empresa"`
	Rating         Rating           `json:"rating"`
	Matrix         MatrixSummary    `json:"matrix"`
	Autoevaluation Autoevaluation   `json:"autoevaluation"`
	Bracket        *Bracket         `json:"bracket,omitempty"`
	FindingCount   map[Severity]int `json:"finding_count"`
	Findings       []Finding        `json:"findings"`
	Summary        string           `json:"summary"`
	Duration       time.Duration    `json:"duration"`
}
