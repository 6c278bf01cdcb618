package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/matrix"
)

type evaluateRequest struct {
	Deficiency  interfaces.FactorValue `json:"nivel_deficiencia"`
	Exposure    interfaces.FactorValue `json:"nivel_exposicion"`
	Consequence interfaces.FactorValue `json:"nivel_consecuencia"`
}

type itemRequest struct {
	Code          string  `json:"codigo"`
	Name          string  `json:"nombre"`
	Cycle         string  `json:"ciclo"`
	Weight        float64 `json:"peso" binding:"gte=0"`
	Status        string  `json:"estado" binding:"omitempty,oneof=CUMPLE NO_CUMPLE NO_APLICA PENDIENTE"`
	Justification string  `json:"justificacion"`
}

type complianceRequest struct {
	Items  []itemRequest `json:"items" binding:"required,dive"`
	Policy string        `json:"policy" binding:"omitempty,oneof=achieved justified excluded"`
}

type bracketRequest struct {
	Headcount int    `json:"numero_trabajadores" binding:"gte=0"`
	RiskClass string `json:"nivel_riesgo" binding:"omitempty,riskclass"`
}

type bracketResponse struct {
	Complete bool                   `json:"complete"`
	Type     interfaces.BracketType `json:"clasificacion_tipo,omitempty"`
	Items    int                    `json:"items,omitempty"`
	Label    string                 `json:"label,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	success(c, gin.H{"status": "ok"})
}

// evaluateRisk scores one hazard. Missing factors give an incomplete
// assessment; factors outside the GTC-45 levels are rejected.
func (s *Server) evaluateRisk(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	factors, err := matrix.ParseFactors(interfaces.RawFactors{
		Deficiency:  req.Deficiency,
		Exposure:    req.Exposure,
		Consequence: req.Consequence,
	})
	if err != nil {
		s.metrics.riskEvaluations.WithLabelValues("invalid").Inc()
		var fe *matrix.FactorError
		if errors.As(err, &fe) {
			details := make([]ErrorDetail, 0, len(fe.Issues))
			for _, is := range fe.Issues {
				details = append(details, ErrorDetail{Path: is.Field, Info: is.Message})
			}
			fail(c, http.StatusBadRequest, "Invalid GTC-45 factor", details...)
			return
		}
		badRequest(c, err)
		return
	}

	a := s.calculator.Compute(factors)
	tier := string(a.RiskTier)
	if !a.Complete() {
		tier = string(interfaces.AssessmentIncomplete)
	}
	s.metrics.riskEvaluations.WithLabelValues(tier).Inc()
	success(c, a)
}

func (s *Server) scoreCompliance(c *gin.Context) {
	items, agg, ok := s.bindCompliance(c)
	if !ok {
		return
	}
	s.metrics.complianceEvaluations.WithLabelValues("score").Inc()
	success(c, agg.Compute(items))
}

func (s *Server) autoevaluate(c *gin.Context) {
	items, agg, ok := s.bindCompliance(c)
	if !ok {
		return
	}
	s.metrics.complianceEvaluations.WithLabelValues("autoevaluation").Inc()
	success(c, agg.Autoevaluate(items))
}

func (s *Server) bracket(c *gin.Context) {
	var req bracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.metrics.complianceEvaluations.WithLabelValues("bracket").Inc()

	var class interfaces.RiskClass
	if req.RiskClass != "" {
		class, _ = compliance.ParseRiskClass(req.RiskClass)
	}

	b, ok := compliance.Classify(req.Headcount, class)
	if !ok {
		success(c, bracketResponse{Complete: false})
		return
	}
	success(c, bracketResponse{
		Complete: true,
		Type:     b.Type,
		Items:    b.Items,
		Label:    compliance.BracketLabel(b.Type),
	})
}

// bindCompliance decodes a standards list and picks the aggregator for the
// requested policy, falling back to the server default.
func (s *Server) bindCompliance(c *gin.Context) ([]interfaces.ComplianceItem, *compliance.Aggregator, bool) {
	var req complianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return nil, nil, false
	}

	agg := s.aggregator
	if req.Policy != "" {
		p, err := compliance.ParseNotApplicablePolicy(req.Policy)
		if err != nil {
			badRequest(c, err)
			return nil, nil, false
		}
		agg = compliance.NewAggregator(compliance.WithNotApplicablePolicy(p))
	}

	items := make([]interfaces.ComplianceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, interfaces.ComplianceItem{
			Code:          it.Code,
			Name:          it.Name,
			Cycle:         it.Cycle,
			Weight:        it.Weight,
			Status:        interfaces.ComplianceStatus(it.Status),
			Justification: it.Justification,
		})
	}
	return items, agg, true
}
