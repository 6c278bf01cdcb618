package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelopeOf[T any] struct {
	Meta Meta `json:"meta"`
	Data T    `json:"data"`
}

func do[T any](t *testing.T, s *Server, method, path, body string) (int, envelopeOf[T]) {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(w, req)

	var env envelopeOf[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestHealth(t *testing.T) {
	code, env := do[map[string]string](t, New(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 200, env.Meta.Code)
	assert.Equal(t, "ok", env.Data["status"])
}

func TestEvaluateRisk_Complete(t *testing.T) {
	s := New()
	code, env := do[interfaces.RiskAssessment](t, s, http.MethodPost, "/api/v1/gtc45/evaluate",
		`{"nivel_deficiencia": 10, "nivel_exposicion": "4", "nivel_consecuencia": 100}`)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, interfaces.AssessmentComplete, env.Data.Status)
	assert.Equal(t, 40, env.Data.ProbabilityScore)
	assert.Equal(t, interfaces.ProbabilityVeryHigh, env.Data.ProbabilityTier)
	assert.Equal(t, 4000, env.Data.RiskScore)
	assert.Equal(t, interfaces.RiskTierI, env.Data.RiskTier)
	assert.Equal(t, interfaces.NotAcceptable, env.Data.Acceptability)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.riskEvaluations.WithLabelValues("I")))
}

func TestEvaluateRisk_ZeroDeficiency(t *testing.T) {
	code, env := do[interfaces.RiskAssessment](t, New(), http.MethodPost, "/api/v1/gtc45/evaluate",
		`{"nivel_deficiencia": 0, "nivel_exposicion": 4, "nivel_consecuencia": 100}`)

	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Data.Complete())
	assert.Equal(t, interfaces.RiskTierIV, env.Data.RiskTier)
}

func TestEvaluateRisk_Incomplete(t *testing.T) {
	s := New()
	code, env := do[interfaces.RiskAssessment](t, s, http.MethodPost, "/api/v1/gtc45/evaluate",
		`{"nivel_deficiencia": "", "nivel_exposicion": 4}`)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, interfaces.AssessmentIncomplete, env.Data.Status)
	assert.Zero(t, env.Data.RiskScore)
	assert.Empty(t, env.Data.RiskTier)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.riskEvaluations.WithLabelValues("incomplete")))
}

func TestEvaluateRisk_InvalidLevel(t *testing.T) {
	code, env := do[any](t, New(), http.MethodPost, "/api/v1/gtc45/evaluate",
		`{"nivel_deficiencia": 7, "nivel_exposicion": "alto", "nivel_consecuencia": 100}`)

	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Meta.Details, 2)
	assert.Equal(t, "nivel_deficiencia", env.Meta.Details[0].Path)
	assert.Equal(t, "nivel_exposicion", env.Meta.Details[1].Path)
}

func TestEvaluateRisk_MalformedJSON(t *testing.T) {
	code, env := do[any](t, New(), http.MethodPost, "/api/v1/gtc45/evaluate", `{"nivel_deficiencia":`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, http.StatusBadRequest, env.Meta.Code)
}

func TestScoreCompliance(t *testing.T) {
	body := `{"items": [
		{"codigo": "1.1.1", "peso": 0.5, "estado": "CUMPLE"},
		{"codigo": "1.1.2", "peso": 0.5, "estado": "NO_APLICA"},
		{"codigo": "1.1.3", "peso": 1, "estado": "NO_CUMPLE"}
	]}`

	code, env := do[interfaces.ComplianceResult](t, New(), http.MethodPost, "/api/v1/compliance/score", body)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 50, env.Data.Percentage)
	assert.Equal(t, 2.0, env.Data.TotalWeight)
}

func TestScoreCompliance_PolicyOverride(t *testing.T) {
	body := `{"policy": "excluded", "items": [
		{"peso": 1, "estado": "CUMPLE"},
		{"peso": 1, "estado": "NO_APLICA"},
		{"peso": 2, "estado": "NO_CUMPLE"}
	]}`

	_, env := do[interfaces.ComplianceResult](t, New(), http.MethodPost, "/api/v1/compliance/score", body)

	assert.Equal(t, 33, env.Data.Percentage)
}

func TestScoreCompliance_ServerDefaultPolicy(t *testing.T) {
	s := New(WithAggregator(compliance.NewAggregator(compliance.WithNotApplicablePolicy(compliance.NotApplicableJustified))))
	body := `{"items": [{"peso": 1, "estado": "CUMPLE"}, {"peso": 1, "estado": "NO_APLICA"}]}`

	_, env := do[interfaces.ComplianceResult](t, s, http.MethodPost, "/api/v1/compliance/score", body)

	assert.Equal(t, 50, env.Data.Percentage)
}

func TestScoreCompliance_EmptyList(t *testing.T) {
	code, env := do[interfaces.ComplianceResult](t, New(), http.MethodPost, "/api/v1/compliance/score", `{"items": []}`)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Data.Percentage)
}

func TestScoreCompliance_ValidationDetails(t *testing.T) {
	body := `{"policy": "ignore", "items": [{"peso": -1, "estado": "LISTO"}]}`

	code, env := do[any](t, New(), http.MethodPost, "/api/v1/compliance/score", body)

	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Meta.Message)

	paths := make([]string, 0, len(env.Meta.Details))
	for _, d := range env.Meta.Details {
		paths = append(paths, d.Path)
	}
	assert.Contains(t, paths, "items[0].peso")
	assert.Contains(t, paths, "items[0].estado")
	assert.Contains(t, paths, "policy")
}

func TestScoreCompliance_MissingItems(t *testing.T) {
	code, env := do[any](t, New(), http.MethodPost, "/api/v1/compliance/score", `{}`)

	require.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, env.Meta.Details)
	assert.Equal(t, "items", env.Meta.Details[0].Path)
}

func TestAutoevaluation(t *testing.T) {
	body := `{"items": [
		{"ciclo": "I. PLANEAR", "peso": 50, "estado": "CUMPLE"},
		{"ciclo": "II. HACER", "peso": 50, "estado": "NO_CUMPLE"}
	]}`

	code, env := do[interfaces.Autoevaluation](t, New(), http.MethodPost, "/api/v1/compliance/autoevaluation", body)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 50, env.Data.Score)
	assert.Equal(t, interfaces.ClassificationCritical, env.Data.Classification)
	assert.Equal(t, "red", env.Data.ClassificationColor)
	require.Len(t, env.Data.Breakdown, 4)
	assert.Equal(t, 100, env.Data.Breakdown[0].Percentage)
}

func TestBracket(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		complete bool
		want     interfaces.BracketType
	}{
		{"medium", `{"numero_trabajadores": 25, "nivel_riesgo": "II"}`, true, interfaces.BracketMedium},
		{"numeric class", `{"numero_trabajadores": 3, "nivel_riesgo": "5"}`, true, interfaces.BracketMaximal},
		{"missing class", `{"numero_trabajadores": 25}`, false, ""},
		{"missing headcount", `{"nivel_riesgo": "I"}`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do[bracketResponse](t, New(), http.MethodPost, "/api/v1/compliance/bracket", tt.body)

			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.complete, env.Data.Complete)
			assert.Equal(t, tt.want, env.Data.Type)
		})
	}
}

func TestBracket_InvalidClass(t *testing.T) {
	code, env := do[any](t, New(), http.MethodPost, "/api/v1/compliance/bracket",
		`{"numero_trabajadores": 25, "nivel_riesgo": "VI"}`)

	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Meta.Details, 1)
	assert.Equal(t, "nivel_riesgo", env.Meta.Details[0].Path)
}

func TestNotFound(t *testing.T) {
	code, env := do[any](t, New(), http.MethodGet, "/api/v1/unknown", "")

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, http.StatusNotFound, env.Meta.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(WithRegistry(reg))

	do[any](t, s, http.MethodPost, "/api/v1/compliance/score", `{"items": []}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `sgsst_compliance_evaluations_total{endpoint="score"} 1`), body)
	assert.Contains(t, body, "sgsst_http_request_duration_seconds")
}
