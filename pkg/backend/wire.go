package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// Spreadsheet cells come back as numbers or strings depending on how they were typed.

type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s, err := scalarText(data)
	if err != nil || s == "" {
		*n = 0
		return err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	*n = flexInt(v)
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s, err := scalarText(data)
	if err != nil || s == "" {
		*f = 0
		return err
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("not a number: %q", s)
	}
	*f = flexFloat(v)
	return nil
}

type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	v, err := scalarText(data)
	*s = flexString(v)
	return err
}

func scalarText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return string(data), nil
}

type wireEmpresa struct {
	ID                 flexString `json:"empresa_id"`
	Name               string     `json:"nombre"`
	NIT                flexString `json:"nit"`
	Headcount          flexInt    `json:"numero_trabajadores"`
	RiskClass          string     `json:"nivel_riesgo"`
	ClassificationType string     `json:"clasificacion_tipo"`
}

func (w wireEmpresa) toCompany() interfaces.Company {
	return interfaces.Company{
		ID:                 string(w.ID),
		Name:               w.Name,
		NIT:                string(w.NIT),
		Headcount:          int(w.Headcount),
		RiskClass:          interfaces.RiskClass(strings.ToUpper(strings.TrimSpace(w.RiskClass))),
		ClassificationType: interfaces.BracketType(strings.ToUpper(strings.TrimSpace(w.ClassificationType))),
	}
}

type wireEstandar struct {
	Code          flexString `json:"codigo"`
	Name          string     `json:"nombre"`
	Cycle         string     `json:"ciclo"`
	Weight        flexFloat  `json:"peso"`
	Status        string     `json:"estado"`
	Justification string     `json:"justificacion"`
	EvidenceDocID flexString `json:"evidencia_doc_id"`
	Observation   string     `json:"observacion"`
}

func (w wireEstandar) toItem() interfaces.ComplianceItem {
	return interfaces.ComplianceItem{
		Code:          string(w.Code),
		Name:          w.Name,
		Cycle:         w.Cycle,
		Weight:        float64(w.Weight),
		Status:        interfaces.ComplianceStatus(strings.ToUpper(strings.TrimSpace(w.Status))),
		Justification: w.Justification,
		EvidenceDocID: string(w.EvidenceDocID),
		Observation:   w.Observation,
	}
}

type wireRiesgo struct {
	ID                   flexString `json:"riesgo_id"`
	ProcessID            flexString `json:"proceso_id"`
	Activity             string     `json:"actividad"`
	HazardDescription    string     `json:"peligro_descripcion"`
	HazardClassification string     `json:"peligro_clasificacion"`
	interfaces.RawFactors
}

func (w wireRiesgo) toRecord() interfaces.RiskRecord {
	return interfaces.RiskRecord{
		ID:                   string(w.ID),
		ProcessID:            string(w.ProcessID),
		Activity:             w.Activity,
		HazardDescription:    w.HazardDescription,
		HazardClassification: w.HazardClassification,
		RawFactors:           w.RawFactors,
	}
}
