package compliance

import (
	"testing"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

func TestSelectBracket(t *testing.T) {
	tests := []struct {
		name      string
		headcount int
		class     interfaces.RiskClass
		want      interfaces.BracketType
		items     int
	}{
		{"class V small company", 3, interfaces.RiskClassV, interfaces.BracketMaximal, 60},
		{"class IV small company", 8, interfaces.RiskClassIV, interfaces.BracketMaximal, 60},
		{"51 workers class I", 51, interfaces.RiskClassI, interfaces.BracketMaximal, 60},
		{"50 workers class III", 50, interfaces.RiskClassIII, interfaces.BracketMedium, 21},
		{"11 workers class II", 11, interfaces.RiskClassII, interfaces.BracketMedium, 21},
		{"10 workers class III", 10, interfaces.RiskClassIII, interfaces.BracketMinimal, 7},
		{"1 worker class I", 1, interfaces.RiskClassI, interfaces.BracketMinimal, 7},
		{"no class many workers", 80, "", interfaces.BracketMaximal, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectBracket(tt.headcount, tt.class)
			if got.Type != tt.want || got.Items != tt.items {
				t.Errorf("expected %s/%d, got %s/%d", tt.want, tt.items, got.Type, got.Items)
			}
		})
	}
}

func TestClassify_RequiresHeadcountAndClass(t *testing.T) {
	if _, ok := Classify(0, interfaces.RiskClassII); ok {
		t.Error("expected no bracket without headcount")
	}
	if _, ok := Classify(25, ""); ok {
		t.Error("expected no bracket without risk class")
	}

	b, ok := Classify(25, interfaces.RiskClassII)
	if !ok {
		t.Fatal("expected a bracket for complete input")
	}
	if b.Type != interfaces.BracketMedium {
		t.Errorf("expected %s, got %s", interfaces.BracketMedium, b.Type)
	}
}

func TestNeedsClassification(t *testing.T) {
	tests := []struct {
		name    string
		company interfaces.Company
		want    bool
	}{
		{"blank", interfaces.Company{}, true},
		{"missing type", interfaces.Company{RiskClass: interfaces.RiskClassI}, true},
		{"missing class", interfaces.Company{ClassificationType: interfaces.BracketMinimal}, true},
		{"classified", interfaces.Company{RiskClass: interfaces.RiskClassI, ClassificationType: interfaces.BracketMinimal}, false},
	}

	for _, tt := range tests {
		if got := NeedsClassification(tt.company); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestParseBracketType(t *testing.T) {
	for in, want := range map[string]interfaces.BracketType{
		"ESTANDARES_7":  interfaces.BracketMinimal,
		"21":            interfaces.BracketMedium,
		"estandares_60": interfaces.BracketMaximal,
	} {
		got, err := ParseBracketType(in)
		if err != nil {
			t.Errorf("ParseBracketType(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseBracketType(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseBracketType("ESTANDARES_30"); err == nil {
		t.Error("expected error for unknown bracket")
	}
}

func TestParseRiskClass(t *testing.T) {
	for in, want := range map[string]interfaces.RiskClass{
		"i":   interfaces.RiskClassI,
		"3":   interfaces.RiskClassIII,
		" V ": interfaces.RiskClassV,
	} {
		got, err := ParseRiskClass(in)
		if err != nil || got != want {
			t.Errorf("ParseRiskClass(%q) = %s, %v; want %s", in, got, err, want)
		}
	}

	for _, bad := range []string{"", "VI", "0"} {
		if _, err := ParseRiskClass(bad); err == nil {
			t.Errorf("ParseRiskClass(%q) expected error", bad)
		}
	}
}

func TestBracketLabel(t *testing.T) {
	if got := BracketLabel(interfaces.BracketMedium); got != "Estándares Medios (21 Ítems)" {
		t.Errorf("unexpected label %q", got)
	}
	if got := BracketLabel("OTRO"); got != "Desconocido" {
		t.Errorf("expected fallback label, got %q", got)
	}
}
