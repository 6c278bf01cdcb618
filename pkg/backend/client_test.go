package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// fakeApp mimics the web app: it decodes the payload parameter and answers per action.
type fakeApp struct {
	mu       sync.Mutex
	requests []request
	answers  map[string]string
}

func (f *fakeApp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.Unmarshal([]byte(r.URL.Query().Get("payload")), &req); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	body, ok := f.answers[req.Action]
	if !ok {
		body = fmt.Sprintf(`{"success":false,"error":"Acción no reconocida: %s"}`, req.Action)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeApp) lastParams(action string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].Action == action {
			return f.requests[i].Params
		}
	}
	return nil
}

func newTestClient(t *testing.T, answers map[string]string, opts ...Option) (*Client, *fakeApp) {
	t.Helper()
	app := &fakeApp{answers: answers}
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/exec", opts...)
	require.NoError(t, err)
	return c, app
}

const empresaJSON = `{"success":true,"data":{"empresa_id":"EMP-1","nombre":"Taller Andino","nit":900123456,"numero_trabajadores":"25","nivel_riesgo":"ii","clasificacion_tipo":""}}`

const riesgosJSON = `{"success":true,"data":[
	{"riesgo_id":1,"proceso_id":"PROC-1","actividad":"Soldadura","nivel_deficiencia":6,"nivel_exposicion":"3","nivel_consecuencia":25},
	{"riesgo_id":"R-2","proceso_id":"PROC-2","nivel_deficiencia":"","nivel_exposicion":2,"nivel_consecuencia":null}
]}`

const estandaresJSON = `{"success":true,"data":[
	{"codigo":"1.1.1","nombre":"Responsable","ciclo":"I. PLANEAR","peso":"0,5","estado":"cumple"},
	{"codigo":"2.1.1","nombre":"Política","ciclo":"I. PLANEAR","peso":1,"estado":""}
],"meta":{"clasificacion":"ESTANDARES_21"}}`

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)

	_, err = NewClient("not a url")
	assert.Error(t, err)
}

func TestGetEmpresa_FlexibleCells(t *testing.T) {
	c, app := newTestClient(t, map[string]string{"getEmpresa": empresaJSON}, WithToken("tok-123"))

	company, err := c.GetEmpresa(context.Background(), "EMP-1")
	require.NoError(t, err)

	assert.Equal(t, "EMP-1", company.ID)
	assert.Equal(t, "900123456", company.NIT)
	assert.Equal(t, 25, company.Headcount)
	assert.Equal(t, interfaces.RiskClassII, company.RiskClass)
	assert.Empty(t, company.ClassificationType)

	params := app.lastParams("getEmpresa")
	assert.Equal(t, "EMP-1", params["id"])
	assert.Equal(t, "tok-123", params["token"])
}

func TestGetMatrizRiesgos(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{"getMatrizRiesgos": riesgosJSON})

	risks, err := c.GetMatrizRiesgos(context.Background(), "EMP-1")
	require.NoError(t, err)
	require.Len(t, risks, 2)

	assert.Equal(t, "1", risks[0].ID)
	assert.Equal(t, interfaces.FactorValue("6"), risks[0].Deficiency)
	assert.Equal(t, interfaces.FactorValue("3"), risks[0].Exposure)
	assert.True(t, risks[1].Deficiency.IsEmpty())
	assert.True(t, risks[1].Consequence.IsEmpty())
}

func TestGetEstandares(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{"getEstandares": estandaresJSON})

	items, bracket, err := c.GetEstandares(context.Background(), "EMP-1")
	require.NoError(t, err)

	assert.Equal(t, interfaces.BracketMedium, bracket)
	require.Len(t, items, 2)
	assert.InDelta(t, 0.5, items[0].Weight, 1e-9)
	assert.Equal(t, interfaces.StatusCompliant, items[0].Status)
	assert.Equal(t, interfaces.StatusPending, items[1].Status.Normalize())
}

func TestGetEstandares_RejectsNonFiniteWeight(t *testing.T) {
	for _, peso := range []string{`"NaN"`, `"Inf"`, `"-Infinity"`} {
		t.Run(peso, func(t *testing.T) {
			c, _ := newTestClient(t, map[string]string{
				"getEstandares": `{"success":true,"data":[{"codigo":"1.1.1","peso":` + peso + `,"estado":"CUMPLE"}]}`,
			})

			_, _, err := c.GetEstandares(context.Background(), "EMP-1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a number")
		})
	}
}

func TestNewClient_HTTPClientOptions(t *testing.T) {
	custom := &http.Client{}

	c, err := NewClient("https://example.test/exec", WithTimeout(5*time.Second), WithHTTPClient(custom))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout, "timeout survives a later WithHTTPClient")
	assert.Zero(t, custom.Timeout, "caller's client is not mutated")

	c, err = NewClient("https://example.test/exec", WithHTTPClient(nil))
	require.NoError(t, err)
	require.NotNil(t, c.httpClient)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)

	c, err = NewClient("https://example.test/exec", WithHTTPClient(&http.Client{Timeout: time.Minute}))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, c.httpClient.Timeout)
}

func TestCall_BackendRejects(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"getEmpresa": `{"success":false,"error":"Empresa no encontrada"}`,
	})

	_, err := c.GetEmpresa(context.Background(), "EMP-X")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackend)
	assert.Contains(t, err.Error(), "Empresa no encontrada")
}

func TestCall_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.GetEmpresa(context.Background(), "EMP-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.NotErrorIs(t, err, ErrBackend)
}

func TestCall_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = c.GetEmpresa(context.Background(), "EMP-1")
	assert.Error(t, err)
}

func TestUpdateClassification(t *testing.T) {
	c, app := newTestClient(t, map[string]string{"updateEmpresa": `{"success":true}`})

	err := c.UpdateClassification(context.Background(), "EMP-1", 25, interfaces.RiskClassII, interfaces.BracketMedium)
	require.NoError(t, err)

	params := app.lastParams("updateEmpresa")
	assert.Equal(t, "EMP-1", params["empresa_id"])
	assert.EqualValues(t, 25, params["numero_trabajadores"])
	assert.Equal(t, "II", params["nivel_riesgo"])
	assert.Equal(t, "ESTANDARES_21", params["clasificacion_tipo"])
}

func TestFetchSnapshot(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"getEmpresa":       empresaJSON,
		"getMatrizRiesgos": riesgosJSON,
		"getEstandares":    estandaresJSON,
	})

	snap, err := c.FetchSnapshot(context.Background(), "EMP-1")
	require.NoError(t, err)

	assert.Equal(t, "Taller Andino", snap.Company.Name)
	assert.Equal(t, interfaces.BracketMedium, snap.Company.ClassificationType, "bracket taken from estandares meta")
	assert.Len(t, snap.Risks, 2)
	assert.Len(t, snap.Standards, 2)
}

func TestFetchSnapshot_FailsWhenAnyCallFails(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"getEmpresa":    empresaJSON,
		"getEstandares": estandaresJSON,
	})

	_, err := c.FetchSnapshot(context.Background(), "EMP-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackend)
}
