// Package backend is a client for the SG-SST web app that stores companies,
// risk matrices and standards.
//
// Every call is a GET with a single `payload` query parameter holding
// {"action": ..., "params": ...}; responses use the {success, data, error, meta} envelope.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// ErrBackend is returned when the web app answers with success=false.
var ErrBackend = errors.New("backend: request rejected")

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 30 * time.Second

// Client implements interfaces.Backend over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the session token sent with every action.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout overrides DefaultTimeout. It applies to a client passed with
// WithHTTPClient too, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a backend client for the web app deployed at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("backend: deployment URL not set")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("backend: invalid deployment URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	timeout := c.timeout
	if timeout == 0 && c.httpClient.Timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout > 0 {
		// Copy so a caller's client is never mutated.
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
	return c, nil
}

type request struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Meta    json.RawMessage `json:"meta"`
}

// call runs one action and returns the decoded envelope.
func (c *Client) call(ctx context.Context, action string, params map[string]any) (*envelope, error) {
	if params == nil {
		params = map[string]any{}
	}
	if c.token != "" {
		params["token"] = c.token
	}

	payload, err := json.Marshal(request{Action: action, Params: params})
	if err != nil {
		return nil, fmt.Errorf("backend: marshaling %s payload: %w", action, err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend: parsing deployment URL: %w", err)
	}
	q := u.Query()
	q.Set("payload", string(payload))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("backend: creating %s request: %w", action, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %s: %w", action, err)
	}
	defer resp.Body.Close()

	slog.Debug("backend call", "action", action, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("backend: %s returned %d: %s", action, resp.StatusCode, string(body))
	}

	env := &envelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return nil, fmt.Errorf("backend: decoding %s response: %w", action, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "no error message"
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrBackend, action, msg)
	}
	return env, nil
}

// GetEmpresa retrieves a company by ID.
func (c *Client) GetEmpresa(ctx context.Context, empresaID string) (*interfaces.Company, error) {
	env, err := c.call(ctx, "getEmpresa", map[string]any{"id": empresaID})
	if err != nil {
		return nil, err
	}

	var w wireEmpresa
	if err := json.Unmarshal(env.Data, &w); err != nil {
		return nil, fmt.Errorf("backend: decoding empresa %s: %w", empresaID, err)
	}
	company := w.toCompany()
	if company.ID == "" {
		company.ID = empresaID
	}
	return &company, nil
}

// GetMatrizRiesgos retrieves the hazard identification matrix of a company.
func (c *Client) GetMatrizRiesgos(ctx context.Context, empresaID string) ([]interfaces.RiskRecord, error) {
	env, err := c.call(ctx, "getMatrizRiesgos", map[string]any{"empresaId": empresaID})
	if err != nil {
		return nil, err
	}

	var wire []wireRiesgo
	if err := decodeList(env.Data, &wire); err != nil {
		return nil, fmt.Errorf("backend: decoding matriz de riesgos %s: %w", empresaID, err)
	}
	records := make([]interfaces.RiskRecord, 0, len(wire))
	for _, w := range wire {
		records = append(records, w.toRecord())
	}
	return records, nil
}

// GetEstandares retrieves the standards checklist and the bracket it was built for.
func (c *Client) GetEstandares(ctx context.Context, empresaID string) ([]interfaces.ComplianceItem, interfaces.BracketType, error) {
	env, err := c.call(ctx, "getEstandares", map[string]any{"empresaId": empresaID})
	if err != nil {
		return nil, "", err
	}

	var wire []wireEstandar
	if err := decodeList(env.Data, &wire); err != nil {
		return nil, "", fmt.Errorf("backend: decoding estandares %s: %w", empresaID, err)
	}
	items := make([]interfaces.ComplianceItem, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.toItem())
	}

	var meta struct {
		Clasificacion interfaces.BracketType `json:"clasificacion"`
	}
	if len(env.Meta) > 0 && string(env.Meta) != "null" {
		if err := json.Unmarshal(env.Meta, &meta); err != nil {
			return nil, "", fmt.Errorf("backend: decoding estandares meta: %w", err)
		}
	}
	return items, meta.Clasificacion, nil
}

// UpdateClassification stores the wizard outcome on the company record.
func (c *Client) UpdateClassification(ctx context.Context, empresaID string, headcount int, class interfaces.RiskClass, bracket interfaces.BracketType) error {
	_, err := c.call(ctx, "updateEmpresa", map[string]any{
		"empresa_id":          empresaID,
		"numero_trabajadores": headcount,
		"nivel_riesgo":        string(class),
		"clasificacion_tipo":  string(bracket),
	})
	return err
}

// FetchSnapshot loads the company, its matrix and its standards concurrently.
// The first failure cancels the remaining calls.
func (c *Client) FetchSnapshot(ctx context.Context, empresaID string) (*interfaces.Snapshot, error) {
	var (
		company   *interfaces.Company
		risks     []interfaces.RiskRecord
		standards []interfaces.ComplianceItem
		bracket   interfaces.BracketType
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		company, err = c.GetEmpresa(gctx, empresaID)
		return err
	})
	g.Go(func() error {
		var err error
		risks, err = c.GetMatrizRiesgos(gctx, empresaID)
		return err
	})
	g.Go(func() error {
		var err error
		standards, bracket, err = c.GetEstandares(gctx, empresaID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if company.ClassificationType == "" && bracket != "" {
		company.ClassificationType = bracket
	}
	return &interfaces.Snapshot{Company: *company, Risks: risks, Standards: standards}, nil
}

// decodeList decodes a JSON array, treating null as empty.
func decodeList[T any](data json.RawMessage, out *[]T) error {
	if len(data) == 0 || string(data) == "null" {
		*out = nil
		return nil
	}
	return json.Unmarshal(data, out)
}

var _ interfaces.Backend = (*Client)(nil)
