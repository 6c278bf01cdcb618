// Package cli provides CLI-specific logic including configuration loading.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
)

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = ".sgsst.yml"

// Config represents the .sgsst.yml configuration file.
type Config struct {
	Version    string           `yaml:"version"`
	Compliance ComplianceConfig `yaml:"compliance"`
	Checks     ChecksConfig     `yaml:"checks"`
	Backend    BackendConfig    `yaml:"backend"`
	Server     ServerConfig     `yaml:"server"`
	Output     OutputConfig     `yaml:"output"`
	Check      CheckConfig      `yaml:"check"`
}

// ComplianceConfig controls how standards are rolled up.
type ComplianceConfig struct {
	// NotApplicable is one of achieved, justified, excluded.
	NotApplicable string `yaml:"not_applicable"`
}

// ChecksConfig holds per-check configuration.
type ChecksConfig struct {
	RiskAcceptability CheckModuleConfig `yaml:"risk_acceptability"`
	RiskCompleteness  CheckModuleConfig `yaml:"risk_completeness"`
	StandardsStatus   CheckModuleConfig `yaml:"standards_status"`
	Classification    CheckModuleConfig `yaml:"classification"`
}

// ByName maps registry check names to their configuration.
func (c ChecksConfig) ByName() map[string]CheckModuleConfig {
	return map[string]CheckModuleConfig{
		"risk-acceptability": c.RiskAcceptability,
		"risk-completeness":  c.RiskCompleteness,
		"standards-status":   c.StandardsStatus,
		"classification":     c.Classification,
	}
}

// CheckModuleConfig configures a single review check.
type CheckModuleConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// IsEnabled reports whether this check is enabled.
// Returns true by default if not explicitly set.
func (c CheckModuleConfig) IsEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// BackendConfig points at the remote SG-SST web app.
type BackendConfig struct {
	URL      string        `yaml:"url"`
	TokenEnv string        `yaml:"token_env"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Token returns the backend token from the configured environment variable.
func (b BackendConfig) Token() string {
	return os.Getenv(b.TokenEnv)
}

// ServerConfig controls the live-preview API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OutputConfig controls report output settings.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// CheckConfig controls the exit status of `sgsst check`.
type CheckConfig struct {
	// FailOn is one of red, yellow, never.
	FailOn string `yaml:"fail_on"`
}

// LoadConfig reads and parses a .sgsst.yml configuration file.
// If path is empty, it looks for .sgsst.yml in the current directory.
// If the default config file is not found, sensible defaults are returned.
// If an explicitly specified config file is not found, an error is returned.
func LoadConfig(path string) (*Config, error) {
	useDefault := path == ""
	if useDefault {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && useDefault {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("cli: reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cli: parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cli: config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults matching the documented
// .sgsst.yml schema.
func DefaultConfig() *Config {
	cfg := &Config{Version: "1"}
	applyDefaults(cfg)
	return cfg
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := compliance.ParseNotApplicablePolicy(c.Compliance.NotApplicable); err != nil {
		return err
	}
	switch c.Check.FailOn {
	case "red", "yellow", "never":
	default:
		return fmt.Errorf("check.fail_on must be red, yellow or never, got %q", c.Check.FailOn)
	}
	switch c.Output.Format {
	case "terminal", "json", "markdown":
	default:
		return fmt.Errorf("output.format must be terminal, json or markdown, got %q", c.Output.Format)
	}
	return nil
}

// Policy returns the parsed not-applicable policy. Call after Validate.
func (c *Config) Policy() compliance.NotApplicablePolicy {
	p, _ := compliance.ParseNotApplicablePolicy(c.Compliance.NotApplicable)
	return p
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Compliance.NotApplicable == "" {
		cfg.Compliance.NotApplicable = string(compliance.NotApplicableAchieved)
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "terminal"
	}
	if cfg.Check.FailOn == "" {
		cfg.Check.FailOn = "red"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Backend.TokenEnv == "" {
		cfg.Backend.TokenEnv = "SGSST_BACKEND_TOKEN"
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}
	if env := os.Getenv("SGSST_BACKEND_URL"); cfg.Backend.URL == "" && env != "" {
		cfg.Backend.URL = env
		slog.Debug("backend URL taken from environment")
	}
}
