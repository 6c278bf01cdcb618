// Package review runs checks over a company snapshot and reports findings.
package review

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// Input is what every check sees: the raw snapshot plus the classified matrix.
type Input struct {
	Snapshot *interfaces.Snapshot
	Risks    []interfaces.ClassifiedRecord
}

// Check is the interface that individual review checks implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Run inspects the input and returns its findings.
	Run(ctx context.Context, in *Input) (*interfaces.CheckResult, error)
}

// Registry manages a collection of checks and tracks which are enabled.
type Registry struct {
	mu      sync.RWMutex
	checks  map[string]Check
	enabled map[string]bool
}

// NewRegistry creates an empty check registry.
func NewRegistry() *Registry {
	return &Registry{
		checks:  make(map[string]Check),
		enabled: make(map[string]bool),
	}
}

// Register adds a check to the registry. It is enabled by default.
// Returns an error if a check with the same name is already registered.
func (r *Registry) Register(c Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.checks[name]; exists {
		return fmt.Errorf("review: %q is already registered", name)
	}

	r.checks[name] = c
	r.enabled[name] = true
	return nil
}

// List returns the sorted names of all registered checks.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetEnabled enables or disables a check by name.
// Returns an error if the check is not registered.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checks[name]; !exists {
		return fmt.Errorf("review: %q is not registered", name)
	}
	r.enabled[name] = enabled
	return nil
}

// IsEnabled reports whether the named check is enabled.
func (r *Registry) IsEnabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[name]
}

// EnabledChecks returns all enabled checks sorted by name.
func (r *Registry) EnabledChecks() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Check
	for name, c := range r.checks {
		if r.enabled[name] {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}
