package review

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
)

// Engine orchestrates running all enabled checks against a snapshot.
type Engine struct {
	registry *Registry
}

// NewEngine creates a review engine backed by the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Run executes all enabled checks in parallel.
// A failing check does not stop the others.
// Returns results for every check that ran, including those that errored,
// sorted by check name. Respects context cancellation.
func (e *Engine) Run(ctx context.Context, in *Input) ([]*interfaces.CheckResult, error) {
	if in == nil || in.Snapshot == nil {
		return nil, fmt.Errorf("review: snapshot must not be nil")
	}

	checks := e.registry.EnabledChecks()
	if len(checks) == 0 {
		slog.Info("no enabled checks to run")
		return nil, nil
	}

	slog.Debug("starting review", "check_count", len(checks))

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]*interfaces.CheckResult, 0, len(checks))
	)

	for _, c := range checks {
		wg.Add(1)
		go func(c Check) {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}

			name := c.Name()
			start := time.Now()

			result, err := c.Run(ctx, in)
			elapsed := time.Since(start)

			if err != nil {
				slog.Error("check failed", "name", name, "error", err, "duration", elapsed)
				result = &interfaces.CheckResult{
					CheckName: name,
					Duration:  elapsed,
					Error:     fmt.Errorf("check %s: %w", name, err),
				}
			} else {
				result.Duration = elapsed
				slog.Debug("check complete", "name", name, "findings", len(result.Findings), "duration", elapsed)
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(c)
	}

	wg.Wait()

	var err error
	if ctxErr := ctx.Err(); ctxErr != nil {
		slog.Warn("review cancelled", "error", ctxErr)
		err = ctxErr
	}

	sort.Slice(results, func(i, j int) bool { return results[i].CheckName < results[j].CheckName })
	return results, err
}

// DefaultRegistry returns a registry holding every built-in check.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range []Check{
		NewRiskAcceptabilityCheck(),
		NewRiskCompletenessCheck(),
		NewStandardsStatusCheck(),
		NewClassificationCheck(),
	} {
		_ = r.Register(c) // names are distinct
	}
	return r
}
