package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/cli"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/compliance"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/interfaces"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/matrix"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/report"
	"github.com/TechFixSolutionscol/Salud-Ocupacional/pkg/review"
)

// evaluationPipeline runs matrix classification, review checks and the
// autoevaluation over one snapshot and builds the report.
type evaluationPipeline struct {
	aggregator *compliance.Aggregator
	engine     *review.Engine
	generator  *report.Generator
	filter     matrix.Filter
}

// newPipeline wires the pipeline from config. The filter narrows the risk
// matrix before review; the zero Filter keeps every record.
func newPipeline(cfg *cli.Config, filter matrix.Filter) (*evaluationPipeline, error) {
	registry, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}

	return &evaluationPipeline{
		aggregator: compliance.NewAggregator(compliance.WithNotApplicablePolicy(cfg.Policy())),
		engine:     review.NewEngine(registry),
		generator:  report.NewGenerator(),
		filter:     filter,
	}, nil
}

// newRegistry returns the built-in checks with the enable flags from config.
func newRegistry(cfg *cli.Config) (*review.Registry, error) {
	registry := review.DefaultRegistry()
	for name, mod := range cfg.Checks.ByName() {
		if err := registry.SetEnabled(name, mod.IsEnabled()); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Run implements interfaces.Pipeline.
func (p *evaluationPipeline) Run(ctx context.Context, snap *interfaces.Snapshot) (*interfaces.Report, error) {
	if snap == nil {
		return nil, fmt.Errorf("pipeline: nil snapshot")
	}

	classified := matrix.Classify(snap.Risks)
	if p.filter != (matrix.Filter{}) {
		classified = p.filter.Apply(classified)
		slog.Debug("matrix filtered",
			"proceso", p.filter.ProcessID,
			"nivel", p.filter.Tier,
			"kept", len(classified),
		)
	}
	summary := matrix.Summarize(classified)
	slog.Info("matrix classified",
		"processes", matrix.Processes(classified),
		"risks", summary.Total,
		"incomplete", summary.Incomplete,
		"worst_tier", summary.WorstTier,
	)

	results, err := p.engine.Run(ctx, &review.Input{Snapshot: snap, Risks: classified})
	if err != nil {
		return nil, fmt.Errorf("pipeline: running checks: %w", err)
	}

	eval := p.aggregator.Autoevaluate(snap.Standards)
	slog.Info("autoevaluation complete",
		"score", eval.Score,
		"classification", eval.Classification,
		"policy", p.aggregator.Policy(),
	)

	return p.generator.Generate(snap, summary, eval, results), nil
}

var _ interfaces.Pipeline = (*evaluationPipeline)(nil)
