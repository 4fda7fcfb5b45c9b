package stage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/capsidlab/jrfatlas/logger"
)

// RunAll executes the whole pipeline in order. Stage options mirror the
// per-stage commands; the first failing stage stops the run, since each
// stage feeds the next.
type RunOptions struct {
	EnrichSeeds      bool
	RefreshDomains   bool
	LookupStructures bool
}

func (p *Pipeline) RunAll(ctx context.Context, opts RunOptions) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"seed", func(ctx context.Context) error { return p.Seed(ctx, opts.EnrichSeeds) }},
		{"domains", func(ctx context.Context) error { return p.Domains(ctx, opts.RefreshDomains) }},
		{"expand", p.Expand},
		{"annotate", func(ctx context.Context) error { return p.Annotate(ctx, opts.LookupStructures) }},
		{"structure", p.Structure},
		{"synthesize", p.Synthesize},
	}

	for _, step := range steps {
		logger.Info("running stage", zap.String("stage", step.name))
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("stage %s: %w", step.name, err)
		}
	}

	if history, err := p.Catalog.History(); err == nil {
		for _, h := range history {
			logger.Info("stage recorded",
				zap.String("stage", h.Stage),
				zap.String("status", h.Status),
				zap.Int("rows", h.RowCount))
		}
	}
	return nil
}
