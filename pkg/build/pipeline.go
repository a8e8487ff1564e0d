package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/aretw0/strata/pkg/ports"
)

// Outcome records how one step finished.
type Outcome struct {
	Step     string
	Status   Status
	Detail   string
	Duration time.Duration
}

// Pipeline runs plans against a command runner.
type Pipeline struct {
	cfg     Config
	runner  ports.CommandRunner
	out     io.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
	dryRun  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOutput sets where progress and command stdout are echoed.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMetrics records step counts and durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithDryRun records commands instead of executing them and skips every
// filesystem change.
func WithDryRun(dry bool) Option {
	return func(p *Pipeline) {
		p.dryRun = dry
	}
}

// NewPipeline creates a pipeline. Empty config fields take their defaults.
func NewPipeline(cfg Config, runner ports.CommandRunner, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg.WithDefaults(),
		runner: runner,
		out:    io.Discard,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.dryRun {
		if _, ok := p.runner.(*RecordingRunner); !ok {
			p.runner = NewRecordingRunner()
		}
	}
	return p
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run executes the plan's steps in order. A command failure or hard stop
// aborts the remaining steps; soft failures are reported and the plan
// continues.
func (p *Pipeline) Run(ctx context.Context, plan Plan) ([]Outcome, error) {
	s := &session{
		cfg:    p.cfg,
		runner: p.runner,
		out:    p.out,
		logger: p.logger.With("plan", plan.Name),
		dryRun: p.dryRun,
	}

	outcomes := make([]Outcome, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		start := time.Now()
		status, detail, err := step.run(ctx, s)
		elapsed := time.Since(start)

		if err != nil {
			p.metrics.ObserveStep(step.Name, "failed", elapsed)
			s.logger.Error("step failed", "step", step.Name, "error", err)
			return outcomes, fmt.Errorf("%s: %w", step.Name, err)
		}

		p.metrics.ObserveStep(step.Name, status.String(), elapsed)
		if status == SoftFailed {
			s.logger.Warn("step soft-failed", "step", step.Name, "detail", detail)
		} else {
			s.logger.Debug("step finished", "step", step.Name, "status", status.String(), "duration", elapsed)
		}
		outcomes = append(outcomes, Outcome{Step: step.Name, Status: status, Detail: detail, Duration: elapsed})
	}
	return outcomes, nil
}
