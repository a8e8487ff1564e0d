package grid

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/aretw0/strata/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// Sampler evaluates a ports.Evaluator on every node of a grid.
type Sampler struct {
	workers int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithWorkers bounds the number of rows evaluated concurrently.
// Values below 1 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Sampler) {
		s.workers = n
	}
}

// WithLogger sets the logger used for sampling diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sampler) {
		s.logger = logger
	}
}

// WithMetrics records sampling counts and durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Sampler) {
		s.metrics = m
	}
}

// NewSampler creates a Sampler.
func NewSampler(opts ...Option) *Sampler {
	s := &Sampler{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// Sample returns the n x n field of component c.
func (s *Sampler) Sample(ctx context.Context, e ports.Evaluator, g domain.GridSpec, c domain.Component) (*domain.Field, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownComponent, int(c))
	}
	fields, err := s.sample(ctx, e, g, []domain.Component{c})
	if err != nil {
		return nil, err
	}
	return fields[0], nil
}

// SampleAll evaluates each grid point once and returns the six component
// fields indexed by domain.Component.
func (s *Sampler) SampleAll(ctx context.Context, e ports.Evaluator, g domain.GridSpec) ([]*domain.Field, error) {
	return s.sample(ctx, e, g, domain.AllComponents())
}

// SampleComponents evaluates each grid point once and returns one field per
// requested component, in the requested order.
func (s *Sampler) SampleComponents(ctx context.Context, e ports.Evaluator, g domain.GridSpec, cs []domain.Component) ([]*domain.Field, error) {
	for _, c := range cs {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnknownComponent, int(c))
		}
	}
	return s.sample(ctx, e, g, cs)
}

func (s *Sampler) sample(ctx context.Context, e ports.Evaluator, g domain.GridSpec, cs []domain.Component) ([]*domain.Field, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	fields := make([]*domain.Field, len(cs))
	for k, c := range cs {
		fields[k] = domain.NewField(g, c)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)

	for i := 0; i < g.N; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := 0; j < g.N; j++ {
				st := e.Stress(g.Point(i, j))
				for k, c := range cs {
					fields[k].Values[i][j] = st[c]
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("grid sampling interrupted: %w", err)
	}

	label := componentLabel(cs)
	elapsed := time.Since(start)
	s.metrics.ObserveSample(label, g.N*g.N, elapsed)
	s.logger.Debug("grid sampled", "n", g.N, "z", g.Z, "components", label, "duration", elapsed)

	return fields, nil
}

func componentLabel(cs []domain.Component) string {
	if len(cs) == domain.NumComponents {
		return "all"
	}
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}

var defaultSampler = NewSampler()

// Sample samples component c with the default Sampler.
func Sample(ctx context.Context, e ports.Evaluator, g domain.GridSpec, c domain.Component) (*domain.Field, error) {
	return defaultSampler.Sample(ctx, e, g, c)
}

// SampleAll samples every component with the default Sampler.
func SampleAll(ctx context.Context, e ports.Evaluator, g domain.GridSpec) ([]*domain.Field, error) {
	return defaultSampler.SampleAll(ctx, e, g)
}
