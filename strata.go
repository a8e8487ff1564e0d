package strata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/strata/internal/logging"
	loamAdapter "github.com/aretw0/strata/pkg/adapters/loam"
	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/grid"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/aretw0/strata/pkg/plot"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/aretw0/strata/pkg/source"
)

// Engine is the high-level entry point: it resolves scenes, samples fields
// through a cache and renders figures.
type Engine struct {
	loader   ports.SceneLoader
	cache    ports.FieldCache
	locker   ports.DistributedLocker
	lockTTL  time.Duration
	renderer plot.Renderer
	metrics  *observability.Metrics
	logger   *slog.Logger
	workers  int

	sampler *grid.Sampler
	cached  *grid.CachedSampler
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom SceneLoader, bypassing the default Loam initialization.
func WithLoader(l ports.SceneLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithCache sets where sampled fields are kept. Defaults to an in-memory cache.
func WithCache(c ports.FieldCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLocker serializes concurrent sampling of the same field across replicas.
// Defaults to a process-local locker.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = l
		e.lockTTL = ttl
	}
}

// WithRenderer replaces the contour renderer.
func WithRenderer(r plot.Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithMetrics records sampling and cache metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWorkers bounds the number of grid rows sampled concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// New initializes an Engine over the scene documents in scenesDir.
// A missing directory yields an engine with no scenes. If WithLoader is
// provided, scenesDir is only used as a label.
func New(scenesDir string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.loader == nil {
		loader, name, err := openScenes(scenesDir, eng.logger)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
		eng.Name = name
	} else if scenesDir != "" {
		eng.Name = filepath.Base(scenesDir)
	}

	if eng.Name != "" {
		eng.logger = eng.logger.With("scenes", eng.Name)
	}

	if eng.renderer == nil {
		r, err := plot.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize renderer: %w", err)
		}
		eng.renderer = r
	}
	if eng.cache == nil {
		eng.cache = memory.NewFieldCache()
	}

	samplerOpts := []grid.Option{grid.WithLogger(eng.logger), grid.WithMetrics(eng.metrics)}
	if eng.workers > 0 {
		samplerOpts = append(samplerOpts, grid.WithWorkers(eng.workers))
	}
	eng.sampler = grid.NewSampler(samplerOpts...)

	if eng.locker == nil {
		eng.locker = memory.NewLocker()
	}
	lockTTL := eng.lockTTL
	if lockTTL <= 0 {
		lockTTL = grid.DefaultLockTTL
	}
	cachedOpts := []grid.CachedOption{
		grid.WithCacheLogger(eng.logger),
		grid.WithCacheMetrics(eng.metrics),
		grid.WithLocker(eng.locker, lockTTL),
	}
	eng.cached = grid.NewCachedSampler(eng.sampler, eng.cache, cachedOpts...)

	return eng, nil
}

func openScenes(dir string, logger *slog.Logger) (ports.SceneLoader, string, error) {
	if dir == "" {
		return nil, "", fmt.Errorf("scenesDir is required when no custom loader is provided")
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("invalid path: %w", err)
	}
	name := filepath.Base(absPath)

	if _, err := os.Stat(absPath); errors.Is(err, os.ErrNotExist) {
		logger.Debug("scenes directory not found, starting empty", "dir", absPath)
		l, err := memory.NewLoader()
		return l, name, err
	}

	l, err := loamAdapter.Open(absPath)
	if err != nil {
		return nil, "", err
	}
	return l, name, nil
}

// Evaluate returns the superposed stress of specs at each point.
func (e *Engine) Evaluate(specs []domain.SourceSpec, points []domain.Vec3) ([]domain.Stress, error) {
	ev, err := source.FromSpecs(specs)
	if err != nil {
		return nil, err
	}
	return source.EvaluateAll(ev, points), nil
}

// Field samples one component, serving repeated requests from the cache.
func (e *Engine) Field(ctx context.Context, req grid.Request) (*domain.Field, error) {
	return e.cached.Field(ctx, req)
}

// Scene loads a scene by ID.
func (e *Engine) Scene(ctx context.Context, id string) (domain.Scene, error) {
	return e.loader.GetScene(ctx, id)
}

// Scenes lists the known scene IDs.
func (e *Engine) Scenes(ctx context.Context) ([]string, error) {
	return e.loader.ListScenes(ctx)
}

// Plot renders every requested component of scene into outDir.
func (e *Engine) Plot(ctx context.Context, scene domain.Scene, outDir string) ([]plot.Outcome, error) {
	d := plot.NewDriver(e.renderer,
		plot.WithSampler(e.sampler),
		plot.WithOutputDir(outDir),
		plot.WithLogger(e.logger),
	)
	return d.Run(ctx, scene)
}

// Watch returns a channel that signals when a scene document changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying SceneLoader.
func (e *Engine) Loader() ports.SceneLoader {
	return e.loader
}

// Sampler returns the cached sampler shared by the API adapters.
func (e *Engine) Sampler() *grid.CachedSampler {
	return e.cached
}

// Renderer returns the figure renderer.
func (e *Engine) Renderer() plot.Renderer {
	return e.renderer
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
