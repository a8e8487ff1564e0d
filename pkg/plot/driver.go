package plot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/grid"
	"github.com/aretw0/strata/pkg/source"
)

// Outcome describes what happened to one component of a scene.
type Outcome struct {
	Component domain.Component
	Field     *domain.Field
	Path      string // Empty when skipped
	Skipped   bool
	Min, Max  float64
}

// Driver samples scenes and renders one figure per component.
type Driver struct {
	renderer Renderer
	sampler  *grid.Sampler
	outDir   string
	logger   *slog.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithSampler sets the grid sampler.
func WithSampler(s *grid.Sampler) DriverOption {
	return func(d *Driver) {
		d.sampler = s
	}
}

// WithOutputDir sets where figures are written. Defaults to the current directory.
func WithOutputDir(dir string) DriverOption {
	return func(d *Driver) {
		d.outDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver creates a Driver that renders with r.
func NewDriver(r Renderer, opts ...DriverOption) *Driver {
	d := &Driver{
		renderer: r,
		outDir:   ".",
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.sampler == nil {
		d.sampler = grid.NewSampler(grid.WithLogger(d.logger))
	}
	return d
}

// Run samples every requested component of scene once per grid point and
// writes <outDir>/<scene>-<Component>.png for each non-uniform field.
func (d *Driver) Run(ctx context.Context, scene domain.Scene) ([]Outcome, error) {
	e, err := source.FromScene(scene)
	if err != nil {
		return nil, err
	}
	g := scene.GridOrDefault()
	components := scene.RenderComponents()

	fields, err := d.sampler.SampleComponents(ctx, e, g, components)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(d.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	outcomes := make([]Outcome, 0, len(fields))
	for _, f := range fields {
		lo, hi := f.Range()
		out := Outcome{Component: f.Component, Field: f, Min: lo, Max: hi}

		if lo == hi {
			d.logger.Info("uniform field, skipping figure", "scene", scene.ID, "component", f.Component.String(), "value", lo)
			out.Skipped = true
			outcomes = append(outcomes, out)
			continue
		}

		out.Path = filepath.Join(d.outDir, FileName(scene.ID, f.Component))
		if err := d.write(out.Path, f); err != nil {
			return outcomes, err
		}
		d.logger.Info("figure written", "scene", scene.ID, "component", f.Component.String(), "path", out.Path)
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func (d *Driver) write(path string, f *domain.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := d.renderer.Render(file, f, f.Component.String()); err != nil {
		file.Close()
		return fmt.Errorf("failed to render %s: %w", f.Component, err)
	}
	return file.Close()
}

// FileName is the figure name for a scene component. Path separators in
// the scene ID are flattened.
func FileName(sceneID string, c domain.Component) string {
	id := strings.NewReplacer("/", "_", `\`, "_").Replace(sceneID)
	if id == "" {
		id = "scene"
	}
	return id + "-" + c.String() + ".png"
}
