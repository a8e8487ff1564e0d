package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrUniformField is returned when a field has nothing to contour.
var ErrUniformField = errors.New("field is uniform")

// Renderer draws a field as a figure and encodes it to w.
type Renderer interface {
	Render(w io.Writer, f *domain.Field, title string) error
}

// Figure layout in pixels.
const (
	figureSize  = 600
	marginLeft  = 70
	marginTop   = 50
	plotSize    = 440
	barLeft     = marginLeft + plotSize + 20
	barWidth    = 18
	tickLength  = 5
	labelOffset = 8
)

// ContourRenderer rasterizes filled-contour figures with gg.
type ContourRenderer struct {
	colormap Colormap
	levels   int
	font     *text.FontSource
}

// RendererOption configures a ContourRenderer.
type RendererOption func(*ContourRenderer)

// WithColormap replaces the default Jet map.
func WithColormap(cm Colormap) RendererOption {
	return func(r *ContourRenderer) {
		r.colormap = cm
	}
}

// WithLevels fixes the number of contour levels. Zero uses the grid size.
func WithLevels(n int) RendererOption {
	return func(r *ContourRenderer) {
		r.levels = n
	}
}

// NewRenderer creates a ContourRenderer using the Go regular font.
func NewRenderer(opts ...RendererOption) (*ContourRenderer, error) {
	font, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	r := &ContourRenderer{colormap: Jet, font: font}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render draws f and writes a PNG to w.
func (r *ContourRenderer) Render(w io.Writer, f *domain.Field, title string) error {
	if f.Size() < 2 {
		return fmt.Errorf("%w: field needs at least 2 samples per axis", domain.ErrInvalidGrid)
	}
	lo, hi := f.Range()
	if lo == hi {
		return ErrUniformField
	}
	n := r.levels
	if n == 0 {
		n = f.Size()
	}
	levels := Levels(lo, hi, n)
	bands := len(levels) - 1

	dc := gg.NewContext(figureSize, figureSize)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	g := f.Grid
	span := g.Max - g.Min
	toPx := func(x, y float64) (float64, float64) {
		return marginLeft + (x-g.Min)/span*plotSize, marginTop + plotSize - (y-g.Min)/span*plotSize
	}

	// Filled cells, colored by the band of the corner average.
	for i := 0; i < f.Size()-1; i++ {
		for j := 0; j < f.Size()-1; j++ {
			avg := (f.At(i, j) + f.At(i+1, j) + f.At(i+1, j+1) + f.At(i, j+1)) / 4
			dc.SetColor(BandColor(r.colormap, Band(levels, avg), bands))
			x0, y0 := toPx(g.Coord(i), g.Coord(j+1))
			x1, y1 := toPx(g.Coord(i+1), g.Coord(j))
			// Overlap by a pixel fraction so antialiased seams don't show.
			dc.DrawRectangle(x0, y0, x1-x0+0.5, y1-y0+0.5)
			dc.Fill()
		}
	}

	// Iso-lines.
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	iso := IsoLevels(levels)
	for _, level := range iso {
		for _, s := range IsoLines(f, level) {
			ax, ay := toPx(s.A.X, s.A.Y)
			bx, by := toPx(s.B.X, s.B.Y)
			dc.DrawLine(ax, ay, bx, by)
		}
	}
	dc.Stroke()

	// Frame and axes.
	dc.DrawRectangle(marginLeft, marginTop, plotSize, plotSize)
	dc.Stroke()

	dc.SetFont(r.font.Face(12))
	for _, v := range []float64{g.Min, (g.Min + g.Max) / 2, g.Max} {
		px, py := toPx(v, g.Min)
		dc.DrawLine(px, py, px, py+tickLength)
		dc.DrawStringAnchored(formatTick(v), px, py+tickLength+labelOffset, 0.5, 0.5)
		qx, qy := toPx(g.Min, v)
		dc.DrawLine(qx-tickLength, qy, qx, qy)
		dc.DrawStringAnchored(formatTick(v), qx-tickLength-labelOffset, qy, 1, 0.25)
	}
	dc.Stroke()
	dc.DrawStringAnchored("x", marginLeft+plotSize/2, marginTop+plotSize+36, 0.5, 0.5)
	dc.DrawStringAnchored("y", marginLeft-48, marginTop+plotSize/2, 0.5, 0.5)

	dc.SetFont(r.font.Face(16))
	dc.DrawStringAnchored(title, marginLeft+plotSize/2, marginTop/2, 0.5, 0.5)

	r.drawColorBar(dc, levels, iso)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode figure: %w", err)
	}
	return nil
}

func (r *ContourRenderer) drawColorBar(dc *gg.Context, levels, iso []float64) {
	bands := len(levels) - 1
	lo, hi := levels[0], levels[len(levels)-1]
	bandHeight := float64(plotSize) / float64(bands)

	for k := 0; k < bands; k++ {
		dc.SetColor(BandColor(r.colormap, k, bands))
		y := marginTop + plotSize - float64(k+1)*bandHeight
		dc.DrawRectangle(barLeft, y, barWidth, bandHeight+0.5)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(barLeft, marginTop, barWidth, plotSize)
	for _, v := range iso {
		y := marginTop + plotSize - (v-lo)/(hi-lo)*plotSize
		dc.DrawLine(barLeft, y, barLeft+barWidth, y)
	}
	dc.Stroke()

	dc.SetFont(r.font.Face(10))
	step := int(math.Ceil(float64(len(iso)) / 6))
	for i := 0; i < len(iso); i += step {
		y := marginTop + plotSize - (iso[i]-lo)/(hi-lo)*plotSize
		dc.DrawStringAnchored(formatTick(iso[i]), barLeft+barWidth+4, y, 0, 0.25)
	}
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}
