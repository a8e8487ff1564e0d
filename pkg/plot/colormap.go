package plot

import (
	"image/color"
	"math"
)

// Colormap maps t in [0, 1] to a color.
type Colormap func(t float64) color.RGBA

// Jet is the classic blue-cyan-yellow-red map.
func Jet(t float64) color.RGBA {
	t = clamp01(t)
	channel := func(offset float64) uint8 {
		return uint8(math.Round(255 * clamp01(1.5-math.Abs(4*t-offset))))
	}
	return color.RGBA{R: channel(3), G: channel(2), B: channel(1), A: 255}
}

// BandColor is the fill color of band k out of bands.
func BandColor(cm Colormap, k, bands int) color.RGBA {
	if bands <= 1 {
		return cm(0.5)
	}
	return cm((float64(k) + 0.5) / float64(bands))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
