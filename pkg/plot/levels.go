package plot

import "gonum.org/v1/gonum/floats"

// IsoLineStride selects which filled levels also get an iso-line.
const IsoLineStride = 3

// Levels returns n evenly spaced contour levels from lo to hi inclusive.
// n below 2 is raised to 2.
func Levels(lo, hi float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// IsoLevels returns every IsoLineStride-th level, starting with the first.
func IsoLevels(levels []float64) []float64 {
	out := make([]float64, 0, len(levels)/IsoLineStride+1)
	for i := 0; i < len(levels); i += IsoLineStride {
		out = append(out, levels[i])
	}
	return out
}

// Band returns the index k of the band levels[k] <= v < levels[k+1],
// clamped to [0, len(levels)-2].
func Band(levels []float64, v float64) int {
	last := len(levels) - 2
	if last < 0 {
		return 0
	}
	lo, hi := 0, last
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if levels[mid] <= v {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
