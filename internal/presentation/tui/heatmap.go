package tui

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/plot"
	"github.com/muesli/termenv"
)

// asciiRamp shades cells when the profile has no colors.
const asciiRamp = " .:-=+*#%@"

// Heatmap prints f as colored cells, x to the right and y up, using at most
// width columns. Large grids are subsampled.
func Heatmap(w io.Writer, f *domain.Field, cm plot.Colormap, width int, profile termenv.Profile) {
	lo, hi := f.Range()
	n := f.Size()

	cols := width / 2
	if cols < 2 {
		cols = 2
	}
	step := 1
	for (n+step-1)/step > cols {
		step++
	}

	fmt.Fprintf(w, "%s  [%.4g, %.4g]\n", f.Component, lo, hi)
	for j := n - 1; j >= 0; j -= step {
		var b strings.Builder
		for i := 0; i < n; i += step {
			t := 0.5
			if hi > lo {
				t = (f.At(i, j) - lo) / (hi - lo)
			}
			if profile == termenv.Ascii {
				c := asciiRamp[int(t*float64(len(asciiRamp)-1)+0.5)]
				b.WriteByte(c)
				b.WriteByte(c)
				continue
			}
			b.WriteString(termenv.String("  ").Background(profile.Color(hex(cm(t)))).String())
		}
		fmt.Fprintln(w, b.String())
	}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
