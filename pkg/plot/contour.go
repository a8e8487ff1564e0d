package plot

import (
	"github.com/aretw0/strata/pkg/domain"
	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is one straight piece of an iso-line in grid coordinates (x, y).
type Segment struct {
	A, B r2.Vec
}

// Cell edges, counter-clockwise from the bottom: 0 (x_i..x_i+1 at y_j),
// 1 (right), 2 (top), 3 (left).
var edgePairs = [16][][2]int{
	0:  nil,
	1:  {{3, 0}},
	2:  {{0, 1}},
	3:  {{3, 1}},
	4:  {{1, 2}},
	5:  nil, // saddle
	6:  {{0, 2}},
	7:  {{3, 2}},
	8:  {{3, 2}},
	9:  {{0, 2}},
	10: nil, // saddle
	11: {{1, 2}},
	12: {{3, 1}},
	13: {{0, 1}},
	14: {{3, 0}},
	15: nil,
}

// IsoLines traces the level set f == level with marching squares. Ambiguous
// saddle cells are resolved with the cell-center average.
func IsoLines(f *domain.Field, level float64) []Segment {
	n := f.Size()
	g := f.Grid
	var segs []Segment

	for i := 0; i < n-1; i++ {
		x0, x1 := g.Coord(i), g.Coord(i+1)
		for j := 0; j < n-1; j++ {
			y0, y1 := g.Coord(j), g.Coord(j+1)
			// Corners counter-clockwise from (x_i, y_j).
			v := [4]float64{f.At(i, j), f.At(i+1, j), f.At(i+1, j+1), f.At(i, j+1)}
			p := [4]r2.Vec{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}

			idx := 0
			for k, val := range v {
				if val >= level {
					idx |= 1 << k
				}
			}

			pairs := edgePairs[idx]
			if idx == 5 || idx == 10 {
				centerAbove := (v[0]+v[1]+v[2]+v[3])/4 >= level
				if (idx == 5) == centerAbove {
					pairs = [][2]int{{0, 1}, {2, 3}}
				} else {
					pairs = [][2]int{{3, 0}, {1, 2}}
				}
			}

			for _, pr := range pairs {
				segs = append(segs, Segment{
					A: crossing(p, v, pr[0], level),
					B: crossing(p, v, pr[1], level),
				})
			}
		}
	}
	return segs
}

// crossing interpolates where the level crosses cell edge e.
func crossing(p [4]r2.Vec, v [4]float64, e int, level float64) r2.Vec {
	a, b := e, (e+1)%4
	t := 0.5
	if d := v[b] - v[a]; d != 0 {
		t = (level - v[a]) / d
	}
	return r2.Add(p[a], r2.Scale(t, r2.Sub(p[b], p[a])))
}
