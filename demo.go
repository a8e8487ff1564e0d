package strata

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/aretw0/strata/pkg/source"
)

// DemoCoordinates are the three sample points of the console demo, as flat xyz triples.
var DemoCoordinates = []float64{0, 1, 2, 3, 10, 20, 7, 6, 3}

// RunDemo evaluates a unit point source and a small triangular dislocation at
// DemoCoordinates and prints every tensor value on its own line.
func RunDemo(w io.Writer) error {
	point, err := source.NewPointSource(domain.V(0, 0, 0), domain.V(1, 0, 0))
	if err != nil {
		return err
	}

	// 1 micron slip along x in a 1 GPa shear modulus medium.
	triangle, err := source.NewTriangleSource(
		domain.V(0, 0, 0), domain.V(1, 0, 0), domain.V(0, 1, 0),
		domain.V(1e-6, 0, 0),
		domain.Material{Shear: 1e9, Poisson: 0.25},
		6,
	)
	if err != nil {
		return err
	}

	demos := []struct {
		name string
		e    ports.Evaluator
	}{
		{"point", point},
		{"triangle", triangle},
	}
	for _, d := range demos {
		if err := printBatch(w, d.name, d.e); err != nil {
			return err
		}
	}
	return nil
}

func printBatch(w io.Writer, name string, e ports.Evaluator) error {
	values, err := source.Batch(e, DemoCoordinates)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Start %s source...\n", name)
	for _, v := range values {
		fmt.Fprintln(w, strconv.FormatFloat(v, 'g', 6, 64))
	}
	fmt.Fprintln(w, "...End")
	return nil
}
