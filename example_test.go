package strata_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
)

// ExampleNew_memory renders a scene defined in Go instead of a document.
func ExampleNew_memory() {
	loader, err := memory.NewLoader(domain.Scene{
		ID: "point",
		Sources: []domain.SourceSpec{
			{Type: domain.SourceTypePoint, Position: []float64{0, 0, 0}, Vector: []float64{1, 0, 0}},
		},
		Grid: domain.GridSpec{Min: -2, Max: 2, N: 6, Z: 0},
	})
	if err != nil {
		log.Fatal(err)
	}

	// No directory needed because we are providing a loader.
	eng, err := strata.New("", strata.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	scene, err := eng.Scene(ctx, "point")
	if err != nil {
		log.Fatal(err)
	}

	dir, err := os.MkdirTemp("", "strata-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	outcomes, err := eng.Plot(ctx, scene, dir)
	if err != nil {
		log.Fatal(err)
	}
	for _, o := range outcomes {
		if o.Skipped {
			fmt.Println(o.Component, "uniform")
			continue
		}
		fmt.Println(o.Component, "written")
	}

	// Output:
	// Sxx written
	// Sxy written
	// Sxz written
	// Syy written
	// Syz uniform
	// Szz written
}

// ExampleEngine_Evaluate evaluates a unit point source along its axis.
func ExampleEngine_Evaluate() {
	loader, _ := memory.NewLoader()
	eng, err := strata.New("", strata.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	stresses, err := eng.Evaluate(
		[]domain.SourceSpec{{Type: domain.SourceTypePoint, Vector: []float64{1, 0, 0}}},
		[]domain.Vec3{domain.V(1, 0, 0), domain.V(0, 0, 0)},
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Sxx=%.4g Sxy=%.4g\n", stresses[0][domain.Sxx], stresses[0][domain.Sxy])
	fmt.Println("at the source:", stresses[1].IsZero())

	// Output:
	// Sxx=-3 Sxy=-1
	// at the source: true
}
