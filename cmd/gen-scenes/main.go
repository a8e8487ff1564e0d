package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/loam"
	loamAdapter "github.com/aretw0/strata/pkg/adapters/loam"
)

type sceneDoc struct {
	meta    loamAdapter.SceneMetadata
	content string
}

var scenes = []sceneDoc{
	{
		meta: loamAdapter.SceneMetadata{
			ID:    "point",
			Title: "Unit point source",
			Sources: []map[string]any{
				{"type": "point", "position": []float64{0, 0, 0}, "vector": []float64{1, 0, 0}},
			},
			Grid:       map[string]any{"min": -5, "max": 5, "n": 51, "z": 1},
			Components: []string{"Sxx", "Sxy", "Syy"},
		},
		content: "# Unit point source\n\nAn x-directed point discontinuity in a unit-shear medium, sampled one unit above its plane.",
	},
	{
		meta: loamAdapter.SceneMetadata{
			ID:    "triangle",
			Title: "Triangular dislocation",
			Sources: []map[string]any{
				{
					"type":     "triangle",
					"vertices": [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
					"burgers":  []float64{1e-6, 0, 0},
					"shear":    30e9,
					"poisson":  0.25,
					"gauss":    6,
				},
			},
			Grid: map[string]any{"min": -1, "max": 2, "n": 61, "z": 0.5},
		},
		content: "# Triangular dislocation\n\nA 1 micron slip on a right triangle in granite-like rock.",
	},
	{
		meta: loamAdapter.SceneMetadata{
			ID:    "original",
			Title: "Reference triangle",
			Sources: []map[string]any{
				{
					"type":     "triangle",
					"vertices": [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
					"burgers":  []float64{1, 0, -1},
					"shear":    1,
					"poisson":  0.25,
					"gauss":    8,
				},
			},
			Grid:       map[string]any{"min": -5, "max": 5, "n": 51, "z": 1},
			Components: []string{"Sxx", "Sxy", "Sxz", "Syy", "Syz", "Szz"},
		},
		content: "# Reference triangle\n\nUnit triangle with an opening and in-plane slip, every component on the 51 x 51 reference grid.",
	},
	{
		// Trailing whitespace checks that loam trims document bodies.
		meta: loamAdapter.SceneMetadata{
			ID: "dipole",
			Sources: []map[string]any{
				{"type": "point", "position": []float64{-1, 0, 0}, "vector": []float64{1, 0, 0}},
				{"type": "point", "position": []float64{1, 0, 0}, "vector": []float64{-1, 0, 0}},
			},
			Components: []string{"Sxx", "Szz"},
		},
		content: "# Opposing point pair\n\nTwo point sources pushing towards each other.\n\n\n   ",
	},
}

func main() {
	targetDir := "examples/scenes"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	fmt.Printf("Generating scenes in: %s\n", targetDir)
	check(generate(context.TODO(), targetDir))
	fmt.Println("Done. Verify contents in", targetDir)
}

// generate writes every example scene into dir without versioning.
func generate(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	repo, err := loam.Init(dir, loam.WithVersioning(false))
	if err != nil {
		return err
	}
	typedRepo := loam.NewTypedRepository[loamAdapter.SceneMetadata](repo)

	for _, s := range scenes {
		err := typedRepo.Save(ctx, &loam.DocumentModel[loamAdapter.SceneMetadata]{
			ID:      s.meta.ID,
			Content: s.content,
			Data:    s.meta,
		})
		if err != nil {
			return fmt.Errorf("failed to save scene %s: %w", s.meta.ID, err)
		}
	}
	return nil
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
