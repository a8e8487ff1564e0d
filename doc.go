/*
Package strata evaluates elastic stress fields of point and triangular
dislocation sources, samples them over planar grids and renders contour
figures.

# Concept

A source is any ports.Evaluator: given a point it returns the six independent
entries of the symmetric stress tensor in the order Sxx, Sxy, Sxz, Syy, Syz,
Szz. Sources are immutable and safe for concurrent use, so grids are sampled
in parallel and sampled fields can be cached by content.

Scenes group sources with a grid and the components to plot. They are read
from Markdown/JSON/YAML documents through Loam, or injected with WithLoader.

# Usage

	eng, err := strata.New("./scenes")
	if err != nil {
		log.Fatal(err)
	}

	scene, err := eng.Scene(ctx, "fault-patch")
	if err != nil {
		log.Fatal(err)
	}

	// One PNG per non-uniform component.
	outcomes, err := eng.Plot(ctx, scene, "figures")

For single evaluations without scenes use pkg/source directly:

	p, _ := source.NewPointSource(domain.V(0, 0, 0), domain.V(1, 0, 0))
	s := p.Stress(domain.V(1, 2, 3))
*/
package strata
