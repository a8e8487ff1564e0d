/*
Package dsl provides a fluent Go builder for Strata scenes.

It is the programmatic alternative to scene documents: sources, sampling grid
and components are declared in code and compiled into a memory loader that
the engine, the plot driver and the API adapters accept.

Example usage:

	b := dsl.New()

	b.Add("dipole").
		Title("Opposing point pair").
		Point(-1, 0, 0).Vector(1, 0, 0).
		Point(1, 0, 0).Vector(-1, 0, 0).
		Grid(-3, 3, 41, 0.5).
		Components(domain.Sxx, domain.Szz)

	loader, err := b.Build()
	// ... pass loader to strata.New("", strata.WithLoader(loader))
*/
package dsl
