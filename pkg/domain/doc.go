/*
Package domain contains the core value types of the strata stress engine.

It defines evaluation points, the 6-component symmetric stress tensor, elastic
material parameters, grid specifications and scene descriptions. The package
is kept pure and free of I/O, numerics libraries aside, so that adapters
(HTTP, MCP, Redis, Loam) can share the same vocabulary.

# Key Entities

  - Vec3: a point or vector in 3D space.
  - Stress: the tensor components in fixed order (Sxx, Sxy, Sxz, Syy, Syz, Szz).
  - Component: a named index into Stress.
  - Material: shear modulus and Poisson ratio.
  - GridSpec: a uniform square grid on a plane of constant z.
  - Scene: a set of sources plus the grid and components to render.
*/
package domain
