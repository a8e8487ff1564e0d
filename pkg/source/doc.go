/*
Package source implements the stress-field evaluators.

Two source models are provided:

  - PointSource: the elastic fundamental solution for a displacement
    discontinuity concentrated at a point. Displacement gradients are built
    from terms up to r^-5 and converted to stress with Hooke's law, so both
    deviatoric and volumetric responses (both Lamé parameters) are present.
  - TriangleSource: a triangular dislocation element. The stress is the sum of
    line integrals along the three edges, evaluated with Gauss-Legendre
    quadrature (2, 3, 4, 5, 6, 8 or 10 points per edge).

Both satisfy ports.Evaluator and are immutable after construction, so a
single value can be shared by any number of goroutines. Superposition sums
several evaluators, which is exact for linear elasticity.

At the source itself (distance below 1e-10) the fields are singular; the
evaluators report a zero tensor there instead of Inf or NaN.
*/
package source
