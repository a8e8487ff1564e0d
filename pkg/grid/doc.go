// Package grid samples stress evaluators over uniform square grids.
//
// Rows of a grid are evaluated concurrently by a bounded worker pool; the
// evaluator contract guarantees purity, so the result does not depend on the
// scheduling. CachedSampler adds a cache-aside layer keyed by a content hash
// of the sources, the grid and the component.
package grid
