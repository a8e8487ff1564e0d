package domain

import "errors"

// ErrUnsupportedQuadrature is returned when a Gauss-Legendre order has no rule.
var ErrUnsupportedQuadrature = errors.New("unsupported number of gauss points")

// ErrInvalidGrid is returned when a grid specification cannot be sampled.
var ErrInvalidGrid = errors.New("invalid grid")

// ErrInvalidMaterial is returned for physically meaningless elastic constants.
var ErrInvalidMaterial = errors.New("invalid material")

// ErrUnknownComponent is returned when a tensor component name is not recognised.
var ErrUnknownComponent = errors.New("unknown stress component")

// ErrUnknownSourceType is returned when a source specification names an unknown type.
var ErrUnknownSourceType = errors.New("unknown source type")

// ErrInvalidSource is returned when a source specification is incomplete.
var ErrInvalidSource = errors.New("invalid source")

// ErrInvalidCoordinates is returned when a flat coordinate slice is not made of xyz triples.
var ErrInvalidCoordinates = errors.New("coordinates must be xyz triples")

// ErrArtifactNotFound is returned when an expected build artifact is missing.
var ErrArtifactNotFound = errors.New("artifact not found")

// ErrSceneNotFound is returned when a scene ID cannot be found by the loader.
var ErrSceneNotFound = errors.New("scene not found")

// ErrCacheMiss is returned by field caches when a key is absent.
var ErrCacheMiss = errors.New("cache miss")
