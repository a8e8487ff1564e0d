package source

import (
	"fmt"
	"strings"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// Decode converts loosely typed input (YAML/JSON maps, frontmatter) into v
// using the mapstructure tags of the domain types. Numbers may arrive as
// ints, floats, strings or json.Number.
func Decode(input any, v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// DecodeSpec decodes a single source description.
func DecodeSpec(raw map[string]any) (domain.SourceSpec, error) {
	var spec domain.SourceSpec
	if err := Decode(raw, &spec); err != nil {
		return domain.SourceSpec{}, fmt.Errorf("%w: %v", domain.ErrInvalidSource, err)
	}
	return spec, nil
}

// FromSpec builds the evaluator described by spec.
// A zero material selects domain.DefaultMaterial; a zero Gauss count selects DefaultGaussPoints.
func FromSpec(spec domain.SourceSpec) (ports.Evaluator, error) {
	m := domain.Material{Shear: spec.Shear, Poisson: spec.Poisson}
	if m == (domain.Material{}) {
		m = domain.DefaultMaterial
	}

	switch strings.ToLower(spec.Type) {
	case domain.SourceTypePoint:
		pos := domain.Vec3{}
		if len(spec.Position) > 0 {
			var err error
			if pos, err = domain.VecFromSlice(spec.Position); err != nil {
				return nil, fmt.Errorf("%w: position: %v", domain.ErrInvalidSource, err)
			}
		}
		u, err := domain.VecFromSlice(spec.Vector)
		if err != nil {
			return nil, fmt.Errorf("%w: vector: %v", domain.ErrInvalidSource, err)
		}
		return NewPointSource(pos, u, WithMaterial(m))

	case domain.SourceTypeTriangle:
		if len(spec.Vertices) != 3 {
			return nil, fmt.Errorf("%w: triangle needs 3 vertices, got %d", domain.ErrInvalidSource, len(spec.Vertices))
		}
		var v [3]domain.Vec3
		for i, raw := range spec.Vertices {
			vv, err := domain.VecFromSlice(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: vertex %d: %v", domain.ErrInvalidSource, i+1, err)
			}
			v[i] = vv
		}
		b, err := domain.VecFromSlice(spec.Burgers)
		if err != nil {
			return nil, fmt.Errorf("%w: burgers: %v", domain.ErrInvalidSource, err)
		}
		n := spec.Gauss
		if n == 0 {
			n = DefaultGaussPoints
		}
		return NewTriangleSource(v[0], v[1], v[2], b, m, n)

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSourceType, spec.Type)
	}
}

// FromSpecs builds the superposition of every spec. A single spec is returned unwrapped.
func FromSpecs(specs []domain.SourceSpec) (ports.Evaluator, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no sources given", domain.ErrInvalidSource)
	}
	sum := make(Superposition, 0, len(specs))
	for i, spec := range specs {
		e, err := FromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		sum = append(sum, e)
	}
	if len(sum) == 1 {
		return sum[0], nil
	}
	return sum, nil
}

// FromScene builds the evaluator for every source in the scene.
func FromScene(s domain.Scene) (ports.Evaluator, error) {
	e, err := FromSpecs(s.Sources)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.ID, err)
	}
	return e, nil
}
