package schema

import (
	"fmt"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/source"
)

// ValidateScene checks that a scene can be sampled: it has an ID, at least
// one buildable source, a valid grid (when set) and valid components.
// Returns an *AggregateError with all failures found.
func ValidateScene(s domain.Scene) error {
	var errs []error

	if s.ID == "" {
		errs = append(errs, &ValidationError{Key: "id", Reason: "required"})
	}

	if len(s.Sources) == 0 {
		errs = append(errs, &ValidationError{Key: "sources", Reason: "at least one source is required", Err: domain.ErrInvalidSource})
	}
	for i, spec := range s.Sources {
		if _, err := source.FromSpec(spec); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fmt.Sprintf("sources[%d]", i),
				Reason: err.Error(),
				Value:  spec.Type,
				Err:    err,
			})
		}
	}

	if s.Grid != (domain.GridSpec{}) {
		if err := s.Grid.Validate(); err != nil {
			errs = append(errs, &ValidationError{Key: "grid", Reason: err.Error(), Err: err})
		}
	}

	seen := make(map[domain.Component]bool, len(s.Components))
	for i, c := range s.Components {
		key := fmt.Sprintf("components[%d]", i)
		switch {
		case !c.Valid():
			errs = append(errs, &ValidationError{Key: key, Reason: "unknown component", Value: int(c), Err: domain.ErrUnknownComponent})
		case seen[c]:
			errs = append(errs, &ValidationError{Key: key, Reason: "duplicate component", Value: c.String()})
		}
		seen[c] = true
	}

	if len(errs) > 0 {
		return &AggregateError{Scene: s.ID, Errors: errs}
	}
	return nil
}
