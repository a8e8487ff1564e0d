package ports

import (
	"context"

	"github.com/aretw0/strata/pkg/domain"
)

// FieldCache stores sampled fields keyed by a content hash of the request.
type FieldCache interface {
	// Get returns the cached field for key.
	// Returns domain.ErrCacheMiss if the key is absent.
	Get(ctx context.Context, key string) (*domain.Field, error)

	// Put stores the field under key, replacing any previous value.
	Put(ctx context.Context, key string, field *domain.Field) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
