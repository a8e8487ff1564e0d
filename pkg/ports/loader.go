package ports

import (
	"context"

	"github.com/aretw0/strata/pkg/domain"
)

// SceneLoader provides scene definitions.
type SceneLoader interface {
	// GetScene returns the scene with the given ID.
	// Returns domain.ErrSceneNotFound if it does not exist.
	GetScene(ctx context.Context, id string) (domain.Scene, error)

	// ListScenes returns the IDs of every known scene.
	ListScenes(ctx context.Context) ([]string, error)
}

// Watchable is implemented by loaders that can report changes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan string, error)
}
