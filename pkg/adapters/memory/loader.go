package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/strata/pkg/domain"
)

// Loader implements ports.SceneLoader using an in-memory map.
type Loader struct {
	scenes map[string]domain.Scene
}

// NewLoader creates a Loader holding the given scenes.
// This is the quickest way to feed scenes to the plot driver in tests.
func NewLoader(scenes ...domain.Scene) (*Loader, error) {
	data := make(map[string]domain.Scene, len(scenes))
	for _, s := range scenes {
		if s.ID == "" {
			return nil, fmt.Errorf("scene missing ID")
		}
		if _, dup := data[s.ID]; dup {
			return nil, fmt.Errorf("duplicate scene ID: %s", s.ID)
		}
		data[s.ID] = s
	}
	return &Loader{scenes: data}, nil
}

// GetScene returns the scene with the given ID.
func (l *Loader) GetScene(ctx context.Context, id string) (domain.Scene, error) {
	s, ok := l.scenes[id]
	if !ok {
		return domain.Scene{}, fmt.Errorf("%w: %s", domain.ErrSceneNotFound, id)
	}
	return s, nil
}

// ListScenes returns all scene IDs.
func (l *Loader) ListScenes(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.scenes))
	for k := range l.scenes {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
