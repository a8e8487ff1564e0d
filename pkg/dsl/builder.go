package dsl

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/schema"
)

// Builder manages the scene set construction.
type Builder struct {
	scenes map[string]*SceneBuilder
}

// New creates a new scene set builder.
func New() *Builder {
	return &Builder{
		scenes: make(map[string]*SceneBuilder),
	}
}

// Add creates a new scene.
// If the scene already exists, it returns the existing builder.
func (b *Builder) Add(id string) *SceneBuilder {
	if sb, ok := b.scenes[id]; ok {
		return sb
	}
	sb := &SceneBuilder{
		scene: domain.Scene{ID: id},
	}
	b.scenes[id] = sb
	return sb
}

// Build validates every scene and compiles the set into a memory loader.
// All invalid scenes are reported together.
func (b *Builder) Build() (*memory.Loader, error) {
	ids := make([]string, 0, len(b.scenes))
	for id := range b.scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	scenes := make([]domain.Scene, 0, len(ids))
	var errs []error
	for _, id := range ids {
		s := b.scenes[id].Build()
		if err := schema.ValidateScene(s); err != nil {
			errs = append(errs, err)
			continue
		}
		scenes = append(scenes, s)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	loader, err := memory.NewLoader(scenes...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
