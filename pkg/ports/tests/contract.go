package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// SceneLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.SceneLoader.
func SceneLoaderContractTest(t *testing.T, loader ports.SceneLoader, expected map[string]domain.Scene) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetScene_Success", func(t *testing.T) {
		for id, want := range expected {
			got, err := loader.GetScene(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting scene %s: %v", id, err)
			}
			if got.ID != id {
				t.Errorf("id mismatch: got %q, want %q", got.ID, id)
			}
			if len(got.Sources) != len(want.Sources) {
				t.Errorf("scene %s: got %d sources, want %d", id, len(got.Sources), len(want.Sources))
			}
			if got.GridOrDefault() != want.GridOrDefault() {
				t.Errorf("scene %s: grid mismatch: got %+v, want %+v", id, got.GridOrDefault(), want.GridOrDefault())
			}
		}
	})

	t.Run("GetScene_NotFound", func(t *testing.T) {
		_, err := loader.GetScene(ctx, "non-existent-scene")
		if !errors.Is(err, domain.ErrSceneNotFound) {
			t.Errorf("expected ErrSceneNotFound, got %v", err)
		}
	})

	t.Run("ListScenes", func(t *testing.T) {
		ids, err := loader.ListScenes(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing scenes: %v", err)
		}

		if len(ids) != len(expected) {
			t.Errorf("expected %d scenes, got %d", len(expected), len(ids))
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}

		for id := range expected {
			if !lookup[id] {
				t.Errorf("scene %s missing from list", id)
			}
		}
	})
}
