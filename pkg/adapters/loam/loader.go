package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/source"
)

// Loader adapts a Loam repository of scene documents to ports.SceneLoader.
type Loader struct {
	Repo *loam.TypedRepository[SceneMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SceneMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scenes dir: %w", err)
	}
	repo, err := loam.Init(absPath, loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open scenes repository: %w", err)
	}
	return New(loam.NewTypedRepository[SceneMetadata](repo)), nil
}

// GetScene loads and decodes a scene document. The ID may be given with or
// without its file extension.
func (l *Loader) GetScene(ctx context.Context, id string) (domain.Scene, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err == nil {
		return toScene(doc.ID, doc.Data, doc.Content)
	}
	if !isNotFound(err) {
		return domain.Scene{}, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return l.byFrontmatterID(ctx, id)
}

// byFrontmatterID finds the document whose frontmatter id, rather than its
// path, matches id.
func (l *Loader) byFrontmatterID(ctx context.Context, id string) (domain.Scene, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return domain.Scene{}, fmt.Errorf("loam list failed: %w", err)
	}
	for _, doc := range docs {
		if doc.Data.ID != "" && trimExtension(doc.Data.ID) == id {
			return toScene(doc.ID, doc.Data, doc.Content)
		}
	}
	return domain.Scene{}, fmt.Errorf("%w: %s", domain.ErrSceneNotFound, id)
}

func toScene(docID string, meta SceneMetadata, content string) (domain.Scene, error) {
	rawID := meta.ID
	if rawID == "" {
		rawID = docID
	}
	scene := domain.Scene{
		ID:    trimExtension(rawID),
		Title: meta.Title,
	}
	if scene.Title == "" {
		scene.Title = firstHeading(content)
	}

	for i, raw := range meta.Sources {
		spec, err := source.DecodeSpec(raw)
		if err != nil {
			return domain.Scene{}, fmt.Errorf("scene %s: sources[%d]: %w", scene.ID, i, err)
		}
		scene.Sources = append(scene.Sources, spec)
	}

	if len(meta.Grid) > 0 {
		if err := source.Decode(meta.Grid, &scene.Grid); err != nil {
			return domain.Scene{}, fmt.Errorf("scene %s: grid: %w", scene.ID, err)
		}
	}

	for _, name := range meta.Components {
		c, err := domain.ParseComponent(name)
		if err != nil {
			return domain.Scene{}, fmt.Errorf("scene %s: %w", scene.ID, err)
		}
		scene.Components = append(scene.Components, c)
	}

	return scene, nil
}

// ListScenes lists all scene IDs in the repository.
func (l *Loader) ListScenes(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

// Watch implements ports.Watchable. It emits the ID of every changed scene document.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}

func isNotFound(err error) bool {
	if errors.Is(err, domain.ErrSceneNotFound) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no such file")
}
