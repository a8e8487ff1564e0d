package loam

// SceneMetadata is the frontmatter of a scene document.
// Nested values stay loosely typed and are decoded by the source package,
// which tolerates ints, floats and numeric strings.
type SceneMetadata struct {
	ID         string           `json:"id" mapstructure:"id"`
	Title      string           `json:"title" mapstructure:"title"`
	Sources    []map[string]any `json:"sources" mapstructure:"sources"`
	Grid       map[string]any   `json:"grid" mapstructure:"grid"`
	Components []string         `json:"components" mapstructure:"components"`
}
