package domain

// Source types understood by SourceSpec.
const (
	SourceTypePoint    = "point"
	SourceTypeTriangle = "triangle"
)

// SourceSpec is the serialisable description of a stress source.
// Point sources use Position and Vector; triangle sources use Vertices and Burgers.
type SourceSpec struct {
	Type     string      `json:"type" yaml:"type" mapstructure:"type"`
	Position []float64   `json:"position,omitempty" yaml:"position,omitempty" mapstructure:"position"`
	Vector   []float64   `json:"vector,omitempty" yaml:"vector,omitempty" mapstructure:"vector"`
	Vertices [][]float64 `json:"vertices,omitempty" yaml:"vertices,omitempty" mapstructure:"vertices"`
	Burgers  []float64   `json:"burgers,omitempty" yaml:"burgers,omitempty" mapstructure:"burgers"`
	Shear    float64     `json:"shear,omitempty" yaml:"shear,omitempty" mapstructure:"shear"`
	Poisson  float64     `json:"poisson,omitempty" yaml:"poisson,omitempty" mapstructure:"poisson"`
	Gauss    int         `json:"gauss,omitempty" yaml:"gauss,omitempty" mapstructure:"gauss"`
}

// Scene groups sources with the grid and components to sample.
type Scene struct {
	ID         string       `json:"id" yaml:"id" mapstructure:"id"`
	Title      string       `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Sources    []SourceSpec `json:"sources" yaml:"sources" mapstructure:"sources"`
	Grid       GridSpec     `json:"grid" yaml:"grid" mapstructure:"grid"`
	Components []Component  `json:"components,omitempty" yaml:"components,omitempty" mapstructure:"components"`
}

// RenderComponents returns the requested components, or all six when none are listed.
func (s Scene) RenderComponents() []Component {
	if len(s.Components) == 0 {
		return AllComponents()
	}
	return s.Components
}

// GridOrDefault returns the scene grid, substituting DefaultGrid when unset.
func (s Scene) GridOrDefault() GridSpec {
	if s.Grid == (GridSpec{}) {
		return DefaultGrid
	}
	return s.Grid
}
