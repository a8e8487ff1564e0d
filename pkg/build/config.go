package build

import (
	"path/filepath"
	"runtime"
)

// Config locates the build inputs and outputs. Relative paths resolve
// against WorkDir.
type Config struct {
	WorkDir        string `json:"work_dir" yaml:"work_dir" mapstructure:"work_dir"`
	DependencyRepo string `json:"dependency_repo" yaml:"dependency_repo" mapstructure:"dependency_repo"`
	DependencyDir  string `json:"dependency_dir" yaml:"dependency_dir" mapstructure:"dependency_dir"`
	VenvDir        string `json:"venv_dir" yaml:"venv_dir" mapstructure:"venv_dir"`
	BuildDir       string `json:"build_dir" yaml:"build_dir" mapstructure:"build_dir"`
	BinDir         string `json:"bin_dir" yaml:"bin_dir" mapstructure:"bin_dir"`
	LibraryTarget  string `json:"library_target" yaml:"library_target" mapstructure:"library_target"`
	BindingTarget  string `json:"binding_target" yaml:"binding_target" mapstructure:"binding_target"`
	PackageDir     string `json:"package_dir" yaml:"package_dir" mapstructure:"package_dir"`
	WheelDir       string `json:"wheel_dir" yaml:"wheel_dir" mapstructure:"wheel_dir"`
	Version        string `json:"version" yaml:"version" mapstructure:"version"`
	Python         string `json:"python" yaml:"python" mapstructure:"python"`
	GOOS           string `json:"goos" yaml:"goos" mapstructure:"goos"`
}

// DefaultConfig returns the layout used by the reference project.
func DefaultConfig() Config {
	return Config{
		WorkDir:        ".",
		DependencyRepo: "https://github.com/pybind/pybind11.git",
		DependencyDir:  "pybind11",
		VenvDir:        "project_env",
		BuildDir:       "build",
		BinDir:         "../../bin",
		LibraryTarget:  "cpplib",
		BindingTarget:  "pyalgo",
		PackageDir:     "dist/pyalgo",
		WheelDir:       "dist",
		Version:        "0.1.0",
		Python:         "python3",
		GOOS:           runtime.GOOS,
	}
}

// WithDefaults fills every empty field from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.WorkDir, d.WorkDir)
	fill(&c.DependencyRepo, d.DependencyRepo)
	fill(&c.DependencyDir, d.DependencyDir)
	fill(&c.VenvDir, d.VenvDir)
	fill(&c.BuildDir, d.BuildDir)
	fill(&c.BinDir, d.BinDir)
	fill(&c.LibraryTarget, d.LibraryTarget)
	fill(&c.BindingTarget, d.BindingTarget)
	fill(&c.PackageDir, d.PackageDir)
	fill(&c.WheelDir, d.WheelDir)
	fill(&c.Version, d.Version)
	fill(&c.Python, d.Python)
	fill(&c.GOOS, d.GOOS)
	return c
}

// Path resolves p against WorkDir.
func (c Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.WorkDir, p)
}

// LibraryFile is the platform file name of the computational library.
func (c Config) LibraryFile() string {
	return LibraryFileName(c.GOOS, c.LibraryTarget)
}

// BindingFile is the platform file name of the binding module.
func (c Config) BindingFile() string {
	return BindingFileName(c.GOOS, c.BindingTarget)
}
