package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/bmatcuk/doublestar/v4"
)

// EnsureDependency clones the binding generator unless it is already present.
func EnsureDependency() Step {
	return Step{Name: StepEnsureDependency, run: func(ctx context.Context, s *session) (Status, string, error) {
		dir := s.cfg.Path(s.cfg.DependencyDir)
		if dirExists(dir) {
			s.printf("%s repository already exists.", s.cfg.DependencyDir)
			return Skipped, dir + " exists", nil
		}
		s.printf("Cloning %s repository...", s.cfg.DependencyDir)
		if _, err := s.exec(ctx, s.cfg.WorkDir, "git", "clone", s.cfg.DependencyRepo, s.cfg.DependencyDir); err != nil {
			return Done, "", err
		}
		return Done, "cloned " + s.cfg.DependencyRepo, nil
	}}
}

// SetupVenv creates the virtual environment unless it exists, then prints
// how to activate it.
func SetupVenv() Step {
	return Step{Name: StepSetupVenv, run: func(ctx context.Context, s *session) (Status, string, error) {
		s.printf("Setting up virtual environment...")
		venv := s.cfg.Path(s.cfg.VenvDir)
		status := Skipped
		if !dirExists(venv) {
			if _, err := s.exec(ctx, s.cfg.WorkDir, s.cfg.Python, "-m", "pip", "install", "virtualenv"); err != nil {
				return Done, "", err
			}
			if _, err := s.exec(ctx, s.cfg.WorkDir, s.cfg.Python, "-m", "virtualenv", s.cfg.VenvDir); err != nil {
				return Done, "", err
			}
			status = Done
		}

		abs, err := filepath.Abs(venv)
		if err != nil {
			abs = venv
		}
		s.printf("\nTo activate the virtual environment, run:")
		s.printf("%s", ActivationHint(s.cfg.GOOS, abs))
		return status, abs, nil
	}}
}

// BuildLibrary configures the native project, builds both deliverables and
// copies their artifacts into the bin directory under platform names. A
// missing artifact is reported as a soft failure.
func BuildLibrary() Step {
	return Step{Name: StepBuildLibrary, run: func(ctx context.Context, s *session) (Status, string, error) {
		s.printf("Building %s library...", s.cfg.BindingTarget)
		buildDir := s.cfg.Path(s.cfg.BuildDir)
		if err := s.mkdir(buildDir); err != nil {
			return Done, "", err
		}

		if _, err := s.exec(ctx, buildDir, "cmake", ".."); err != nil {
			return Done, "", err
		}
		if _, err := s.exec(ctx, buildDir, "make", s.cfg.LibraryTarget); err != nil {
			return Done, "", err
		}
		if _, err := s.exec(ctx, buildDir, "make", s.cfg.BindingTarget); err != nil {
			return Done, "", err
		}

		binDir := s.cfg.Path(s.cfg.BinDir)
		if err := s.mkdir(binDir); err != nil {
			return Done, "", err
		}

		deliverables := []struct{ target, file string }{
			{s.cfg.LibraryTarget, s.cfg.LibraryFile()},
			{s.cfg.BindingTarget, s.cfg.BindingFile()},
		}
		var missing []string
		for _, d := range deliverables {
			if s.dryRun {
				s.printf("Would copy %s artifact from %s to %s", d.target, buildDir, filepath.Join(binDir, d.file))
				continue
			}
			src, err := findArtifact(buildDir, d.target)
			if err != nil {
				return Done, "", err
			}
			if src == "" {
				s.printf("Could not find generated %s library file.", d.target)
				s.logger.Warn("artifact not found", "target", d.target, "dir", buildDir)
				missing = append(missing, d.target)
				continue
			}
			dst := filepath.Join(binDir, d.file)
			if err := copyFile(src, dst); err != nil {
				return Done, "", err
			}
			s.printf("Copied %s to %s", src, dst)
		}

		if len(missing) > 0 {
			return SoftFailed, "missing artifacts: " + strings.Join(missing, ", "), nil
		}
		return Done, binDir, nil
	}}
}

// AssemblePackage copies both artifacts into the package directory and
// writes the descriptor. Any missing artifact stops the pipeline.
func AssemblePackage() Step {
	return Step{Name: StepAssemblePackage, run: func(ctx context.Context, s *session) (Status, string, error) {
		binDir := s.cfg.Path(s.cfg.BinDir)
		pkgDir := s.cfg.Path(s.cfg.PackageDir)
		files := []string{s.cfg.BindingFile(), s.cfg.LibraryFile()}

		if s.dryRun {
			for _, f := range files {
				s.printf("Would copy %s to %s", filepath.Join(binDir, f), filepath.Join(pkgDir, f))
			}
			s.printf("Would write %s", filepath.Join(pkgDir, DescriptorFile))
			return Done, pkgDir, nil
		}

		for _, f := range files {
			if !fileExists(filepath.Join(binDir, f)) {
				return Done, "", fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, filepath.Join(binDir, f))
			}
		}
		if err := s.mkdir(pkgDir); err != nil {
			return Done, "", err
		}
		for _, f := range files {
			if err := copyFile(filepath.Join(binDir, f), filepath.Join(pkgDir, f)); err != nil {
				return Done, "", err
			}
		}

		desc, err := Descriptor{Name: s.cfg.BindingTarget, Version: s.cfg.Version, Files: files}.Render()
		if err != nil {
			return Done, "", err
		}
		if err := os.WriteFile(filepath.Join(pkgDir, DescriptorFile), desc, 0o644); err != nil {
			return Done, "", fmt.Errorf("failed to write descriptor: %w", err)
		}
		s.printf("Assembled package in %s", pkgDir)
		return Done, pkgDir, nil
	}}
}

// CreateWheel builds a wheel from the package directory.
func CreateWheel() Step {
	return Step{Name: StepCreateWheel, run: func(ctx context.Context, s *session) (Status, string, error) {
		s.printf("Creating wheel package...")
		wheelDir, err := filepath.Abs(s.cfg.Path(s.cfg.WheelDir))
		if err != nil {
			return Done, "", fmt.Errorf("failed to resolve wheel dir: %w", err)
		}
		if _, err := s.exec(ctx, s.cfg.Path(s.cfg.PackageDir), s.cfg.Python, "-m", "pip", "wheel", ".", "-w", wheelDir); err != nil {
			return Done, "", err
		}
		if s.dryRun {
			s.wheel = filepath.Join(wheelDir, s.cfg.BindingTarget+"-"+s.cfg.Version+"-*.whl")
			return Done, s.wheel, nil
		}

		wheel, err := findWheel(wheelDir, s.cfg.BindingTarget)
		if err != nil {
			return Done, "", err
		}
		if wheel == "" {
			s.printf("No wheel was created!")
			return SoftFailed, "no wheel in " + wheelDir, nil
		}
		s.wheel = wheel
		s.printf("Created wheel: %s", wheel)
		return Done, wheel, nil
	}}
}

// InstallWheel force-installs the wheel produced by CreateWheel, or the
// newest matching wheel in the wheel directory.
func InstallWheel() Step {
	return Step{Name: StepInstallWheel, run: func(ctx context.Context, s *session) (Status, string, error) {
		wheel := s.wheel
		if wheel == "" && !s.dryRun {
			found, err := findWheel(s.cfg.Path(s.cfg.WheelDir), s.cfg.BindingTarget)
			if err != nil {
				return Done, "", err
			}
			wheel = found
		}
		if wheel == "" || (!s.dryRun && !fileExists(wheel)) {
			s.printf("No wheel file found to install!")
			return SoftFailed, "no wheel to install", nil
		}

		s.printf("Installing wheel: %s", wheel)
		if _, err := s.exec(ctx, s.cfg.WorkDir, s.cfg.Python, "-m", "pip", "install", wheel, "--force-reinstall"); err != nil {
			return Done, "", err
		}
		s.printf("Wheel installed successfully!")
		return Done, wheel, nil
	}}
}

func (s *session) mkdir(dir string) error {
	if s.dryRun {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// findArtifact returns the first shared object under dir whose name contains target.
func findArtifact(dir, target string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/"+ArtifactPattern)
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		if strings.Contains(filepath.Base(m), target) {
			return filepath.Join(dir, filepath.FromSlash(m)), nil
		}
	}
	return "", nil
}

// findWheel returns the most recently modified <name>-*.whl in dir.
func findWheel(dir, name string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), name+"-*.whl")
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	var newest string
	var newestMod int64
	for _, m := range matches {
		p := filepath.Join(dir, m)
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest, newestMod = p, mod
		}
	}
	return newest, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
