package build

import "path/filepath"

// ArtifactPattern matches every shared object a native build may produce.
const ArtifactPattern = "*.{so,dylib,dll,pyd}"

// LibraryFileName returns the shared library name for base on goos:
// lib<base>.dylib on darwin, <base>.dll on windows, lib<base>.so elsewhere.
func LibraryFileName(goos, base string) string {
	switch goos {
	case "darwin":
		return "lib" + base + ".dylib"
	case "windows":
		return base + ".dll"
	default:
		return "lib" + base + ".so"
	}
}

// BindingFileName returns the extension module name for base on goos.
// The interpreter loads <base>.pyd on windows and <base>.so everywhere else,
// macOS included.
func BindingFileName(goos, base string) string {
	if goos == "windows" {
		return base + ".pyd"
	}
	return base + ".so"
}

// ActivationHint is the shell line that activates the virtual environment.
func ActivationHint(goos, venvPath string) string {
	if goos == "windows" {
		return venvPath + `\Scripts\activate`
	}
	return "source " + filepath.ToSlash(filepath.Join(venvPath, "bin", "activate"))
}
