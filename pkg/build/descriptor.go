package build

import (
	"bytes"
	"fmt"
	"text/template"
)

// DescriptorFile is the name of the generated package descriptor.
const DescriptorFile = "pyproject.toml"

var descriptorTemplate = template.Must(template.New(DescriptorFile).Parse(`[build-system]
requires = ["setuptools>=61", "wheel"]
build-backend = "setuptools.build_meta"

[project]
name = "{{ .Name }}"
version = "{{ .Version }}"
description = "Stress field evaluation for point and triangular dislocation sources"
requires-python = ">=3.8"

[tool.setuptools]
py-modules = []
include-package-data = false

[tool.setuptools.data-files]
"lib/site-packages" = [{{ range $i, $f := .Files }}{{ if $i }}, {{ end }}"{{ $f }}"{{ end }}]
`))

// Descriptor is the data rendered into pyproject.toml.
type Descriptor struct {
	Name    string
	Version string
	Files   []string // Native files shipped next to the descriptor
}

// Render produces the descriptor text.
func (d Descriptor) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := descriptorTemplate.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", DescriptorFile, err)
	}
	return buf.Bytes(), nil
}
