// Package yaml provides machine-readable YAML output
package yaml

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Renderer provides YAML output for machine consumption
type Renderer struct {
	output io.Writer
}

// New creates a new YAML renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders any result type as YAML
func (r *Renderer) RenderResult(result interface{}) error {
	encoder := yaml.NewEncoder(r.output)
	defer func() { _ = encoder.Close() }()
	encoder.SetIndent(2)
	return encoder.Encode(result)
}

// RenderError renders an error as YAML
func (r *Renderer) RenderError(err error) error {
	return r.RenderResult(map[string]string{"error": err.Error()})
}
