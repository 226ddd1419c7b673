package pongo

import (
	"fmt"

	"github.com/goliatone/go-idstring/pkg/template"
)

// Renderer serves identifier templates written in the filter-extended legacy
// syntax. It keeps the raw rule definitions and executes them through the
// Engine, converting a visitor's bindings into the flat strings and string
// slices pongo2 filters operate on.
type Renderer struct {
	engine      *Engine
	definitions map[string]string
}

// NewRenderer wraps the engine and rule definitions behind the
// orchestrator's rendering seam. A nil engine gets a fresh one.
func NewRenderer(engine *Engine, definitions map[string]string) *Renderer {
	if engine == nil {
		engine = New()
	}
	return &Renderer{engine: engine, definitions: definitions}
}

// Render looks up the named definition and executes it against the bindings.
func (r *Renderer) Render(templateName string, bindings template.Context) (string, error) {
	source, ok := r.definitions[templateName]
	if !ok {
		return "", fmt.Errorf("pongo: template %q not defined", templateName)
	}

	data := make(map[string]any, len(bindings))
	for name, value := range bindings {
		converted, err := convertValue(value)
		if err != nil {
			return "", fmt.Errorf("pongo: bind %q: %w", name, err)
		}
		data[name] = converted
	}
	return r.engine.RenderString(source, data)
}

// convertValue flattens a binding: sequences become string slices so filters
// like sort and join see the individual items, everything else renders to
// plain text.
func convertValue(v template.Value) (any, error) {
	if v.Kind() != template.KindSequence {
		return v.Render()
	}
	items := make([]string, 0, len(v.Items()))
	for _, item := range v.Items() {
		rendered, err := item.Render()
		if err != nil {
			return nil, err
		}
		items = append(items, rendered)
	}
	return items, nil
}
