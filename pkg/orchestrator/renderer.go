package orchestrator

import (
	"github.com/goliatone/go-idstring/pkg/template"
)

// Renderer renders the named identifier template from the bindings a visitor
// accumulated. The core engine path resolves templates through the registry;
// alternative engines register under a name via WithRenderer and requests
// select them through Request.Renderer.
type Renderer interface {
	Render(templateName string, bindings template.Context) (string, error)
}

// RendererLegacy names the pongo-backed renderer registered by
// WithLegacyRules.
const RendererLegacy = "legacy"

// registryRenderer is the core engine path: instantiate, bind, render.
type registryRenderer struct {
	registry *template.Registry
}

func (r registryRenderer) Render(templateName string, bindings template.Context) (string, error) {
	inst, err := r.registry.NewInstance(templateName)
	if err != nil {
		return "", err
	}
	inst.Bind(bindings)
	return inst.Render()
}
