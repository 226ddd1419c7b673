package template

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores parsed templates by name. It is populated once at startup
// and read-only afterward, so it is safe to share across concurrent render
// operations.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*Template),
	}
}

// LoadRegistry parses every definition eagerly and returns a populated
// registry. Any malformed template aborts the load; a broken rule set must
// not reach render time. Definitions are parsed in name order so failures are
// deterministic.
func LoadRegistry(definitions map[string]string) (*Registry, error) {
	registry := NewRegistry()

	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tmpl, err := New(name, definitions[name])
		if err != nil {
			return nil, fmt.Errorf("template: load registry: %w", err)
		}
		if err := registry.Add(tmpl); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Add registers a template by its Name(). Duplicate names return an error.
func (r *Registry) Add(tmpl *Template) error {
	if tmpl == nil {
		return fmt.Errorf("template: template is required")
	}
	if tmpl.name == "" {
		return fmt.Errorf("template: template name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[tmpl.name]; exists {
		return fmt.Errorf("template: %q already registered", tmpl.name)
	}

	r.templates[tmpl.name] = tmpl
	return nil
}

// Get retrieves a template by name.
func (r *Registry) Get(name string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.templates[name]
	if !ok {
		return nil, &UnknownTemplateError{Name: name}
	}
	return tmpl, nil
}

// MustGet panics if the template is missing. Useful for init-time wiring.
func (r *Registry) MustGet(name string) *Template {
	tmpl, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// NewInstance looks up the named template and returns a fresh instance of it.
func (r *Registry) NewInstance(name string) (*Instance, error) {
	tmpl, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return tmpl.NewInstance(), nil
}

// List returns a sorted list of template names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a template is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.templates[name]
	return ok
}
