// Package pongo renders legacy rule files through pongo2. Early rule sets
// spelled list handling with filter chains ({{ chains|sort|join:";" }});
// the core engine's grammar has no filters, so those files go through this
// engine instead.
package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Engine satisfies the orchestrator's string-rendering seam using a
// pongo2 template set. Parsed templates are cached by source string.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// New constructs an Engine with the legacy filters registered.
func New() *Engine {
	registerDefaultFilters()
	return &Engine{
		set:       pongo2.NewSet("idstring", pongo2.MustNewLocalFileSystemLoader("")),
		templates: make(map[string]*pongo2.Template),
	}
}

// RenderString parses the template content and executes it against data.
// Values rendered through here should be plain strings or string slices;
// nested structures belong to the core engine.
func (e *Engine) RenderString(templateContent string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}

	tmpl, err := e.getTemplate(templateContent)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template string: %w", err)
	}
	return buf.String(), nil
}

// RegisterFilter exposes pongo2 filter registration for callers with rule
// files using filters beyond the built-in set.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}

func (e *Engine) getTemplate(content string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[content]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[content]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromString(content)
	if err != nil {
		return nil, fmt.Errorf("pongo: parse template string: %w", err)
	}
	e.templates[content] = tmpl
	return tmpl, nil
}

func registerDefaultFilters() {
	// pongo2 ships join but not sort; legacy rules chain them.
	if !pongo2.FilterExists("sort") {
		_ = pongo2.RegisterFilter("sort", filterSort)
	}
}

func filterSort(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if !in.CanSlice() {
		return in, nil
	}
	items := make([]string, 0, in.Len())
	in.Iterate(func(idx, count int, item, _ *pongo2.Value) bool {
		items = append(items, item.String())
		return true
	}, func() {})
	sort.Strings(items)
	return pongo2.AsValue(items), nil
}
