package visitor

import (
	"strings"

	"github.com/goliatone/go-idstring/pkg/document"
	"github.com/goliatone/go-idstring/pkg/template"
)

// LoadInstance binds every variable the instance's template references to the
// matching element field. A field the element does not expose is left unbound
// so the mismatch surfaces at render time instead of becoming empty text.
func LoadInstance(inst *template.Instance, elem document.Element) {
	for _, name := range inst.Template().VariableNames() {
		if value, ok := elem.Field(name); ok {
			inst.SetString(name, value)
		}
	}
}

// Collect builds a handler that instantiates the named template once per
// element and binds the group to a sequence of those instances. The engine
// concatenates sequence items with no separator; use JoinWith when the output
// format requires one.
func Collect(registry *template.Registry, templateName string) HandlerFunc {
	return func(elements []document.Element) (template.Value, error) {
		items := make([]template.Value, 0, len(elements))
		for _, elem := range elements {
			inst, err := registry.NewInstance(templateName)
			if err != nil {
				return template.Value{}, err
			}
			LoadInstance(inst, elem)
			items = append(items, template.Ref(inst))
		}
		return template.List(items...), nil
	}
}

// JoinWith builds a handler that renders the named template once per element
// and binds the group to a single scalar of the rendered strings joined by
// sep. This is the visitor-side pre-join: the engine itself never inserts
// separators.
func JoinWith(registry *template.Registry, templateName, sep string) HandlerFunc {
	return func(elements []document.Element) (template.Value, error) {
		parts := make([]string, 0, len(elements))
		for _, elem := range elements {
			inst, err := registry.NewInstance(templateName)
			if err != nil {
				return template.Value{}, err
			}
			LoadInstance(inst, elem)
			rendered, err := inst.Render()
			if err != nil {
				return template.Value{}, err
			}
			parts = append(parts, rendered)
		}
		return template.String(strings.Join(parts, sep)), nil
	}
}
