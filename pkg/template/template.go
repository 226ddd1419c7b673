package template

// Template is one named, parsed template: an ordered node sequence that is
// immutable after construction. Templates are owned by the Registry that
// loaded them; instances hold a non-owning reference.
type Template struct {
	name  string
	nodes []Node
}

// New parses source and returns the named template. Parse failures carry the
// template name for diagnosis.
func New(name, source string) (*Template, error) {
	nodes, err := Parse(source)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Template = name
		}
		return nil, err
	}
	return &Template{name: name, nodes: nodes}, nil
}

// Name returns the template's registry name.
func (t *Template) Name() string { return t.name }

// Nodes returns a copy of the parsed node sequence.
func (t *Template) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// VariableNames returns the referenced variable names in first-occurrence
// order, without duplicates.
func (t *Template) VariableNames() []string {
	var names []string
	seen := make(map[string]struct{}, len(t.nodes))
	for _, n := range t.nodes {
		if n.Kind != NodeVariable {
			continue
		}
		if _, ok := seen[n.Name]; ok {
			continue
		}
		seen[n.Name] = struct{}{}
		names = append(names, n.Name)
	}
	return names
}

// NewInstance returns an empty instance bound to this template, ready for
// the caller to populate and render once.
func (t *Template) NewInstance() *Instance {
	return &Instance{template: t, bindings: make(map[string]Value)}
}
