package template

import "strings"

// Context is a named collection of values ready to bind onto a root instance,
// typically accumulated by a visitor walking a document model.
type Context map[string]Value

// Instance binds concrete values to one template. An instance has a single
// owner, is populated before its one render pass, and is discarded afterward;
// rendering never mutates it.
type Instance struct {
	template *Template
	bindings map[string]Value
}

// Template returns the template this instance is bound to.
func (i *Instance) Template() *Template { return i.template }

// Set binds value to the named variable, replacing any previous binding.
func (i *Instance) Set(name string, value Value) {
	i.bindings[name] = value
}

// SetString binds a scalar string to the named variable.
func (i *Instance) SetString(name, value string) {
	i.bindings[name] = String(value)
}

// Append grows the sequence bound to name by the supplied items. A missing
// binding starts an empty sequence; a scalar or instance binding is promoted
// to a sequence containing it.
func (i *Instance) Append(name string, items ...Value) {
	current, ok := i.bindings[name]
	switch {
	case !ok:
		i.bindings[name] = List(items...)
	case current.kind == KindSequence:
		current.seq = append(current.seq, items...)
		i.bindings[name] = current
	default:
		i.bindings[name] = List(append([]Value{current}, items...)...)
	}
}

// Bind copies every context entry into the instance's bindings.
func (i *Instance) Bind(ctx Context) {
	for name, value := range ctx {
		i.bindings[name] = value
	}
}

// Lookup returns the value bound to name.
func (i *Instance) Lookup(name string) (Value, bool) {
	v, ok := i.bindings[name]
	return v, ok
}

// Render walks the template's nodes in order, emitting literal text verbatim
// and resolving each variable reference against the instance's bindings:
// scalars are appended as-is, nested instances render recursively, and
// sequences concatenate their items with no separator. A reference with no
// binding fails with *UnresolvedVariableError.
func (i *Instance) Render() (string, error) {
	var sb strings.Builder
	if err := i.renderTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (i *Instance) renderTo(sb *strings.Builder) error {
	for _, n := range i.template.nodes {
		switch n.Kind {
		case NodeLiteral:
			sb.WriteString(n.Text)
		case NodeVariable:
			value, ok := i.bindings[n.Name]
			if !ok {
				return &UnresolvedVariableError{Template: i.template.name, Variable: n.Name}
			}
			if err := value.renderTo(sb); err != nil {
				return err
			}
		}
	}
	return nil
}
