package document

// Element is an opaque handle on one document element inside a group. It
// exposes named field accessors; visitors bind fields to template variables
// without knowing the element's concrete type.
type Element interface {
	// Field returns the named field rendered as a string. The second return
	// reports whether the element exposes that field at all.
	Field(name string) (string, bool)
}

// Visitor receives one callback per element group during a model traversal.
// The model decides which groups exist and in what order; the visitor decides
// how each element kind becomes template bindings.
type Visitor interface {
	Visit(group string, elements []Element) error
}

// Model is a parsed document exposing a single traversal entry point. Accept
// enumerates the model's element groups in a fixed, model-defined order,
// invoking the visitor once per group.
type Model interface {
	Accept(v Visitor) error
}
