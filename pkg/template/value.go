package template

import "strings"

// ValueKind discriminates the three bindable value shapes.
type ValueKind int

const (
	// KindScalar is a plain string appended verbatim.
	KindScalar ValueKind = iota
	// KindInstance nests another template instance, rendered recursively.
	KindInstance
	// KindSequence is an ordered list of values concatenated in order with
	// no separator. Callers needing separators embed them in template text
	// or pre-join rendered items before binding (see visitor.JoinWith).
	KindSequence
)

// Value is the union bound to a template variable: a scalar string, a nested
// instance, or an ordered sequence of either. The zero Value is an empty
// scalar.
type Value struct {
	kind   ValueKind
	scalar string
	inst   *Instance
	seq    []Value
}

// String wraps a plain string as a scalar value.
func String(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Ref wraps a nested instance. Rendering the enclosing instance renders the
// child in place.
func Ref(inst *Instance) Value {
	return Value{kind: KindInstance, inst: inst}
}

// List builds a sequence value from the supplied items.
func List(items ...Value) Value {
	return Value{kind: KindSequence, seq: items}
}

// Kind reports the value's shape.
func (v Value) Kind() ValueKind { return v.kind }

// Scalar returns the string payload; empty unless Kind is KindScalar.
func (v Value) Scalar() string { return v.scalar }

// Instance returns the nested instance; nil unless Kind is KindInstance.
func (v Value) Instance() *Instance { return v.inst }

// Items returns the sequence payload; nil unless Kind is KindSequence.
func (v Value) Items() []Value { return v.seq }

// Len reports the number of sequence items, or 1 for scalar and instance
// values.
func (v Value) Len() int {
	if v.kind == KindSequence {
		return len(v.seq)
	}
	return 1
}

// Render resolves the value to its output text: scalars verbatim, nested
// instances through their template, sequence items concatenated in order.
func (v Value) Render() (string, error) {
	var sb strings.Builder
	if err := v.renderTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (v Value) renderTo(sb *strings.Builder) error {
	switch v.kind {
	case KindScalar:
		sb.WriteString(v.scalar)
		return nil
	case KindInstance:
		if v.inst == nil {
			return nil
		}
		return v.inst.renderTo(sb)
	case KindSequence:
		for _, item := range v.seq {
			if err := item.renderTo(sb); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}
