// Package template implements the identifier-string template engine: a small
// substitution grammar ({{ name }} placeholders inside literal text), parsed
// templates, value bindings, and a read-only registry of named templates.
// The grammar deliberately has no control flow, filters, or escapes; repeated
// structure is expressed by binding sequences of nested instances.
package template
