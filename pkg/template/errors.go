package template

import "fmt"

// ParseError reports malformed template text. Offset is the byte position of
// the offending delimiter in the original source string.
type ParseError struct {
	Template string
	Offset   int
	Reason   string
}

func (e *ParseError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("template: parse error at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("template: parse %q at offset %d: %s", e.Template, e.Offset, e.Reason)
}

// UnknownTemplateError is returned by Registry.Get for names that were never
// loaded. It indicates a wiring or configuration bug, not a recoverable state.
type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("template: %q not found in registry", e.Name)
}

// UnresolvedVariableError is returned when rendering reaches a variable
// reference with no matching binding. Unbound variables are never defaulted
// to empty text; that would mask drift between rule files and visitors.
type UnresolvedVariableError struct {
	Template string
	Variable string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("template: %q references unbound variable %q", e.Template, e.Variable)
}
