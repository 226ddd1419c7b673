// Package visitor converts document models into template bindings. A
// Dispatcher maps group names to handler routines through a closed, explicit
// table; the document model decides which groups exist, the handlers decide
// how each element kind becomes context entries. Adding an element kind means
// registering one handler, never touching the template engine.
package visitor

import (
	"fmt"

	"github.com/goliatone/go-idstring/pkg/document"
	"github.com/goliatone/go-idstring/pkg/template"
)

// UnhandledGroupError is returned by strict dispatchers when a model
// enumerates a group no handler claims.
type UnhandledGroupError struct {
	Group string
}

func (e *UnhandledGroupError) Error() string {
	return fmt.Sprintf("visitor: no handler for group %q", e.Group)
}

// HandlerFunc turns one group's elements into the value bound under the
// group's name in the context.
type HandlerFunc func(elements []document.Element) (template.Value, error)

// Option customises dispatcher construction.
type Option func(*Dispatcher)

// WithStrictGroups makes the dispatcher fail on group names without a
// registered handler. The default is to ignore them, so a visitor can care
// about a subset of what a model enumerates.
func WithStrictGroups() Option {
	return func(d *Dispatcher) {
		d.strict = true
	}
}

// WithHandler registers a handler during construction.
func WithHandler(group string, fn HandlerFunc) Option {
	return func(d *Dispatcher) {
		d.Handle(group, fn)
	}
}

// Dispatcher accumulates a template context from a single model traversal.
// It is single-use: construct, pass to Model.Accept, read Context, discard.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	context  template.Context
	strict   bool
}

// Ensure the dispatcher satisfies the traversal contract.
var _ document.Visitor = (*Dispatcher)(nil)

// New constructs an empty dispatcher. By default unknown groups are ignored.
func New(options ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		context:  make(template.Context),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// Handle registers the routine for a group name, replacing any previous
// registration.
func (d *Dispatcher) Handle(group string, fn HandlerFunc) {
	if group == "" || fn == nil {
		return
	}
	d.handlers[group] = fn
}

// Visit implements document.Visitor: it dispatches the group to its handler
// and stores the produced value under the group's name.
func (d *Dispatcher) Visit(group string, elements []document.Element) error {
	fn, ok := d.handlers[group]
	if !ok {
		if d.strict {
			return &UnhandledGroupError{Group: group}
		}
		return nil
	}
	value, err := fn(elements)
	if err != nil {
		return fmt.Errorf("visitor: group %q: %w", group, err)
	}
	d.context[group] = value
	return nil
}

// Context returns the accumulated bindings.
func (d *Dispatcher) Context() template.Context {
	return d.context
}
