// Package orchestrator coordinates the full pipeline from SPL document to
// identifier string: load the document, parse it into a traversable model,
// run a visitor to accumulate template bindings, and render the requested
// identifier template.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-idstring/internal/spl"
	internalLoader "github.com/goliatone/go-idstring/internal/spl/loader"
	"github.com/goliatone/go-idstring/pkg/document"
	"github.com/goliatone/go-idstring/pkg/rules"
	"github.com/goliatone/go-idstring/pkg/template"
	"github.com/goliatone/go-idstring/pkg/template/pongo"
	"github.com/goliatone/go-idstring/pkg/visitor"
)

const defaultTemplateName = "protein_identifier"

// VisitorFactory builds a fresh dispatcher per generation request. Dispatchers
// accumulate per-document state, so they are never shared across requests.
type VisitorFactory func(registry *template.Registry) (*visitor.Dispatcher, error)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader document.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom document parser.
func WithParser(parser document.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a pre-built template registry.
func WithRegistry(registry *template.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRules loads the registry from the supplied definitions instead of the
// embedded defaults.
func WithRules(definitions map[string]string) Option {
	return func(o *Orchestrator) {
		registry, err := template.LoadRegistry(definitions)
		if err != nil {
			o.initialiseErr = errors.Join(o.initialiseErr, err)
			return
		}
		o.registry = registry
	}
}

// WithVisitor injects the factory used to build the per-request dispatcher.
func WithVisitor(factory VisitorFactory) Option {
	return func(o *Orchestrator) {
		o.visitorFactory = factory
	}
}

// WithDefaultTemplate overrides the identifier template used when a request
// omits an explicit Template field.
func WithDefaultTemplate(name string) Option {
	return func(o *Orchestrator) {
		o.defaultTemplate = name
	}
}

// WithRenderer registers an alternative rendering engine under a name that
// requests can select through Request.Renderer.
func WithRenderer(name string, renderer Renderer) Option {
	return func(o *Orchestrator) {
		if name == "" || renderer == nil {
			return
		}
		o.renderers[name] = renderer
	}
}

// WithDefaultRenderer selects the renderer used when a request leaves
// Request.Renderer empty.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLegacyRules wires a rule set written in the filter-extended syntax: the
// definitions load into the core registry for the per-element templates, the
// full set renders through a pongo-backed renderer registered under
// RendererLegacy (which becomes the default), and each group binds as a
// sequence so the rule file's own sort and join filters see the unjoined
// items.
func WithLegacyRules(definitions map[string]string) Option {
	return func(o *Orchestrator) {
		registry, err := template.LoadRegistry(definitions)
		if err != nil {
			o.initialiseErr = errors.Join(o.initialiseErr, err)
			return
		}
		o.registry = registry
		o.renderers[RendererLegacy] = pongo.NewRenderer(pongo.New(), definitions)
		o.defaultRenderer = RendererLegacy
		o.visitorFactory = visitor.ProteinSequences
	}
}

// Orchestrator coordinates the pipeline with sensible defaults (embedded
// protein rules, offline file loader, protein visitor) while remaining open
// to dependency injection for advanced callers.
type Orchestrator struct {
	loader          document.Loader
	parser          document.Parser
	registry        *template.Registry
	visitorFactory  VisitorFactory
	renderers       map[string]Renderer
	defaultTemplate string
	defaultRenderer string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultTemplate: defaultTemplateName,
		renderers:       make(map[string]Renderer),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	o.defaultsApplied = true
	if o.loader == nil {
		o.loader = internalLoader.New(document.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = spl.NewParser()
	}
	if o.registry == nil {
		definitions, err := rules.Default()
		if err != nil {
			o.initialiseErr = errors.Join(o.initialiseErr, err)
			return
		}
		registry, err := template.LoadRegistry(definitions)
		if err != nil {
			o.initialiseErr = errors.Join(o.initialiseErr, err)
			return
		}
		o.registry = registry
	}
	if o.visitorFactory == nil {
		o.visitorFactory = visitor.Protein
	}
}

// Request describes the inputs required to render an identifier string from
// a document.
type Request struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source document.Source

	// Document allows callers to bypass the loader when they already have the
	// raw payload.
	Document *document.Document

	// Template names the identifier template to render. If empty, the
	// orchestrator falls back to the configured default.
	Template string

	// Renderer selects a named renderer registered via WithRenderer or
	// WithLegacyRules. Empty selects the configured default, falling back to
	// the core registry engine.
	Renderer string
}

// Generate executes the loader, parser, visitor, and render stages and
// returns the identifier string.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		return "", errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := o.initialiseErr; err != nil {
		return "", err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return "", err
		}
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return "", err
	}

	model, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("orchestrator: parse document: %w", err)
	}

	dispatcher, err := o.visitorFactory(o.registry)
	if err != nil {
		return "", fmt.Errorf("orchestrator: build visitor: %w", err)
	}
	if err := model.Accept(dispatcher); err != nil {
		return "", fmt.Errorf("orchestrator: traverse model: %w", err)
	}

	templateName := req.Template
	if templateName == "" {
		templateName = o.defaultTemplate
	}
	rendererName := req.Renderer
	if rendererName == "" {
		rendererName = o.defaultRenderer
	}
	var renderer Renderer = registryRenderer{registry: o.registry}
	if rendererName != "" {
		named, ok := o.renderers[rendererName]
		if !ok {
			return "", fmt.Errorf("orchestrator: renderer %q not registered", rendererName)
		}
		renderer = named
	}

	output, err := renderer.Render(templateName, dispatcher.Context())
	if err != nil {
		return "", fmt.Errorf("orchestrator: render identifier: %w", err)
	}
	return output, nil
}

// Registry exposes the configured template registry, letting callers list
// available identifier templates.
func (o *Orchestrator) Registry() *template.Registry {
	return o.registry
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (document.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return document.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return document.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}
