package idstring

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-idstring/internal/spl"
	internalLoader "github.com/goliatone/go-idstring/internal/spl/loader"
	"github.com/goliatone/go-idstring/pkg/document"
	"github.com/goliatone/go-idstring/pkg/orchestrator"
	"github.com/goliatone/go-idstring/pkg/rules"
)

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...document.LoaderOption) document.Loader {
	cfg := document.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs an SPL parser backed by the internal implementation.
func NewParser() document.Parser {
	return spl.NewParser()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so callers do not have to import the orchestrator package for the
// common case.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the SPL source, walks the protein model, and renders the
// named identifier template. It is the simplest entry point for callers that
// just want the identifier string.
func Generate(ctx context.Context, source document.Source, templateName string, options ...orchestrator.Option) (string, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Template: templateName,
	})
}

// GenerateFromDocument renders an identifier using a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateFromDocument(ctx context.Context, doc document.Document, templateName string, options ...orchestrator.Option) (string, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Template: templateName,
	})
}

// EmbeddedRules exposes the built-in identifier rule files so callers can
// reuse or extend them without importing the rules package directly.
func EmbeddedRules() fs.FS {
	return rules.EmbeddedFS()
}
