package orchestrator

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-idstring/pkg/document"
	"github.com/goliatone/go-idstring/pkg/rules"
	"github.com/goliatone/go-idstring/pkg/template"
	"github.com/goliatone/go-idstring/pkg/testsupport"
	"github.com/goliatone/go-idstring/pkg/visitor"
)

const wantProteinIdentifier = "/chains=chain0:AHKSEVAHRFK;chain1:MKWVTFISLLFLFSSAYS" +
	"/poly=poly0:XRZACNMERGNKHC-UHFFFAOYSA-N:N1C2" +
	"/subs=sub0:chain1:5:poly0:1" +
	"/attach=GLY1:chain0:12"

func TestGenerateFromDocument(t *testing.T) {
	t.Parallel()

	doc := testsupport.FixtureDocument(t, testsupport.ProteinFixture)
	gen := New()

	got, err := gen.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != wantProteinIdentifier {
		t.Fatalf("identifier string:\n got %q\nwant %q", got, wantProteinIdentifier)
	}
}

func TestGenerateFromFSSource(t *testing.T) {
	t.Parallel()

	gen := New(WithLoader(fsLoader{}))

	got, err := gen.Generate(context.Background(), Request{
		Source: document.SourceFromFS(testsupport.ProteinFixture),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != wantProteinIdentifier {
		t.Fatalf("identifier string:\n got %q\nwant %q", got, wantProteinIdentifier)
	}
}

// fsLoader reads from the embedded fixture filesystem.
type fsLoader struct{}

func (fsLoader) Load(_ context.Context, src document.Source) (document.Document, error) {
	data, err := fs.ReadFile(testsupport.FixtureFS(), src.Location())
	if err != nil {
		return document.Document{}, err
	}
	return document.NewDocument(src.Location(), data), nil
}

func TestGenerateRequiresSourceOrDocument(t *testing.T) {
	t.Parallel()

	gen := New()
	_, err := gen.Generate(context.Background(), Request{})
	if err == nil || !strings.Contains(err.Error(), "source or document is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateUnknownTemplate(t *testing.T) {
	t.Parallel()

	doc := testsupport.FixtureDocument(t, testsupport.ProteinFixture)
	gen := New()

	_, err := gen.Generate(context.Background(), Request{Document: &doc, Template: "dna_identifier"})
	var uerr *template.UnknownTemplateError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected *UnknownTemplateError, got %T: %v", err, err)
	}
}

func TestGenerateWithCustomRules(t *testing.T) {
	t.Parallel()

	doc := testsupport.FixtureDocument(t, testsupport.ProteinFixture)
	gen := New(WithRules(map[string]string{
		"chain":              "{{ value }}",
		"polymer":            "{{ value }}",
		"substitution":       "{{ value }}",
		"attachment":         "{{ value }}",
		"protein_identifier": "{{ chains }}",
	}))

	got, err := gen.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if want := "AHKSEVAHRFK;MKWVTFISLLFLFSSAYS"; got != want {
		t.Fatalf("identifier string: got %q want %q", got, want)
	}
}

func TestGenerateWithBrokenRulesSurfacesInitError(t *testing.T) {
	t.Parallel()

	doc := testsupport.FixtureDocument(t, testsupport.ProteinFixture)
	gen := New(WithRules(map[string]string{"chain": "{{ broken"}))

	_, err := gen.Generate(context.Background(), Request{Document: &doc})
	var perr *template.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *template.ParseError, got %T: %v", err, err)
	}
}

func TestGenerateWithCustomVisitor(t *testing.T) {
	t.Parallel()

	doc := testsupport.FixtureDocument(t, testsupport.ProteinFixture)
	gen := New(
		WithRules(map[string]string{
			"chain":              "{{ name }}",
			"protein_identifier": "/chains={{ chains }}",
		}),
		WithVisitor(func(registry *template.Registry) (*visitor.Dispatcher, error) {
			return visitor.New(
				visitor.WithHandler("chains", visitor.JoinWith(registry, "chain", ",")),
			), nil
		}),
	)

	got, err := gen.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if want := "/chains=chain0,chain1"; got != want {
		t.Fatalf("identifier string: got %q want %q", got, want)
	}
}

func TestGenerateLegacyRules(t *testing.T) {
	t.Parallel()

	defs, err := rules.Legacy()
	if err != nil {
		t.Fatalf("legacy rules: %v", err)
	}

	doc := testsupport.FixtureDocument(t, testsupport.ProteinFixture)
	gen := New(WithLegacyRules(defs))

	got, err := gen.Generate(context.Background(), Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != wantProteinIdentifier {
		t.Fatalf("identifier string:\n got %q\nwant %q", got, wantProteinIdentifier)
	}
}

func TestGenerateUnknownRenderer(t *testing.T) {
	t.Parallel()

	doc := testsupport.FixtureDocument(t, testsupport.ProteinFixture)
	gen := New()

	_, err := gen.Generate(context.Background(), Request{Document: &doc, Renderer: "nope"})
	if err == nil || !strings.Contains(err.Error(), `renderer "nope" not registered`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := testsupport.FixtureDocument(t, testsupport.ProteinFixture)
	gen := New()
	if _, err := gen.Generate(ctx, Request{Document: &doc}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
