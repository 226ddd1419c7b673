package spl

import (
	"context"

	"github.com/goliatone/go-idstring/pkg/document"
)

// Group names enumerated by the protein model, in traversal order.
const (
	GroupChains        = "chains"
	GroupPolymers      = "polymers"
	GroupSubstitutions = "substitutions"
	GroupAttachments   = "attachments"
)

// Protein is the traversable model of an SPL protein substance document. It
// resolves chains, polymers, and the modification points connecting them at
// construction time, so Accept never fails on document structure.
type Protein struct {
	chains        []*Chain
	polymers      []*Polymer
	substitutions []*SubstitutionPoint
	attachments   []*AttachmentPoint
}

// NewProtein builds the protein model from a parsed SPL document.
func NewProtein(doc *Document) (*Protein, error) {
	chains, chainLookup, err := loadChains(doc)
	if err != nil {
		return nil, err
	}
	polymers, polymerLookup, err := loadPolymers(doc)
	if err != nil {
		return nil, err
	}
	substitutions, attachments, err := loadModifications(doc, chainLookup, polymerLookup)
	if err != nil {
		return nil, err
	}
	return &Protein{
		chains:        chains,
		polymers:      polymers,
		substitutions: substitutions,
		attachments:   attachments,
	}, nil
}

// Accept enumerates the model's element groups in fixed order: chains,
// polymers, substitutions, attachments.
func (p *Protein) Accept(v document.Visitor) error {
	if err := v.Visit(GroupChains, chainElements(p.chains)); err != nil {
		return err
	}
	if err := v.Visit(GroupPolymers, polymerElements(p.polymers)); err != nil {
		return err
	}
	if err := v.Visit(GroupSubstitutions, substitutionElements(p.substitutions)); err != nil {
		return err
	}
	return v.Visit(GroupAttachments, attachmentElements(p.attachments))
}

// Chains returns the ordered chain descriptors.
func (p *Protein) Chains() []*Chain { return p.chains }

// Polymers returns the ordered polymer descriptors.
func (p *Protein) Polymers() []*Polymer { return p.polymers }

func chainElements(in []*Chain) []document.Element {
	out := make([]document.Element, len(in))
	for i, c := range in {
		out[i] = c
	}
	return out
}

func polymerElements(in []*Polymer) []document.Element {
	out := make([]document.Element, len(in))
	for i, p := range in {
		out[i] = p
	}
	return out
}

func substitutionElements(in []*SubstitutionPoint) []document.Element {
	out := make([]document.Element, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func attachmentElements(in []*AttachmentPoint) []document.Element {
	out := make([]document.Element, len(in))
	for i, a := range in {
		out[i] = a
	}
	return out
}

// Parser implements document.Parser for SPL protein substance documents.
type Parser struct{}

// NewParser returns a protein document parser.
func NewParser() Parser {
	return Parser{}
}

// Parse builds the protein model from a loaded document's bytes.
func (Parser) Parse(ctx context.Context, doc document.Document) (document.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parsed, err := Parse(doc.Data())
	if err != nil {
		return nil, err
	}
	return NewProtein(parsed)
}
