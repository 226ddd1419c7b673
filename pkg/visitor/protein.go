package visitor

import (
	"github.com/goliatone/go-idstring/pkg/template"
)

// Group names the protein visitor handles, matching the SPL protein model's
// traversal order and the per-element template each group renders with.
var proteinGroups = []struct {
	group    string
	template string
}{
	{"chains", "chain"},
	{"polymers", "polymer"},
	{"substitutions", "substitution"},
	{"attachments", "attachment"},
}

// GroupSeparator joins rendered elements within one group of the protein
// identifier string.
const GroupSeparator = ";"

// Protein builds the dispatcher for protein identifier strings: one
// JoinWith handler per element group, each rendering the group's per-element
// template and pre-joining the results with ";". Group names the model
// enumerates beyond these are ignored; this visitor reads only the groups the
// protein_identifier template references.
func Protein(registry *template.Registry) (*Dispatcher, error) {
	for _, g := range proteinGroups {
		if _, err := registry.Get(g.template); err != nil {
			return nil, err
		}
	}

	d := New()
	for _, g := range proteinGroups {
		d.Handle(g.group, JoinWith(registry, g.template, GroupSeparator))
	}
	return d, nil
}

// ProteinSequences is the dispatcher variant for renderers that join groups
// themselves: each group binds as a sequence of per-element instances instead
// of a pre-joined scalar. Legacy rule files spell their joins with filters,
// so their renderer needs the unjoined items.
func ProteinSequences(registry *template.Registry) (*Dispatcher, error) {
	for _, g := range proteinGroups {
		if _, err := registry.Get(g.template); err != nil {
			return nil, err
		}
	}

	d := New()
	for _, g := range proteinGroups {
		d.Handle(g.group, Collect(registry, g.template))
	}
	return d, nil
}
