package rules

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-idstring/pkg/template"
)

func TestLoadFSParsesYAMLAndJSON(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"protein.yaml": &fstest.MapFile{Data: []byte(
			"templates:\n  chain: \"{{ name }}:{{ value }}\"\n",
		)},
		"extra.json": &fstest.MapFile{Data: []byte(
			`{"templates": {"polymer": "{{ name }}:{{ value }}"}}`,
		)},
		"notes.txt": &fstest.MapFile{Data: []byte("ignored")},
	}

	defs, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}

	want := map[string]string{
		"chain":   "{{ name }}:{{ value }}",
		"polymer": "{{ name }}:{{ value }}",
	}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFSRejectsDuplicateNamesAcrossFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte("templates:\n  chain: \"{{ a }}\"\n")},
		"b.yaml": &fstest.MapFile{Data: []byte("templates:\n  chain: \"{{ b }}\"\n")},
	}

	_, err := LoadFS(fsys)
	if err == nil {
		t.Fatal("expected duplicate template error")
	}
	if !strings.Contains(err.Error(), `duplicate template "chain"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFSRejectsEmptyFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"empty.yaml": &fstest.MapFile{Data: []byte("   \n")},
	}

	if _, err := LoadFS(fsys); err == nil {
		t.Fatal("expected empty file error")
	}
}

func TestLoadFSRejectsEmptyTemplateName(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte("templates:\n  \"  \": \"{{ a }}\"\n")},
	}

	if _, err := LoadFS(fsys); err == nil {
		t.Fatal("expected empty template name error")
	}
}

func TestDefaultRulesLoadIntoRegistry(t *testing.T) {
	t.Parallel()

	defs, err := Default()
	if err != nil {
		t.Fatalf("default rules: %v", err)
	}

	registry, err := template.LoadRegistry(defs)
	if err != nil {
		t.Fatalf("default rules must parse in the core grammar: %v", err)
	}

	for _, name := range []string{"protein_identifier", "chain", "polymer", "substitution", "attachment"} {
		if !registry.Has(name) {
			t.Errorf("default rule set missing template %q", name)
		}
	}

	id := registry.MustGet("protein_identifier")
	want := []string{"chains", "polymers", "substitutions", "attachments"}
	if diff := cmp.Diff(want, id.VariableNames()); diff != "" {
		t.Fatalf("protein_identifier variables (-want +got):\n%s", diff)
	}
}

func TestLegacyRulesKeepFilterChains(t *testing.T) {
	t.Parallel()

	defs, err := Legacy()
	if err != nil {
		t.Fatalf("legacy rules: %v", err)
	}
	if _, ok := defs["protein_identifier"]; !ok {
		t.Fatal("legacy rule set missing protein_identifier")
	}
	// Legacy rules keep their filter chains verbatim for the pongo engine.
	if !strings.Contains(defs["protein_identifier"], `|join:";"`) {
		t.Fatalf("legacy protein_identifier should carry join filter, got %q", defs["protein_identifier"])
	}
}
