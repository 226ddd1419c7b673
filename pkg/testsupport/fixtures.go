// Package testsupport bundles SPL document fixtures shared by tests across
// the module.
package testsupport

import (
	"embed"
	"io/fs"
	"testing"

	"github.com/goliatone/go-idstring/pkg/document"
)

//go:embed testdata/*.xml
var fixtures embed.FS

// ProteinFixture is the canonical two-chain protein document used throughout
// the tests: chains P1/P2, one polymer (POLY1) with a connection point and a
// plain quantity, one substitution bond, and one glycan attachment.
const ProteinFixture = "protein.xml"

// FixtureFS returns the embedded fixture filesystem, rooted at the fixture
// file names. Useful with fs.FS-based loaders.
func FixtureFS() fs.FS {
	sub, err := fs.Sub(fixtures, "testdata")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Fixture returns the raw bytes of a named fixture document.
func Fixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := fs.ReadFile(FixtureFS(), name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// FixtureDocument wraps a named fixture in a document.Document, bypassing the
// loader for tests that exercise parsing and rendering directly.
func FixtureDocument(t *testing.T, name string) document.Document {
	t.Helper()
	return document.NewDocument(name, Fixture(t, name))
}
