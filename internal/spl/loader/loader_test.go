package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-idstring/pkg/document"
)

func urlSource(t *testing.T, raw string) document.Source {
	t.Helper()
	src, err := document.SourceFromURL(raw)
	if err != nil {
		t.Fatalf("url source %q: %v", raw, err)
	}
	return src
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xml")
	if err := os.WriteFile(path, []byte("<document/>"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(document.NewLoaderOptions())
	doc, err := l.Load(context.Background(), document.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Data()) != "<document/>" {
		t.Fatalf("data mismatch: %q", doc.Data())
	}
	if doc.Location() == "" {
		t.Fatal("document should report its location")
	}
}

func TestLoadFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"docs/protein.xml": &fstest.MapFile{Data: []byte("<document/>")},
	}
	l := New(document.NewLoaderOptions(document.WithFileSystem(fsys)))

	doc, err := l.Load(context.Background(), document.SourceFromFS("docs/protein.xml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Data()) != "<document/>" {
		t.Fatalf("data mismatch: %q", doc.Data())
	}
}

func TestLoadFromFSWithoutFilesystem(t *testing.T) {
	t.Parallel()

	l := New(document.NewLoaderOptions())
	_, err := l.Load(context.Background(), document.SourceFromFS("doc.xml"))
	if err == nil || !strings.Contains(err.Error(), "filesystem is not configured") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadHTTPDisabledByDefault(t *testing.T) {
	t.Parallel()

	l := New(document.NewLoaderOptions())
	_, err := l.Load(context.Background(), urlSource(t, "http://example.com/doc.xml"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<document/>"))
	}))
	defer server.Close()

	l := New(document.NewLoaderOptions(document.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), urlSource(t, server.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Data()) != "<document/>" {
		t.Fatalf("data mismatch: %q", doc.Data())
	}
}

func TestLoadHTTPRejectsErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	l := New(document.NewLoaderOptions(document.WithHTTPClient(server.Client())))
	if _, err := l.Load(context.Background(), urlSource(t, server.URL)); err == nil {
		t.Fatal("expected status error")
	}
}

func TestLoadRejectsNonSPLPayload(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"page.xml": &fstest.MapFile{Data: []byte("<html><body>not found</body></html>")},
	}
	l := New(document.NewLoaderOptions(document.WithFileSystem(fsys)))

	_, err := l.Load(context.Background(), document.SourceFromFS("page.xml"))
	if err == nil || !strings.Contains(err.Error(), "root element") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadNilSource(t *testing.T) {
	t.Parallel()

	l := New(document.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
