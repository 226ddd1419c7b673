package document

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind enumerates the supported source strategies.
type SourceKind int

const (
	// SourceKindFile identifies an on-disk document path.
	SourceKindFile SourceKind = iota
	// SourceKindFS identifies a path inside an fs.FS.
	SourceKindFS
	// SourceKindURL identifies an HTTP/HTTPS endpoint.
	SourceKindURL
)

// Source identifies where a document lives. Loaders pick a strategy from the
// kind and fetch bytes from the location.
type Source interface {
	Location() string
	Kind() SourceKind
}

type source struct {
	location string
	kind     SourceKind
}

func (s source) Location() string { return s.location }

func (s source) Kind() SourceKind { return s.kind }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return source{location: filepath.Clean(path), kind: SourceKindFile}
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return source{location: name, kind: SourceKindFS}
}

// SourceFromURL validates the supplied URL string and returns a Source.
// Only absolute http and https URLs with a host are accepted; URL strings
// often arrive from user input, so malformed ones surface as errors.
func SourceFromURL(raw string) (Source, error) {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("document: invalid URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("document: unsupported URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("document: URL %q has no host", raw)
	}
	return source{location: raw, kind: SourceKindURL}, nil
}
