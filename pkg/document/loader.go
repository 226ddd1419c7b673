package document

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Document wraps the raw bytes of a fetched document together with the
// location it was loaded from. Parsing into a Model is a separate stage.
type Document struct {
	location string
	data     []byte
}

// NewDocument constructs a Document from a location and its raw contents.
func NewDocument(location string, data []byte) Document {
	return Document{location: location, data: data}
}

// Location reports where the document was loaded from.
func (d Document) Location() string { return d.location }

// Data returns the raw document bytes.
func (d Document) Data() []byte { return d.data }

// Loader fetches documents from different sources (filesystem, fs.FS, HTTP).
// Implementations live under internal/spl/loader but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Parser turns a loaded document's bytes into a traversable Model.
type Parser interface {
	Parse(ctx context.Context, doc Document) (Model, error)
}

// LoaderOptions configures how a Loader resolves sources. HTTP fetching stays
// opt-in so default wiring remains offline.
type LoaderOptions struct {
	// FileSystem enables loading from an abstract filesystem; defaults to the
	// operating system if nil.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies). Nil means HTTP sources are disabled unless AllowHTTPFallback
	// is true.
	HTTPClient *http.Client

	// AllowHTTPFallback toggles the default HTTP loader using
	// http.DefaultClient when no client is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations when AllowHTTPFallback is
	// true.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for relative paths.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading using http.DefaultClient and assigns
// an optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithDefaultSources enables the built-in HTTP loader using the default client
// when no explicit client is provided.
func WithDefaultSources() LoaderOption {
	return func(opts *LoaderOptions) {
		if !opts.AllowHTTPFallback && opts.HTTPClient == nil {
			opts.AllowHTTPFallback = true
		}
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level idstring package to prevent import cycles.
