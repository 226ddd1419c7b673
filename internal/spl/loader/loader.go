// Package loader fetches SPL documents from disk, an fs.FS, or HTTP and
// rejects payloads whose root element is not an SPL document before they
// reach the parser.
package loader

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-idstring/pkg/document"
)

// Loader implements document.Loader. Construction helpers live in the
// top-level idstring package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ document.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options document.LoaderOptions) document.Loader {
	l := &Loader{
		fs:      options.FileSystem,
		timeout: options.RequestTimeout,
	}

	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if l.timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = l.timeout
		}
		l.http = &clone
	case options.AllowHTTPFallback:
		l.http = &http.Client{Timeout: l.timeout}
	}
	l.allowHTTP = l.http != nil

	return l
}

// Load fetches the source, verifies the payload carries an SPL document root,
// and wraps the bytes in a Document.
func (l *Loader) Load(ctx context.Context, src document.Source) (document.Document, error) {
	if src == nil {
		return document.Document{}, errors.New("spl loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return document.Document{}, err
	}

	data, err := l.fetch(ctx, src)
	if err != nil {
		return document.Document{}, err
	}
	if err := checkRoot(src.Location(), data); err != nil {
		return document.Document{}, err
	}

	return document.NewDocument(src.Location(), data), nil
}

func (l *Loader) fetch(ctx context.Context, src document.Source) ([]byte, error) {
	switch src.Kind() {
	case document.SourceKindFile:
		return readFile(src.Location())
	case document.SourceKindFS:
		return l.readFS(src.Location())
	case document.SourceKindURL:
		if !l.allowHTTP {
			return nil, errors.New("spl loader: http support disabled")
		}
		return l.readHTTP(ctx, src.Location())
	default:
		return nil, fmt.Errorf("spl loader: unsupported source kind %d", src.Kind())
	}
}

func (l *Loader) readFS(name string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("spl loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("spl loader: fs path is required")
	}
	return fs.ReadFile(l.fs, name)
}

// checkRoot scans tokens until the first start element and requires it to be
// the SPL <document> root. Catching a wrong payload here keeps non-SPL XML
// (HTML error pages most commonly) out of the parser.
func checkRoot(location string, data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("spl loader: %s: %w", location, err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "document" {
			return fmt.Errorf("spl loader: %s: root element is %q, not an spl document", location, start.Name.Local)
		}
		return nil
	}
}
