package document

import (
	"strings"
	"testing"
)

func TestSourceKinds(t *testing.T) {
	t.Parallel()

	file := SourceFromFile("testdata//protein.xml")
	if file.Kind() != SourceKindFile {
		t.Fatalf("file kind: got %d", file.Kind())
	}
	if want := "testdata/protein.xml"; file.Location() != want {
		t.Fatalf("file location should be cleaned: got %q want %q", file.Location(), want)
	}

	fsSrc := SourceFromFS("fixtures/protein.xml")
	if fsSrc.Kind() != SourceKindFS || fsSrc.Location() != "fixtures/protein.xml" {
		t.Fatalf("fs source: got kind=%d location=%q", fsSrc.Kind(), fsSrc.Location())
	}

	urlSrc, err := SourceFromURL("https://example.com/spl/protein.xml")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}
	if urlSrc.Kind() != SourceKindURL || urlSrc.Location() != "https://example.com/spl/protein.xml" {
		t.Fatalf("url source: got kind=%d location=%q", urlSrc.Kind(), urlSrc.Location())
	}
}

func TestSourceFromURLValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{name: "empty", raw: "", wantErr: "invalid URL"},
		{name: "no scheme", raw: "example.com/doc.xml", wantErr: "invalid URL"},
		{name: "unsupported scheme", raw: "ftp://example.com/doc.xml", wantErr: "unsupported URL scheme"},
		{name: "missing host", raw: "http://", wantErr: "no host"},
		{name: "valid http", raw: "http://example.com/doc.xml"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src, err := SourceFromURL(tc.raw)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error, got source %v", src)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}
