package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseProducesOrderedNodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		source string
		want   []Node
	}{
		{
			name:   "literal only",
			source: "/chains=",
			want:   []Node{{Kind: NodeLiteral, Text: "/chains="}},
		},
		{
			name:   "single variable",
			source: "{{ chains }}",
			want:   []Node{{Kind: NodeVariable, Name: "chains"}},
		},
		{
			name:   "literal then variable",
			source: "/chains={{ chains }}",
			want: []Node{
				{Kind: NodeLiteral, Text: "/chains="},
				{Kind: NodeVariable, Name: "chains"},
			},
		},
		{
			name:   "adjacent variables",
			source: "{{ name }}:{{ value }}",
			want: []Node{
				{Kind: NodeVariable, Name: "name"},
				{Kind: NodeLiteral, Text: ":"},
				{Kind: NodeVariable, Name: "value"},
			},
		},
		{
			name:   "whitespace trimmed inside delimiters",
			source: "{{   name\t}}",
			want:   []Node{{Kind: NodeVariable, Name: "name"}},
		},
		{
			name:   "no whitespace required",
			source: "{{name}}",
			want:   []Node{{Kind: NodeVariable, Name: "name"}},
		},
		{
			name:   "stray closer is literal text",
			source: "a }} b",
			want:   []Node{{Kind: NodeLiteral, Text: "a }} b"}},
		},
		{
			name:   "empty source",
			source: "",
			want:   nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.source)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.source, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("node mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	const source = "/chains={{ chains }}/poly={{ polymers }}"
	first, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated parse diverged (-first +second):\n%s", diff)
	}
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	// Re-joining nodes with canonical {{ }} markers reproduces the source
	// modulo whitespace trimmed inside delimiters.
	const source = "/chains={{ chains }}/poly={{ polymers }}/subs={{ substitutions }}"
	nodes, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var sb strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case NodeLiteral:
			sb.WriteString(n.Text)
		case NodeVariable:
			sb.WriteString("{{ " + n.Name + " }}")
		}
	}
	if got := sb.String(); got != source {
		t.Fatalf("round trip mismatch: got %q want %q", got, source)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		source     string
		wantOffset int
		wantReason string
	}{
		{
			name:       "unterminated reference",
			source:     "/chains={{ chains",
			wantOffset: 8,
			wantReason: "unterminated variable reference",
		},
		{
			name:       "unmatched trailing opener",
			source:     "text{{",
			wantOffset: 4,
			wantReason: "unterminated variable reference",
		},
		{
			name:       "empty reference",
			source:     "{{ }}",
			wantOffset: 0,
			wantReason: "empty variable reference",
		},
		{
			name:       "empty reference no spaces",
			source:     "{{}}",
			wantOffset: 0,
			wantReason: "empty variable reference",
		},
		{
			name:       "nested opener",
			source:     "{{ a {{ b }}",
			wantOffset: 5,
			wantReason: "nested variable reference",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.source)
			if err == nil {
				t.Fatalf("parse %q: expected error", tc.source)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if perr.Offset != tc.wantOffset {
				t.Errorf("offset: got %d want %d", perr.Offset, tc.wantOffset)
			}
			if perr.Reason != tc.wantReason {
				t.Errorf("reason: got %q want %q", perr.Reason, tc.wantReason)
			}
		})
	}
}
