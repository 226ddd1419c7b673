package template

import "strings"

// NodeKind discriminates the two node types the grammar produces.
type NodeKind int

const (
	// NodeLiteral is verbatim text between variable references.
	NodeLiteral NodeKind = iota
	// NodeVariable is a {{ name }} reference resolved at render time.
	NodeVariable
)

// Node is one segment of a parsed template: literal text or a variable
// reference. Text is set for literals, Name for variables.
type Node struct {
	Kind NodeKind
	Text string
	Name string
}

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Parse compiles template source into an ordered node sequence. The grammar:
// {{ opens a variable reference, }} closes it, and the bare name between them
// is trimmed of surrounding whitespace. Everything outside delimiters is
// emitted verbatim; a }} with no opener is plain text. Parse fails on an
// unterminated {{, an empty reference ({{ }}), and a nested {{ before its
// matching }}. Parsing is a pure function of the source string.
func Parse(source string) ([]Node, error) {
	var nodes []Node
	pos := 0
	for pos < len(source) {
		open := strings.Index(source[pos:], openDelim)
		if open < 0 {
			nodes = append(nodes, Node{Kind: NodeLiteral, Text: source[pos:]})
			break
		}
		if open > 0 {
			nodes = append(nodes, Node{Kind: NodeLiteral, Text: source[pos : pos+open]})
		}
		start := pos + open
		rest := source[start+len(openDelim):]

		closeAt := strings.Index(rest, closeDelim)
		if closeAt < 0 {
			return nil, &ParseError{Offset: start, Reason: "unterminated variable reference"}
		}
		if nested := strings.Index(rest[:closeAt], openDelim); nested >= 0 {
			return nil, &ParseError{
				Offset: start + len(openDelim) + nested,
				Reason: "nested variable reference",
			}
		}

		name := strings.TrimSpace(rest[:closeAt])
		if name == "" {
			return nil, &ParseError{Offset: start, Reason: "empty variable reference"}
		}
		nodes = append(nodes, Node{Kind: NodeVariable, Name: name})
		pos = start + len(openDelim) + closeAt + len(closeDelim)
	}
	return nodes, nil
}
