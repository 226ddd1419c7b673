// Package spl parses HL7 SPL substance documents and builds the protein
// model the identifier-string visitor traverses. The element codes and
// document shape follow the FDA substance registration profile.
package spl

import (
	"fmt"

	"github.com/beevik/etree"
)

// NCI thesaurus codes identifying the SPL elements the model reads.
const (
	codeDocument        = "64124-1"
	codeSection         = "48779-3"
	codeChainMoiety     = "C118424"
	codeModification    = "C118425"
	codeSubstitution    = "C118426"
	codeConnectionPoint = "C118427"
	codeAttachment      = "C14050"
	codeChemStructure   = "C103240"

	codeSystemUNII = "2.16.840.1.113883.4.9"
)

// Media types carrying a chemical structure value, in lookup preference
// order.
var chemStructureMediaTypes = []string{
	"application/x-inchi-key",
	"application/x-inchi",
	"application/x-mdl-molfile",
	"application/x-aa-seq",
	"application/x-na-seq",
}

// DocumentError reports a structural problem in an SPL document: a missing or
// non-unique mandatory element, or a moiety without its required parts.
type DocumentError struct {
	Msg string
}

func (e *DocumentError) Error() string {
	return "spl: " + e.Msg
}

func errorf(format string, args ...any) *DocumentError {
	return &DocumentError{Msg: fmt.Sprintf(format, args...)}
}

// Document wraps the SPL XML DOM and exposes the handful of anchor elements
// the protein model reads from. Accessors resolve lazily and cache; a missing
// or duplicated mandatory element is a DocumentError.
type Document struct {
	tree *etree.Document

	document  *etree.Element
	section   *etree.Element
	substance *etree.Element
	others    []*etree.Element
	othersSet bool
}

// Parse reads the raw XML and validates the root document element.
func Parse(data []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("spl: parse document: %w", err)
	}
	d := &Document{tree: tree}
	if _, err := d.DocumentElement(); err != nil {
		return nil, err
	}
	return d, nil
}

// DocumentElement returns the root document element (LOINC 64124-1).
func (d *Document) DocumentElement() (*etree.Element, error) {
	if d.document != nil {
		return d.document, nil
	}
	root := d.tree.Root()
	if root == nil || root.Tag != "document" || codeOf(root) != codeDocument {
		return nil, errorf("document element must be present and unique")
	}
	d.document = root
	return d.document, nil
}

// Section returns the substance indexing section (LOINC 48779-3).
func (d *Document) Section() (*etree.Element, error) {
	if d.section != nil {
		return d.section, nil
	}
	doc, err := d.DocumentElement()
	if err != nil {
		return nil, err
	}

	var found []*etree.Element
	for _, component := range children(doc, "component") {
		body := child(component, "structuredBody")
		if body == nil {
			continue
		}
		for _, inner := range children(body, "component") {
			for _, section := range children(inner, "section") {
				if codeOf(section) == codeSection {
					found = append(found, section)
				}
			}
		}
	}
	if len(found) != 1 {
		return nil, errorf("section element must be present and unique")
	}
	d.section = found[0]
	return d.section, nil
}

// Substance returns the main identified substance (UNII code system).
func (d *Document) Substance() (*etree.Element, error) {
	if d.substance != nil {
		return d.substance, nil
	}
	found, err := d.identifiedSubstances(func(codeSystem string) bool {
		return codeSystem == codeSystemUNII
	})
	if err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, errorf("main substance element must be present and unique")
	}
	d.substance = found[0]
	return d.substance, nil
}

// OtherSubstances returns auxiliary substances (non-UNII code systems), used
// for polymers and irregular amino acids. The list may be empty.
func (d *Document) OtherSubstances() ([]*etree.Element, error) {
	if d.othersSet {
		return d.others, nil
	}
	found, err := d.identifiedSubstances(func(codeSystem string) bool {
		return codeSystem != "" && codeSystem != codeSystemUNII
	})
	if err != nil {
		return nil, err
	}
	d.others = found
	d.othersSet = true
	return d.others, nil
}

func (d *Document) identifiedSubstances(match func(codeSystem string) bool) ([]*etree.Element, error) {
	section, err := d.Section()
	if err != nil {
		return nil, err
	}

	var found []*etree.Element
	for _, subject := range children(section, "subject") {
		for _, outer := range children(subject, "identifiedSubstance") {
			for _, substance := range children(outer, "identifiedSubstance") {
				code := child(substance, "code")
				if code == nil {
					continue
				}
				if match(attr(code, "codeSystem")) {
					found = append(found, substance)
				}
			}
		}
	}
	return found, nil
}

// DOM helpers. SPL documents use a default namespace (urn:hl7-org:v3), so
// matching on local tag names keeps selection independent of prefixing.

func children(e *etree.Element, tag string) []*etree.Element {
	if e == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

func child(e *etree.Element, tag string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func descend(e *etree.Element, tags ...string) *etree.Element {
	for _, tag := range tags {
		if e == nil {
			return nil
		}
		e = child(e, tag)
	}
	return e
}

func attr(e *etree.Element, name string) string {
	if e == nil {
		return ""
	}
	return e.SelectAttrValue(name, "")
}

// codeOf returns the code attribute of the element's code child.
func codeOf(e *etree.Element) string {
	return attr(child(e, "code"), "code")
}

// childrenWithCode selects children of the given tag whose code child carries
// the wanted code. SPL leans on this shape everywhere: the code child is the
// element's type discriminator.
func childrenWithCode(e *etree.Element, tag, code string) []*etree.Element {
	var out []*etree.Element
	for _, c := range children(e, tag) {
		if codeOf(c) == code {
			out = append(out, c)
		}
	}
	return out
}

// characteristicValue finds a subjectOf/characteristic (code C103240) value
// element with the wanted media type and returns its text.
func characteristicValue(e *etree.Element, mediaType string) (string, bool) {
	for _, subjectOf := range children(e, "subjectOf") {
		for _, characteristic := range childrenWithCode(subjectOf, "characteristic", codeChemStructure) {
			for _, value := range children(characteristic, "value") {
				if attr(value, "mediaType") == mediaType {
					return value.Text(), true
				}
			}
		}
	}
	return "", false
}

// chemStructure returns the first chemical structure value present on the
// moiety, in media type preference order.
func chemStructure(moiety *etree.Element) (string, bool) {
	for _, mediaType := range chemStructureMediaTypes {
		if value, ok := characteristicValue(moiety, mediaType); ok {
			return value, true
		}
	}
	return "", false
}
