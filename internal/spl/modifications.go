package spl

import (
	"sort"
	"strconv"

	"github.com/beevik/etree"
)

// SubstitutionPoint places one irregular amino acid onto a chain: which
// polymer substitutes, at which of its connection points, on which chain, at
// which chain position. Points from one modification moiety share a name
// (sub0, sub1, ...).
type SubstitutionPoint struct {
	Polymer         *Polymer
	Chain           *Chain
	ConnectionPoint int
	Position        int
	Name            string
}

// Field implements document.Element.
func (s *SubstitutionPoint) Field(name string) (string, bool) {
	switch name {
	case "name":
		return s.Name, true
	case "chain":
		return s.Chain.Name, true
	case "position":
		return strconv.Itoa(s.Position), true
	case "polymer":
		return s.Polymer.Name, true
	case "connection_point":
		return strconv.Itoa(s.ConnectionPoint), true
	case "value":
		return s.Chain.Name + ":" + strconv.Itoa(s.Position) + ":" +
			s.Polymer.Name + ":" + strconv.Itoa(s.ConnectionPoint), true
	}
	return "", false
}

func (s *SubstitutionPoint) less(o *SubstitutionPoint) bool {
	if s.Polymer.Name != o.Polymer.Name {
		return s.Polymer.Name < o.Polymer.Name
	}
	if s.ConnectionPoint != o.ConnectionPoint {
		return s.ConnectionPoint < o.ConnectionPoint
	}
	if s.Chain.Name != o.Chain.Name {
		return s.Chain.Name < o.Chain.Name
	}
	return s.Position < o.Position
}

// AttachmentPoint is a glycosylation site: a glycan attached to a chain at a
// position.
type AttachmentPoint struct {
	Glycan   string
	Chain    *Chain
	Position int
}

// Field implements document.Element.
func (a *AttachmentPoint) Field(name string) (string, bool) {
	switch name {
	case "glycan":
		return a.Glycan, true
	case "chain":
		return a.Chain.Name, true
	case "position":
		return strconv.Itoa(a.Position), true
	case "value":
		return a.Chain.Name + ":" + strconv.Itoa(a.Position) + ":" + a.Glycan, true
	}
	return "", false
}

func (a *AttachmentPoint) less(o *AttachmentPoint) bool {
	if a.Glycan != o.Glycan {
		return a.Glycan < o.Glycan
	}
	if a.Chain.Name != o.Chain.Name {
		return a.Chain.Name < o.Chain.Name
	}
	return a.Position < o.Position
}

// substitution groups the points of one modification moiety so they can be
// named as a unit after ordering.
type substitution struct {
	points []*SubstitutionPoint
}

func (s *substitution) less(o *substitution) bool {
	for i := 0; i < len(s.points) && i < len(o.points); i++ {
		if s.points[i].less(o.points[i]) {
			return true
		}
		if o.points[i].less(s.points[i]) {
			return false
		}
	}
	return len(s.points) < len(o.points)
}

// loadModifications reads the main substance's modification moieties
// (C118425), splitting their bonds into substitution points (C118426) and
// attachment points (C14050). Bond targets resolve through the chain and
// polymer lookups; a dangling reference is a DocumentError.
func loadModifications(doc *Document, chains map[string]*Chain, polymers map[string]*Polymer) ([]*SubstitutionPoint, []*AttachmentPoint, error) {
	substance, err := doc.Substance()
	if err != nil {
		return nil, nil, err
	}

	var substitutions []*substitution
	var attachments []*AttachmentPoint

	for _, moiety := range childrenWithCode(substance, "moiety", codeModification) {
		partMoiety := child(moiety, "partMoiety")
		if partMoiety == nil {
			return nil, nil, errorf("modification moiety has no partMoiety")
		}
		code := codeOf(partMoiety)
		if code == "" {
			return nil, nil, errorf("modification substance code not found")
		}

		if bonds := childrenWithCode(partMoiety, "bond", codeSubstitution); len(bonds) > 0 {
			sub, err := makeSubstitution(bonds, code, chains, polymers)
			if err != nil {
				return nil, nil, err
			}
			substitutions = append(substitutions, sub)
		}

		if bonds := childrenWithCode(partMoiety, "bond", codeAttachment); len(bonds) > 0 {
			point, err := makeAttachmentPoint(bonds, code, chains)
			if err != nil {
				return nil, nil, err
			}
			attachments = append(attachments, point)
		}
	}

	sort.Slice(substitutions, func(i, j int) bool { return substitutions[i].less(substitutions[j]) })

	var points []*SubstitutionPoint
	for index, sub := range substitutions {
		name := "sub" + strconv.Itoa(index)
		for _, point := range sub.points {
			point.Name = name
			points = append(points, point)
		}
	}

	sort.Slice(attachments, func(i, j int) bool { return attachments[i].less(attachments[j]) })
	return points, attachments, nil
}

func makeSubstitution(bonds []*etree.Element, code string, chains map[string]*Chain, polymers map[string]*Polymer) (*substitution, error) {
	polymer, ok := polymers[code]
	if !ok {
		return nil, errorf("substitution references unknown substance %q", code)
	}

	sub := &substitution{}
	for _, bond := range bonds {
		chain, err := bondChain(bond, chains)
		if err != nil {
			return nil, err
		}
		positions, err := positionInts(bond)
		if err != nil {
			return nil, err
		}
		if len(positions) != 2 {
			return nil, errorf("substitution bond needs two positions, got %d", len(positions))
		}
		sub.points = append(sub.points, &SubstitutionPoint{
			Polymer:         polymer,
			Chain:           chain,
			ConnectionPoint: positions[0],
			Position:        positions[1],
		})
	}

	sort.Slice(sub.points, func(i, j int) bool { return sub.points[i].less(sub.points[j]) })
	return sub, nil
}

func makeAttachmentPoint(bonds []*etree.Element, glycan string, chains map[string]*Chain) (*AttachmentPoint, error) {
	if len(bonds) != 1 {
		return nil, errorf("attachment expects one bond, got %d", len(bonds))
	}

	bond := bonds[0]
	chain, err := bondChain(bond, chains)
	if err != nil {
		return nil, err
	}
	positions, err := positionInts(bond)
	if err != nil {
		return nil, err
	}
	if len(positions) != 1 {
		return nil, errorf("attachment bond needs one position, got %d", len(positions))
	}

	return &AttachmentPoint{Glycan: glycan, Chain: chain, Position: positions[0]}, nil
}

func bondChain(bond *etree.Element, chains map[string]*Chain) (*Chain, error) {
	localID := attr(descend(bond, "distalMoiety", "id"), "extension")
	if localID == "" {
		return nil, errorf("bond distal moiety id not found")
	}
	chain, ok := chains[localID]
	if !ok {
		return nil, errorf("bond references unknown chain %q", localID)
	}
	return chain, nil
}
