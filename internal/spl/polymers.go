package spl

import (
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ConnectionPoint is a polymer attachment site: the amino-group and
// carboxyl-group positions on the irregular amino acid.
type ConnectionPoint struct {
	Amino    string
	Carboxyl string
}

func (p ConnectionPoint) String() string {
	return "N" + p.Amino + "C" + p.Carboxyl
}

// Quantity is a moiety amount: either a plain numerator or a low/high range
// with inclusivity flags, always over a denominator with a unit.
type Quantity struct {
	Num           string
	Low           string
	High          string
	LowInclusive  bool
	HighInclusive bool
	Ranged        bool
	Denom         string
	Unit          string
}

func (q Quantity) String() string {
	if !q.Ranged {
		return q.Num + ":" + q.Denom + ":" + q.Unit
	}
	open, close := "(", ")"
	if q.LowInclusive {
		open = "["
	}
	if q.HighInclusive {
		close = "]"
	}
	return open + q.Low + "," + q.High + close + ":" + q.Denom + ":" + q.Unit
}

// Polymer is an auxiliary substance: a polymer or irregular amino acid
// referenced by modification bonds on the main substance.
type Polymer struct {
	Code   string
	Value  string
	Points []ConnectionPoint
	Amount Quantity
	Name   string
}

// ConnectionPoints renders the comma-joined connection point list.
func (p *Polymer) ConnectionPoints() string {
	parts := make([]string, len(p.Points))
	for i, point := range p.Points {
		parts[i] = point.String()
	}
	return strings.Join(parts, ",")
}

// Field implements document.Element.
func (p *Polymer) Field(name string) (string, bool) {
	switch name {
	case "name":
		return p.Name, true
	case "value":
		return p.Value, true
	case "connection_points":
		return p.ConnectionPoints(), true
	case "quantity":
		return p.Amount.String(), true
	case "code":
		return p.Code, true
	}
	return "", false
}

// loadPolymers reads auxiliary substances into polymer descriptors. Polymers
// are ordered by (value, code) and named poly0..n; the lookup keys by
// substance code for modification resolution.
func loadPolymers(doc *Document) ([]*Polymer, map[string]*Polymer, error) {
	subjects, err := doc.OtherSubstances()
	if err != nil {
		return nil, nil, err
	}

	var polymers []*Polymer
	for _, subject := range subjects {
		code := codeOf(subject)
		if code == "" {
			return nil, nil, errorf("auxiliary substance code not found")
		}

		moiety, err := structureMoiety(subject)
		if err != nil {
			return nil, nil, err
		}
		value, ok := chemStructure(moiety)
		if !ok {
			return nil, nil, errorf("chemical structure not found for substance %q", code)
		}

		points, err := connectionPoints(subject)
		if err != nil {
			return nil, nil, err
		}
		amount, err := quantityOf(moiety)
		if err != nil {
			return nil, nil, err
		}

		polymers = append(polymers, &Polymer{
			Code:   code,
			Value:  value,
			Points: points,
			Amount: amount,
		})
	}

	sort.Slice(polymers, func(i, j int) bool {
		if polymers[i].Value != polymers[j].Value {
			return polymers[i].Value < polymers[j].Value
		}
		return polymers[i].Code < polymers[j].Code
	})

	lookup := make(map[string]*Polymer, len(polymers))
	for index, polymer := range polymers {
		polymer.Name = "poly" + strconv.Itoa(index)
		lookup[polymer.Code] = polymer
	}
	return polymers, lookup, nil
}

// structureMoiety resolves the moiety carrying the substance's chemical
// structure: the one whose partMoiety code matches the generalized material
// kind code.
func structureMoiety(subject *etree.Element) (*etree.Element, error) {
	moietyCode := attr(descend(subject, "asSpecializedKind", "generalizedMaterialKind", "code"), "code")
	if moietyCode == "" {
		return nil, errorf("moiety code not found")
	}

	var found []*etree.Element
	for _, moiety := range children(subject, "moiety") {
		if codeOf(child(moiety, "partMoiety")) == moietyCode {
			found = append(found, moiety)
		}
	}
	if len(found) != 1 {
		return nil, errorf("moiety %q not found", moietyCode)
	}
	return found[0], nil
}

func connectionPoints(subject *etree.Element) ([]ConnectionPoint, error) {
	var points []ConnectionPoint
	for _, moiety := range childrenWithCode(subject, "moiety", codeConnectionPoint) {
		positions := positionValues(moiety)
		if len(positions) != 2 {
			return nil, errorf("connection point needs two positions, got %d", len(positions))
		}
		points = append(points, ConnectionPoint{Amino: positions[0], Carboxyl: positions[1]})
	}
	return points, nil
}

// quantityOf reads the moiety quantity. A numerator without a value attribute
// is a low/high range; the inclusive attribute defaults to true.
func quantityOf(moiety *etree.Element) (Quantity, error) {
	numerator := descend(moiety, "quantity", "numerator")
	denominator := descend(moiety, "quantity", "denominator")
	if numerator == nil || denominator == nil {
		return Quantity{}, errorf("moiety quantity not found")
	}

	q := Quantity{
		Denom: attr(denominator, "value"),
		Unit:  attr(denominator, "unit"),
	}

	if value := attr(numerator, "value"); value != "" {
		q.Num = value
		return q, nil
	}

	low := child(numerator, "low")
	high := child(numerator, "high")
	if low == nil || high == nil {
		return Quantity{}, errorf("quantity range needs low and high bounds")
	}
	q.Ranged = true
	q.Low = attr(low, "value")
	q.High = attr(high, "value")
	q.LowInclusive = attr(low, "inclusive") != "false"
	q.HighInclusive = attr(high, "inclusive") != "false"
	return q, nil
}
