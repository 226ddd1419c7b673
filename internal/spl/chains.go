package spl

import (
	"sort"
	"strconv"

	"github.com/beevik/etree"
)

// Chain is one polypeptide chain: its document-local id, its amino acid
// sequence, and the stable name assigned after ordering (chain0, chain1, ...).
type Chain struct {
	LocalID string
	Value   string
	Name    string
}

// Field implements document.Element.
func (c *Chain) Field(name string) (string, bool) {
	switch name {
	case "name":
		return c.Name, true
	case "value":
		return c.Value, true
	case "local_id":
		return c.LocalID, true
	}
	return "", false
}

// loadChains reads the main substance's chain moieties (C118424). Chains are
// ordered by (sequence, local id) so names stay stable regardless of document
// element order; the lookup keys by local id for bond resolution.
func loadChains(doc *Document) ([]*Chain, map[string]*Chain, error) {
	substance, err := doc.Substance()
	if err != nil {
		return nil, nil, err
	}

	var chains []*Chain
	for _, moiety := range childrenWithCode(substance, "moiety", codeChainMoiety) {
		localID := attr(descend(moiety, "partMoiety", "id"), "extension")
		if localID == "" {
			return nil, nil, errorf("chain local id not found")
		}
		value, ok := characteristicValue(moiety, "application/x-aa-seq")
		if !ok {
			return nil, nil, errorf("polypeptide chain sequence not found for %q", localID)
		}
		chains = append(chains, &Chain{LocalID: localID, Value: value})
	}

	sort.Slice(chains, func(i, j int) bool {
		if chains[i].Value != chains[j].Value {
			return chains[i].Value < chains[j].Value
		}
		return chains[i].LocalID < chains[j].LocalID
	})

	lookup := make(map[string]*Chain, len(chains))
	for index, chain := range chains {
		chain.Name = "chain" + strconv.Itoa(index)
		lookup[chain.LocalID] = chain
	}
	return chains, lookup, nil
}

// positionValues returns the positionNumber attribute values of an element in
// document order.
func positionValues(e *etree.Element) []string {
	var out []string
	for _, position := range children(e, "positionNumber") {
		out = append(out, attr(position, "value"))
	}
	return out
}

func positionInts(e *etree.Element) ([]int, error) {
	values := positionValues(e)
	out := make([]int, 0, len(values))
	for _, value := range values {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, errorf("position %q is not numeric", value)
		}
		out = append(out, n)
	}
	return out, nil
}
