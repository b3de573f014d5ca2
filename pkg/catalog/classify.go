package catalog

import "strings"

// ClassKind names a collection classification.
type ClassKind string

// Classification kinds, in descending precedence.
const (
	ClassChain    ClassKind = "chain"
	ClassTreasury ClassKind = "treasury"
	ClassFund     ClassKind = "fund"
	ClassGeneric  ClassKind = "generic"
)

// Classification is the derived kind of a collection. It is computed from
// the current members on every call and never stored.
type Classification interface {
	Kind() ClassKind
	isClassification()
}

// Chain classifies a collection describing a blockchain network.
type Chain struct {
	// Evidence is the identifier of the entity that decided the class.
	Evidence string
}

// Treasury classifies a collection tracking treasury holdings.
type Treasury struct {
	Evidence string
}

// Fund classifies a fund-like collection (funds, ETFs).
type Fund struct {
	Evidence string
}

// Generic is any collection without a more specific class.
type Generic struct{}

func (Chain) Kind() ClassKind    { return ClassChain }
func (Treasury) Kind() ClassKind { return ClassTreasury }
func (Fund) Kind() ClassKind     { return ClassFund }
func (Generic) Kind() ClassKind  { return ClassGeneric }

func (Chain) isClassification()    {}
func (Treasury) isClassification() {}
func (Fund) isClassification()     {}
func (Generic) isClassification()  {}

// Classify derives the classification of c from its member entities.
// Chain wins over treasury, treasury over fund, fund over generic.
func Classify(c *Collection) Classification {
	if c == nil {
		return Generic{}
	}

	var treasury, fund string
	for _, e := range c.entities {
		category := strings.ToLower(strings.TrimSpace(e.Category()))
		id := strings.ToLower(e.ID())
		switch {
		case category == "chain" || category == "blockchain":
			return Chain{Evidence: e.ID()}
		case treasury == "" && (category == "treasury" || strings.HasPrefix(id, "treasury")):
			treasury = e.ID()
		case fund == "" && (category == "fund" || category == "etf" || strings.HasSuffix(id, "_aum")):
			fund = e.ID()
		}
	}

	switch {
	case treasury != "":
		return Treasury{Evidence: treasury}
	case fund != "":
		return Fund{Evidence: fund}
	}
	return Generic{}
}
