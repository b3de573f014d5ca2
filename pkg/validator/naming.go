package validator

import (
	"fmt"

	"github.com/agentstation/metricdocs/pkg/catalog"
)

// NamingRule ties an identifier suffix to the value kind it implies.
type NamingRule struct {
	Suffix string
	Kind   catalog.ValueKind
}

// DefaultNamingRules is the identifier naming convention of the catalog.
var DefaultNamingRules = []NamingRule{
	{Suffix: "_usd", Kind: catalog.KindCurrency},
	{Suffix: "_count", Kind: catalog.KindCount},
	{Suffix: "_pct", Kind: catalog.KindPercentage},
	{Suffix: "_percent", Kind: catalog.KindPercentage},
	{Suffix: "_ratio", Kind: catalog.KindRatio},
}

// CheckNaming compares an entity's declared kind with the kind its
// identifier implies. It does no I/O.
func CheckNaming(e *catalog.Entity, rules []NamingRule) []catalog.Finding {
	if !e.Kind().Known() {
		return []catalog.Finding{{
			Code:     CodeUnknownKind,
			Message:  fmt.Sprintf("declared kind %q is not a known value kind", e.Kind()),
			Fragment: string(e.Kind()),
			Count:    1,
		}}
	}

	for _, rule := range rules {
		if !e.HasSuffix(rule.Suffix) {
			continue
		}
		if e.Kind() != rule.Kind {
			return []catalog.Finding{{
				Code:     CodeKindMismatch,
				Message:  fmt.Sprintf("identifier ends in %s but declares kind %q, expected %q", rule.Suffix, e.Kind(), rule.Kind),
				Fragment: e.ID(),
				Count:    1,
			}}
		}
		return nil
	}
	return nil
}
