// Package reconciler computes which entities were added to or removed from
// the catalog relative to what the output tree already holds.
package reconciler

import (
	"github.com/agentstation/metricdocs/pkg/catalog"
)

// Diff returns the set difference between the keys found in the output
// tree and the keys of the freshly fetched catalog. Keys are compared
// byte for byte.
func Diff(existing, incoming catalog.KeySet) *Result {
	r := &Result{Added: []catalog.Key{}, Removed: []catalog.Key{}}
	for _, k := range incoming.Sorted() {
		if existing.Has(k) {
			r.Unchanged++
			continue
		}
		r.Added = append(r.Added, k)
	}
	for _, k := range existing.Sorted() {
		if !incoming.Has(k) {
			r.Removed = append(r.Removed, k)
		}
	}
	return r
}
