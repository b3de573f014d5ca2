package reconciler

import (
	"fmt"

	"github.com/agentstation/metricdocs/pkg/catalog"
)

// Result represents the outcome of a reconciliation.
type Result struct {
	// Added are keys present only in the incoming catalog.
	Added []catalog.Key

	// Removed are keys present only in the output tree.
	Removed []catalog.Key

	// Unchanged counts keys present in both.
	Unchanged int
}

// HasChanges returns true if any entity was added or removed.
func (r *Result) HasChanges() bool {
	return r != nil && (len(r.Added) > 0 || len(r.Removed) > 0)
}

// RemovedSet returns the removed keys as a set.
func (r *Result) RemovedSet() catalog.KeySet {
	return catalog.NewKeySet(r.Removed...)
}

// Summary returns a human-readable summary of the reconciliation.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d added, %d removed, %d unchanged", len(r.Added), len(r.Removed), r.Unchanged)
}
