// Package differ compares shape fingerprints and reports structural drift.
package differ

import (
	"fmt"
	"strings"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdded indicates a field present only in the new shape.
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeRemoved indicates a field present only in the old shape.
	ChangeTypeRemoved ChangeType = "removed"
	// ChangeTypeTypeChanged indicates a field whose kind or primitive type changed.
	ChangeTypeTypeChanged ChangeType = "type_changed"
)

// Change represents a change to a single field path.
type Change struct {
	Path     string     // Field path (e.g., "data[].value")
	Type     ChangeType // Type of change
	OldShape string     // Rendered old shape, empty for additions
	NewShape string     // Rendered new shape, empty for removals
}

// String renders the change for reports.
func (c Change) String() string {
	switch c.Type {
	case ChangeTypeAdded:
		return fmt.Sprintf("+ %s (%s)", c.Path, c.NewShape)
	case ChangeTypeRemoved:
		return fmt.Sprintf("- %s (%s)", c.Path, c.OldShape)
	default:
		return fmt.Sprintf("~ %s (%s -> %s)", c.Path, c.OldShape, c.NewShape)
	}
}

// Changeset is the list of changes between two shapes. Callers should rely
// on set membership only, not on order.
type Changeset struct {
	Changes []Change
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c != nil && len(c.Changes) > 0
}

// ByType returns the changes of the given type.
func (c *Changeset) ByType(t ChangeType) []Change {
	var out []Change
	for _, ch := range c.Changes {
		if ch.Type == t {
			out = append(out, ch)
		}
	}
	return out
}

// Paths returns the changed paths of the given type.
func (c *Changeset) Paths(t ChangeType) []string {
	var out []string
	for _, ch := range c.ByType(t) {
		out = append(out, ch.Path)
	}
	return out
}

// String returns a one-line summary.
func (c *Changeset) String() string {
	if !c.HasChanges() {
		return "no shape changes"
	}
	parts := []string{}
	for _, t := range []ChangeType{ChangeTypeAdded, ChangeTypeRemoved, ChangeTypeTypeChanged} {
		if n := len(c.ByType(t)); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ReplaceAll(string(t), "_", " ")))
		}
	}
	return strings.Join(parts, ", ")
}
