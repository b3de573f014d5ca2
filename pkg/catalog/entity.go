// Package catalog holds the in-memory entity model: metric entities grouped
// by their owning collection. The model is rebuilt from the remote catalog on
// every run and performs no I/O.
package catalog

import "strings"

// ValueKind is the declared value type of an entity's data points.
type ValueKind string

// Known value kinds.
const (
	KindCurrency   ValueKind = "currency"
	KindNumber     ValueKind = "number"
	KindCount      ValueKind = "count"
	KindPercentage ValueKind = "percentage"
	KindRatio      ValueKind = "ratio"
	KindString     ValueKind = "string"
)

// Known reports whether k is one of the declared value kinds.
func (k ValueKind) Known() bool {
	switch k {
	case KindCurrency, KindNumber, KindCount, KindPercentage, KindRatio, KindString:
		return true
	}
	return false
}

// Record is the wire and persistence form of an entity, exactly as the
// catalog API lists it.
type Record struct {
	ID             string    `json:"id"`
	Collection     string    `json:"project"`
	CollectionName string    `json:"project_name,omitempty"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Kind           ValueKind `json:"type"`
	Source         string    `json:"source"`
	Interval       string    `json:"interval"`
	Aggregation    string    `json:"aggregation"`
	Category       string    `json:"category"`
	LastUpdated    string    `json:"last_updated,omitempty"`
}

// Key returns the record's entity key.
func (r Record) Key() Key {
	return NewKey(r.Collection, r.ID)
}

// Finding is a single validation observation attached to an entity.
type Finding struct {
	Code     string
	Message  string
	Fragment string

	// Count is how many occurrences were collapsed into this finding.
	Count int
}

// Entity is one catalog item. Everything except the findings list and the
// collection back-reference is fixed at construction.
type Entity struct {
	record     Record
	findings   []Finding
	collection *Collection
}

// NewEntity creates an entity from its record. The entity has no collection
// until it is added to one.
func NewEntity(r Record) *Entity {
	return &Entity{record: r}
}

// ID returns the entity identifier.
func (e *Entity) ID() string { return e.record.ID }

// CollectionKey returns the key of the owning collection.
func (e *Entity) CollectionKey() string { return e.record.Collection }

// Name returns the human name.
func (e *Entity) Name() string { return e.record.Name }

// Description returns the free-text description.
func (e *Entity) Description() string { return e.record.Description }

// Kind returns the declared value kind.
func (e *Entity) Kind() ValueKind { return e.record.Kind }

// Source returns the source label.
func (e *Entity) Source() string { return e.record.Source }

// Interval returns the interval or cadence label.
func (e *Entity) Interval() string { return e.record.Interval }

// Aggregation returns the aggregation rule.
func (e *Entity) Aggregation() string { return e.record.Aggregation }

// Category returns the category label.
func (e *Entity) Category() string { return e.record.Category }

// LastUpdated returns the volatile last-updated timestamp as sent by the API.
func (e *Entity) LastUpdated() string { return e.record.LastUpdated }

// Record returns a copy of the entity's record.
func (e *Entity) Record() Record { return e.record }

// Key returns the entity key (collection slug and identifier).
func (e *Entity) Key() Key {
	return NewKey(e.record.Collection, e.record.ID)
}

// Collection returns the owning collection, or nil when detached.
func (e *Entity) Collection() *Collection { return e.collection }

// AddFinding appends a validation finding.
func (e *Entity) AddFinding(f Finding) {
	e.findings = append(e.findings, f)
}

// Findings returns the accumulated findings.
func (e *Entity) Findings() []Finding {
	out := make([]Finding, len(e.findings))
	copy(out, e.findings)
	return out
}

// HasSuffix reports whether the identifier ends with suffix, ignoring case.
func (e *Entity) HasSuffix(suffix string) bool {
	return strings.HasSuffix(strings.ToLower(e.record.ID), strings.ToLower(suffix))
}
