package catalog

import "sort"

// Catalog is the set of collections built from one fetch, in first-seen order.
type Catalog struct {
	collections []*Collection
	bySlug      map[string]*Collection
	duplicates  []Key
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{bySlug: make(map[string]*Collection)}
}

// Build groups records into collections in first-seen order. A record whose
// key was already seen is dropped and reported by Duplicates.
func Build(records []Record) *Catalog {
	c := New()
	for _, r := range records {
		c.Add(r)
	}
	return c
}

// Add inserts a record, creating its collection on first sight. It returns
// false when the key already exists.
func (c *Catalog) Add(r Record) bool {
	col, ok := c.bySlug[r.Collection]
	if !ok {
		col = NewCollection(r.Collection, r.CollectionName)
		c.bySlug[r.Collection] = col
		c.collections = append(c.collections, col)
	}
	if _, exists := col.Entity(r.ID); exists {
		c.duplicates = append(c.duplicates, r.Key())
		return false
	}
	col.Add(NewEntity(r))
	return true
}

// Collections returns the collections in first-seen order.
func (c *Catalog) Collections() []*Collection {
	out := make([]*Collection, len(c.collections))
	copy(out, c.collections)
	return out
}

// Collection looks up a collection by slug.
func (c *Catalog) Collection(slug string) (*Collection, bool) {
	col, ok := c.bySlug[slug]
	return col, ok
}

// Entities returns every entity, collection by collection.
func (c *Catalog) Entities() []*Entity {
	var out []*Entity
	for _, col := range c.collections {
		out = append(out, col.entities...)
	}
	return out
}

// Entity looks up an entity by key.
func (c *Catalog) Entity(k Key) (*Entity, bool) {
	slug, id := k.Split()
	col, ok := c.bySlug[slug]
	if !ok {
		return nil, false
	}
	return col.Entity(id)
}

// Keys returns the set of entity keys.
func (c *Catalog) Keys() KeySet {
	keys := make(KeySet)
	for _, e := range c.Entities() {
		keys.Add(e.Key())
	}
	return keys
}

// Len returns the number of entities.
func (c *Catalog) Len() int {
	n := 0
	for _, col := range c.collections {
		n += col.Len()
	}
	return n
}

// Duplicates returns the keys dropped by Build because they repeated.
func (c *Catalog) Duplicates() []Key { return c.duplicates }

// Records returns the records of every entity.
func (c *Catalog) Records() []Record {
	entities := c.Entities()
	out := make([]Record, len(entities))
	for i, e := range entities {
		out[i] = e.Record()
	}
	return out
}

// Strip returns a copy of records without the volatile last-updated
// timestamp, sorted by key so equal catalogs compare equal.
func Strip(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.LastUpdated = ""
		out[i] = r
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
