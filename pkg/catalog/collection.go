package catalog

// Collection groups the entities that share an owning subject such as a
// chain, protocol or fund.
type Collection struct {
	Name     string
	Slug     string
	entities []*Entity
}

// NewCollection creates an empty collection.
func NewCollection(slug, name string) *Collection {
	if name == "" {
		name = slug
	}
	return &Collection{Name: name, Slug: slug}
}

// Entities returns the owned entities in insertion order.
func (c *Collection) Entities() []*Entity {
	out := make([]*Entity, len(c.entities))
	copy(out, c.entities)
	return out
}

// Len returns the number of owned entities.
func (c *Collection) Len() int { return len(c.entities) }

// Add attaches e to the collection, detaching it from any previous owner.
func (c *Collection) Add(e *Entity) {
	if e.collection == c {
		return
	}
	if e.collection != nil {
		e.collection.Remove(e.ID())
	}
	e.collection = c
	c.entities = append(c.entities, e)
}

// Remove detaches the entity with the given identifier and returns it.
func (c *Collection) Remove(id string) (*Entity, bool) {
	for i, e := range c.entities {
		if e.ID() == id {
			c.entities = append(c.entities[:i], c.entities[i+1:]...)
			e.collection = nil
			return e, true
		}
	}
	return nil, false
}

// Entity returns the entity with the given identifier.
func (c *Collection) Entity(id string) (*Entity, bool) {
	for _, e := range c.entities {
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}
