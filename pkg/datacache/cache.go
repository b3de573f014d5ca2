// Package datacache holds the sample payloads fetched during validation so
// later stages can reuse them without fetching again. A cache lives for one
// run and is passed explicitly; there is no process-wide instance.
package datacache

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/metricdocs/pkg/catalog"
)

// Cache maps entity keys to decoded sample payloads. It is safe for
// concurrent use.
type Cache struct {
	store *gocache.Cache
}

// New creates an empty cache. Entries never expire.
func New() *Cache {
	return &Cache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves the payload stored for key.
func (c *Cache) Get(key catalog.Key) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.store.Get(string(key))
}

// Set stores payload under key, replacing any previous value.
func (c *Cache) Set(key catalog.Key, payload any) {
	c.store.Set(string(key), payload, gocache.NoExpiration)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key catalog.Key) {
	c.store.Delete(string(key))
}

// Keys returns the cached keys in ascending order.
func (c *Cache) Keys() []catalog.Key {
	if c == nil {
		return nil
	}
	set := catalog.NewKeySet()
	for k := range c.store.Items() {
		set.Add(catalog.Key(k))
	}
	return set.Sorted()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	if c == nil {
		return 0
	}
	return c.store.ItemCount()
}
