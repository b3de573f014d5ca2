package catalog

import (
	"sort"
	"strings"
)

// Key identifies an entity as "collectionSlug/identifier". The scanner and
// the fetcher must produce byte-identical keys for the same entity; no case
// folding or other normalization is applied.
type Key string

// NewKey joins a collection slug and an identifier.
func NewKey(collection, id string) Key {
	return Key(collection + "/" + id)
}

// Split returns the collection slug and identifier parts.
func (k Key) Split() (collection, id string) {
	collection, id, _ = strings.Cut(string(k), "/")
	return collection, id
}

// String implements fmt.Stringer.
func (k Key) String() string { return string(k) }

// KeySet is a set of entity keys.
type KeySet map[Key]struct{}

// NewKeySet creates a set holding keys.
func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts k.
func (s KeySet) Add(k Key) { s[k] = struct{}{} }

// Has reports membership.
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of keys.
func (s KeySet) Len() int { return len(s) }

// Sorted returns the keys in ascending order.
func (s KeySet) Sorted() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
