package datacache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/metricdocs/pkg/catalog"
)

// TestCache_BasicOperations tests Get, Set, and Delete.
func TestCache_BasicOperations(t *testing.T) {
	c := New()

	t.Run("Set and Get", func(t *testing.T) {
		payload := map[string]any{"bitcoin": []any{}}
		c.Set("chains/fees", payload)

		got, found := c.Get("chains/fees")
		assert.True(t, found)
		assert.Equal(t, payload, got)
	})

	t.Run("Set replaces", func(t *testing.T) {
		c.Set("chains/fees", "second")
		got, _ := c.Get("chains/fees")
		assert.Equal(t, "second", got)
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, found := c.Get("chains/missing")
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set("chains/tmp", 1)
		c.Delete("chains/tmp")
		_, found := c.Get("chains/tmp")
		assert.False(t, found)
	})
}

func TestCache_Keys(t *testing.T) {
	c := New()
	c.Set("b/two", 2)
	c.Set("a/one", 1)
	assert.Equal(t, []catalog.Key{"a/one", "b/two"}, c.Keys())
	assert.Equal(t, 2, c.ItemCount())
}

func TestCache_Nil(t *testing.T) {
	var c *Cache
	_, found := c.Get("a/b")
	assert.False(t, found)
	assert.Zero(t, c.ItemCount())
	assert.Nil(t, c.Keys())
}

// TestCache_Concurrent tests concurrent writers as used by validation batches.
func TestCache_Concurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(catalog.NewKey("c", fmt.Sprintf("m%d", i)), i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, c.ItemCount())
}
