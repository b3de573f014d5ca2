package metricdocs

import (
	"sync"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/reconciler"
)

// Hook function types for reconciliation events
type (
	// EntityAddedHook is called for an entity that has no page yet
	EntityAddedHook func(entity *catalog.Entity)

	// EntityRemovedHook is called for a page whose entity left the catalog
	EntityRemovedHook func(key catalog.Key)
)

// hooks manages event callbacks for reconciliation results
type hooks struct {
	mu              sync.RWMutex
	onEntityAdded   []EntityAddedHook
	onEntityRemoved []EntityRemovedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnEntityAdded registers a callback for when entities are added
func (e *engine) OnEntityAdded(fn EntityAddedHook) {
	e.hooks.mu.Lock()
	defer e.hooks.mu.Unlock()
	e.hooks.onEntityAdded = append(e.hooks.onEntityAdded, fn)
}

// OnEntityRemoved registers a callback for when entities are removed
func (e *engine) OnEntityRemoved(fn EntityRemovedHook) {
	e.hooks.mu.Lock()
	defer e.hooks.mu.Unlock()
	e.hooks.onEntityRemoved = append(e.hooks.onEntityRemoved, fn)
}

// triggerReconcile fires hooks for every added and removed key, in key order.
func (h *hooks) triggerReconcile(cat *catalog.Catalog, diff *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, key := range diff.Added {
		entity, ok := cat.Entity(key)
		if !ok {
			continue
		}
		for _, hook := range h.onEntityAdded {
			hook(entity)
		}
	}

	for _, key := range diff.Removed {
		for _, hook := range h.onEntityRemoved {
			hook(key)
		}
	}
}
