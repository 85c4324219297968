// Package storage provides the key-value persistence layer. Each logical
// collection (items, categories, orders, ...) is serialized whole into a
// single value under a fixed key, so every write is one replace of the
// entire collection: last writer wins, no row-level locking.
package storage

import (
	"context"
	"sync"
)

// Storage keys, one per logical collection.
const (
	KeyItems      = "restaurant_pos_items"
	KeyCategories = "restaurant_pos_categories"
	KeyOrders     = "restaurant_pos_orders"
	KeySettings   = "restaurant_pos_settings"
	KeyHeldBills  = "restaurant_pos_held_bills"
	KeyAdminPIN   = "restaurant_pos_admin_pin"
	KeyCart       = "restaurant_pos_cart"
	KeyIdempotent = "restaurant_pos_idempotency"
)

// Store is generic get/set over the persistent key-value medium. It is the
// only component that touches the underlying storage.
//
// Get reports found=false both when the key is absent and when the stored
// value cannot be deserialized into dest; malformed data is treated as
// absent, never as a fatal error. Set replaces the whole value. Failures
// surface as apperror persistence errors and are never retried silently.
type Store interface {
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error

	// Subscribe registers a callback fired after every successful Set or
	// Delete of the given key. Notification is in-process and eventual:
	// subscribers re-read the store to observe the new state. The returned
	// cancel func removes the subscription.
	Subscribe(key string, fn func(key string)) (cancel func())
}

// hub is the change-notification registry shared by store implementations.
// It replaces the original client's one-second polling loop with explicit
// observer callbacks while keeping the same eventual, read-driven semantics.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func(string)
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[int]func(string))}
}

func (h *hub) subscribe(key string, fn func(string)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	if h.subs[key] == nil {
		h.subs[key] = make(map[int]func(string))
	}
	h.subs[key][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[key], id)
	}
}

// notify fires callbacks asynchronously so a subscriber reading back through
// the same service cannot deadlock against the writer's lock.
func (h *hub) notify(key string) {
	h.mu.Lock()
	fns := make([]func(string), 0, len(h.subs[key]))
	for _, fn := range h.subs[key] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		go fn(key)
	}
}
