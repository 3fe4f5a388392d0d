// Package items provides the in-memory item store behind the itemd API.
//
// An item is a schema-less JSON object plus an integer identifier assigned
// by the store. The package supports:
//
//   - Create, List, Get, Update (shallow merge) and Delete
//   - Identifiers assigned from 1 upward and never reused
//   - Creation-order listing with optional expression filters
//   - Seed data loaded from YAML or JSON files, restored on Reset
//   - Observer hooks for metrics and logging
//
// Core Types:
//
//   - Store: owner of all items and the identifier counter
//   - Item: a single record, flattened to {"id": n, ...fields} on the wire
//   - NotFoundError: the only failure a store operation reports
//
// Thread Safety:
//
// All Store methods are safe for concurrent use. Writes are serialized with
// a sync.RWMutex; reads proceed concurrently. Items returned by the store
// are copies, so callers never share state with it.
//
// Usage:
//
//	store := items.NewStore()
//
//	created := store.Create(map[string]any{"name": "Test Item"}) // id 1
//	all := store.List()
//	item, err := store.Get(1)
//	item, err = store.Update(1, map[string]any{"name": "New"})
//	item, err = store.Delete(1)
//	if errors.Is(err, items.ErrNotFound) {
//	    // 404
//	}
package items
