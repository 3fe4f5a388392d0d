package items

import (
	"slices"
	"sync"
	"time"

	"github.com/getmockd/itemd/internal/id"
)

// Store owns every item and the identifier counter.
type Store struct {
	mu       sync.RWMutex
	items    map[int64]*Item
	order    []int64 // creation order; identifiers are never reordered
	seq      id.Sequence
	seed     []map[string]any
	observer Observer
}

// Option configures a Store.
type Option func(*Store)

// WithSeed sets the records loaded at construction and on Reset.
func WithSeed(seed []map[string]any) Option {
	return func(s *Store) {
		s.seed = seed
	}
}

// WithObserver sets the hooks notified after each operation.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewStore creates a store, loading seed data if configured.
func NewStore(opts ...Option) *Store {
	s := &Store{observer: &NoopObserver{}}
	for _, opt := range opts {
		opt(s)
	}
	s.resetLocked()
	return s
}

// Create stores a new item under the next identifier and returns it.
// An IDField key in fields is ignored.
func (s *Store) Create(fields map[string]any) Item {
	start := time.Now()

	s.mu.Lock()
	item := s.insertLocked(fields)
	s.mu.Unlock()

	s.observer.OnCreate(item.ID, time.Since(start))
	return item
}

// List returns every item in creation order.
func (s *Store) List() []Item {
	start := time.Now()

	s.mu.RLock()
	result := make([]Item, 0, len(s.order))
	for _, itemID := range s.order {
		result = append(result, s.items[itemID].Clone())
	}
	s.mu.RUnlock()

	s.observer.OnList(len(result), time.Since(start))
	return result
}

// Get returns the item with the given identifier.
func (s *Store) Get(itemID int64) (Item, error) {
	start := time.Now()

	s.mu.RLock()
	existing, ok := s.items[itemID]
	var item Item
	if ok {
		item = existing.Clone()
	}
	s.mu.RUnlock()

	if !ok {
		return Item{}, s.notFound("get", itemID)
	}
	s.observer.OnRead(itemID, time.Since(start))
	return item, nil
}

// Update shallow-merges fields into an existing item and returns the result.
// Keys in fields overwrite existing keys; the identifier never changes.
func (s *Store) Update(itemID int64, fields map[string]any) (Item, error) {
	start := time.Now()

	s.mu.Lock()
	existing, ok := s.items[itemID]
	var item Item
	if ok {
		for k, v := range stripSystemFields(fields) {
			existing.Fields[k] = v
		}
		item = existing.Clone()
	}
	s.mu.Unlock()

	if !ok {
		return Item{}, s.notFound("update", itemID)
	}
	s.observer.OnUpdate(itemID, time.Since(start))
	return item, nil
}

// Delete removes an item and returns it as it was before removal.
func (s *Store) Delete(itemID int64) (Item, error) {
	start := time.Now()

	s.mu.Lock()
	existing, ok := s.items[itemID]
	if ok {
		delete(s.items, itemID)
		if idx := slices.Index(s.order, itemID); idx >= 0 {
			s.order = slices.Delete(s.order, idx, idx+1)
		}
	}
	s.mu.Unlock()

	if !ok {
		return Item{}, s.notFound("delete", itemID)
	}
	s.observer.OnDelete(itemID, time.Since(start))
	return *existing, nil
}

// Count returns the number of items currently stored.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// NextID returns the identifier the next Create will assign.
func (s *Store) NextID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq.Peek()
}

// Reset discards all items, restarts the counter at 1 and reloads seed data.
// The store afterwards is indistinguishable from a newly constructed one.
// Returns the number of items after the reset.
func (s *Store) Reset() int {
	start := time.Now()

	s.mu.Lock()
	s.resetLocked()
	count := len(s.order)
	s.mu.Unlock()

	s.observer.OnReset(count, time.Since(start))
	return count
}

// resetLocked rebuilds state from seed data. Callers hold mu or own s exclusively.
func (s *Store) resetLocked() {
	s.items = make(map[int64]*Item, len(s.seed))
	s.order = make([]int64, 0, len(s.seed))
	s.seq.Reset()
	for _, data := range s.seed {
		s.insertLocked(data)
	}
}

// insertLocked appends a new item. Callers hold mu.
func (s *Store) insertLocked(fields map[string]any) Item {
	item := &Item{
		ID:     s.seq.Next(),
		Fields: stripSystemFields(fields),
	}
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	return item.Clone()
}

func (s *Store) notFound(operation string, itemID int64) error {
	err := &NotFoundError{ID: id.Format(itemID)}
	s.observer.OnError(operation, err)
	return err
}
