package itinerary

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store is the in-memory itinerary collection. Every mutation is one atomic
// state transition under the lock; there is no partial-apply failure mode.
type Store struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*Itinerary
	now   func() time.Time
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Itinerary), now: time.Now}
}

// NewStoreWithClock constructs a Store with an injectable clock (for tests).
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	s.now = now
	return s
}

// Create adds a new named itinerary. The name must be non-empty after
// trimming. When initial is non-nil (the pending-item handoff case) it is
// wrapped with a fresh item id and appended.
func (s *Store) Create(name string, initial *NewItem) (Itinerary, error) {
	if strings.TrimSpace(name) == "" {
		return Itinerary{}, fmt.Errorf("%w: itinerary name is required", ErrValidation)
	}
	if initial != nil {
		if err := initial.validate(); err != nil {
			return Itinerary{}, err
		}
	}

	it := &Itinerary{
		ID:        newID(),
		Name:      name,
		CreatedAt: s.now(),
		Items:     []Item{},
	}
	if initial != nil {
		it.Items = append(it.Items, Item{
			ID:      newID(),
			Type:    initial.Type,
			Payload: initial.Payload,
			Date:    initial.Date,
		})
	}

	s.mu.Lock()
	s.byID[it.ID] = it
	s.order = append(s.order, it.ID)
	s.mu.Unlock()

	return snapshot(it), nil
}

// Delete removes the itinerary and everything in it. Unknown ids are a
// no-op; confirmation belongs to the boundary layer, not here.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// AddItem appends an item to the itinerary, assigning it a fresh id.
// Insertion order is preserved.
func (s *Store) AddItem(itineraryID string, item NewItem) (Item, error) {
	if err := item.validate(); err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.byID[itineraryID]
	if !ok {
		return Item{}, fmt.Errorf("%w: itinerary %s", ErrNotFound, itineraryID)
	}

	added := Item{
		ID:      newID(),
		Type:    item.Type,
		Payload: item.Payload,
		Date:    item.Date,
	}
	it.Items = append(it.Items, added)
	return added, nil
}

// RemoveItem removes exactly the item with the matching id, leaving sibling
// order unchanged.
func (s *Store) RemoveItem(itineraryID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.byID[itineraryID]
	if !ok {
		return fmt.Errorf("%w: itinerary %s", ErrNotFound, itineraryID)
	}

	for i, item := range it.Items {
		if item.ID == itemID {
			it.Items = append(it.Items[:i], it.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: item %s", ErrNotFound, itemID)
}

// Get returns a snapshot of the itinerary.
func (s *Store) Get(id string) (Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.byID[id]
	if !ok {
		return Itinerary{}, fmt.Errorf("%w: itinerary %s", ErrNotFound, id)
	}
	return snapshot(it), nil
}

// List returns snapshots of all itineraries in creation order.
func (s *Store) List() []Itinerary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Itinerary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, snapshot(s.byID[id]))
	}
	return out
}

// snapshot copies an itinerary so callers never alias store-owned slices.
func snapshot(it *Itinerary) Itinerary {
	cp := *it
	cp.Items = append([]Item{}, it.Items...)
	return cp
}
