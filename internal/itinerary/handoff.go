package itinerary

import "sync"

// Handoff carries the single item selected for itinerary-addition before a
// target itinerary has been chosen.
//
// The state machine is NONE → PENDING on Set, and PENDING → NONE on a
// successful AssignTo/AssignToNew or on Cancel. At most one item is pending;
// a new Set replaces the previous one. A failed assignment leaves the item
// pending so the user can pick again.
type Handoff struct {
	mu      sync.Mutex
	pending *NewItem
}

// NewHandoff constructs an empty Handoff.
func NewHandoff() *Handoff {
	return &Handoff{}
}

// Set stages an item for assignment, replacing any previously staged item.
func (h *Handoff) Set(item NewItem) error {
	if err := item.validate(); err != nil {
		return err
	}
	h.mu.Lock()
	h.pending = &item
	h.mu.Unlock()
	return nil
}

// Pending returns the staged item, or nil when nothing is pending.
func (h *Handoff) Pending() *NewItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		return nil
	}
	cp := *h.pending
	return &cp
}

// Cancel discards the staged item. Idempotent.
func (h *Handoff) Cancel() {
	h.mu.Lock()
	h.pending = nil
	h.mu.Unlock()
}

// AssignTo appends the staged item to an existing itinerary. The item is
// consumed only when the store accepts it.
func (h *Handoff) AssignTo(store *Store, itineraryID string) (Item, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending == nil {
		return Item{}, ErrNoPending
	}

	added, err := store.AddItem(itineraryID, *h.pending)
	if err != nil {
		return Item{}, err
	}
	h.pending = nil
	return added, nil
}

// AssignToNew creates a new itinerary seeded with the staged item. The item
// is consumed only when creation succeeds.
func (h *Handoff) AssignToNew(store *Store, name string) (Itinerary, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending == nil {
		return Itinerary{}, ErrNoPending
	}

	created, err := store.Create(name, h.pending)
	if err != nil {
		return Itinerary{}, err
	}
	h.pending = nil
	return created, nil
}
