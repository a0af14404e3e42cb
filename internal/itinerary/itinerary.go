// Package itinerary holds the in-memory trip-assembly state: named
// itineraries of selected travel items, and the pending-item handoff used
// when an item is picked before a target itinerary exists.
//
// Nothing here is persisted; itineraries are session state and do not
// survive a restart.
package itinerary

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemType classifies what an itinerary item's payload holds.
type ItemType string

const (
	TypeFlight      ItemType = "flight"
	TypeHotel       ItemType = "hotel"
	TypeDestination ItemType = "destination"
)

// valid reports whether t is one of the known item types.
func (t ItemType) valid() bool {
	switch t {
	case TypeFlight, TypeHotel, TypeDestination:
		return true
	}
	return false
}

// Item is one entry in an itinerary. Payload is the provider-shaped offer or
// destination record, carried opaquely.
type Item struct {
	ID      string          `json:"id"`
	Type    ItemType        `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Date    string          `json:"date,omitempty"`
}

// NewItem is the caller-supplied half of an Item: everything except the id,
// which the store assigns.
type NewItem struct {
	Type    ItemType        `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Date    string          `json:"date,omitempty"`
}

// validate checks a NewItem before the store accepts it.
func (n NewItem) validate() error {
	if !n.Type.valid() {
		return fmt.Errorf("%w: unknown item type %q", ErrValidation, n.Type)
	}
	return nil
}

// Itinerary is a user-named, ordered collection of items. Its id is stable
// for its lifetime and item ids are unique within it.
type Itinerary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Items     []Item    `json:"items"`
}

// newID returns a fresh unique id for itineraries and items.
func newID() string {
	return uuid.NewString()
}
