package itinerary_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travex/travex/internal/itinerary"
)

func TestHandoff_InitiallyEmpty(t *testing.T) {
	h := itinerary.NewHandoff()
	assert.Nil(t, h.Pending())
}

func TestHandoff_SetReplacesPrevious(t *testing.T) {
	h := itinerary.NewHandoff()

	require.NoError(t, h.Set(flightItem()))
	require.NoError(t, h.Set(hotelItem()))

	pending := h.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, itinerary.TypeHotel, pending.Type, "at most one item is pending; Set replaces")
}

func TestHandoff_SetRejectsUnknownType(t *testing.T) {
	h := itinerary.NewHandoff()
	require.ErrorIs(t, h.Set(itinerary.NewItem{Type: "cruise"}), itinerary.ErrValidation)
	assert.Nil(t, h.Pending())
}

func TestHandoff_Cancel(t *testing.T) {
	h := itinerary.NewHandoff()
	require.NoError(t, h.Set(flightItem()))

	h.Cancel()
	assert.Nil(t, h.Pending())

	h.Cancel() // idempotent
	assert.Nil(t, h.Pending())
}

func TestHandoff_AssignTo_ConsumesPending(t *testing.T) {
	s := itinerary.NewStore()
	h := itinerary.NewHandoff()

	it, err := s.Create("Trip", nil)
	require.NoError(t, err)
	require.NoError(t, h.Set(flightItem()))

	added, err := h.AssignTo(s, it.ID)
	require.NoError(t, err)
	assert.Equal(t, itinerary.TypeFlight, added.Type)
	assert.Nil(t, h.Pending(), "successful assignment consumes the pending item")

	got, err := s.Get(it.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, added.ID, got.Items[0].ID)
}

func TestHandoff_AssignTo_UnknownItineraryKeepsPending(t *testing.T) {
	s := itinerary.NewStore()
	h := itinerary.NewHandoff()
	require.NoError(t, h.Set(flightItem()))

	_, err := h.AssignTo(s, "no-such-itinerary")
	require.ErrorIs(t, err, itinerary.ErrNotFound)
	assert.NotNil(t, h.Pending(), "a failed assignment leaves the item pending")
}

func TestHandoff_AssignTo_NothingPending(t *testing.T) {
	s := itinerary.NewStore()
	h := itinerary.NewHandoff()

	it, err := s.Create("Trip", nil)
	require.NoError(t, err)

	_, err = h.AssignTo(s, it.ID)
	require.ErrorIs(t, err, itinerary.ErrNoPending)
}

func TestHandoff_AssignToNew_SeedsItinerary(t *testing.T) {
	s := itinerary.NewStore()
	h := itinerary.NewHandoff()

	item := itinerary.NewItem{
		Type:    itinerary.TypeDestination,
		Payload: json.RawMessage(`{"name":"Paris","iataCode":"PAR"}`),
	}
	require.NoError(t, h.Set(item))

	created, err := h.AssignToNew(s, "Summer Europe Trip")
	require.NoError(t, err)
	assert.Equal(t, "Summer Europe Trip", created.Name)
	require.Len(t, created.Items, 1)
	assert.Equal(t, itinerary.TypeDestination, created.Items[0].Type)
	assert.Nil(t, h.Pending())
}

func TestHandoff_AssignToNew_EmptyNameKeepsPending(t *testing.T) {
	s := itinerary.NewStore()
	h := itinerary.NewHandoff()
	require.NoError(t, h.Set(flightItem()))

	_, err := h.AssignToNew(s, "  ")
	require.ErrorIs(t, err, itinerary.ErrValidation)
	assert.NotNil(t, h.Pending())
	assert.Empty(t, s.List())
}

// One pending item resolves through exactly one path: after assignment, the
// other resolution paths report nothing pending.
func TestHandoff_SingleResolution(t *testing.T) {
	s := itinerary.NewStore()
	h := itinerary.NewHandoff()

	it, err := s.Create("Trip", nil)
	require.NoError(t, err)
	require.NoError(t, h.Set(flightItem()))

	_, err = h.AssignTo(s, it.ID)
	require.NoError(t, err)

	_, err = h.AssignToNew(s, "Another")
	require.ErrorIs(t, err, itinerary.ErrNoPending)
	_, err = h.AssignTo(s, it.ID)
	require.ErrorIs(t, err, itinerary.ErrNoPending)
}
