package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/travex/travex/internal/itinerary"
)

type createItineraryRequest struct {
	Name string `json:"name"`
	// AssignPending seeds the new itinerary with the staged pending item
	// (the "create new" path of the add-to-itinerary dialog).
	AssignPending bool `json:"assign_pending,omitempty"`
}

// CreateItinerary handles POST /api/v1/itineraries.
func (h *Handlers) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req createItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		created itinerary.Itinerary
		err     error
	)
	if req.AssignPending {
		created, err = h.handoff.AssignToNew(h.store, req.Name)
	} else {
		created, err = h.store.Create(req.Name, nil)
	}
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListItineraries handles GET /api/v1/itineraries.
func (h *Handlers) ListItineraries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List())
}

// GetItinerary handles GET /api/v1/itineraries/{id}.
func (h *Handlers) GetItinerary(w http.ResponseWriter, r *http.Request) {
	it, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// DeleteItinerary handles DELETE /api/v1/itineraries/{id}. Idempotent:
// deleting an unknown id is still 204. Confirmation is the caller's concern.
func (h *Handlers) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	h.store.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/v1/itineraries/{id}/items.
func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request) {
	var item itinerary.NewItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	added, err := h.store.AddItem(chi.URLParam(r, "id"), item)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// RemoveItem handles DELETE /api/v1/itineraries/{id}/items/{itemID}.
func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveItem(chi.URLParam(r, "id"), chi.URLParam(r, "itemID")); err != nil {
		writeMappedError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPending handles POST /api/v1/pending: stages an item for assignment,
// replacing any previously staged one.
func (h *Handlers) SetPending(w http.ResponseWriter, r *http.Request) {
	var item itinerary.NewItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.handoff.Set(item); err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// GetPending handles GET /api/v1/pending.
func (h *Handlers) GetPending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]*itinerary.NewItem{"pending": h.handoff.Pending()})
}

type assignPendingRequest struct {
	ItineraryID string `json:"itinerary_id,omitempty"`
	Name        string `json:"name,omitempty"`
}

// AssignPending handles POST /api/v1/pending/assign: resolves the staged
// item into an existing itinerary (itinerary_id) or a new one (name).
// Exactly one resolution path is taken per pending item.
func (h *Handlers) AssignPending(w http.ResponseWriter, r *http.Request) {
	var req assignPendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.ItineraryID != "":
		added, err := h.handoff.AssignTo(h.store, req.ItineraryID)
		if err != nil {
			writeMappedError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, added)
	case req.Name != "":
		created, err := h.handoff.AssignToNew(h.store, req.Name)
		if err != nil {
			writeMappedError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeError(w, http.StatusBadRequest, "itinerary_id or name is required")
	}
}

// CancelPending handles DELETE /api/v1/pending. Idempotent.
func (h *Handlers) CancelPending(w http.ResponseWriter, r *http.Request) {
	h.handoff.Cancel()
	w.WriteHeader(http.StatusNoContent)
}
