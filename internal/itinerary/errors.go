package itinerary

import "errors"

// ErrNotFound is returned when an operation references an itinerary or item
// id that does not exist. Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule (e.g. empty
// itinerary name, unknown item type). Handlers map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrNoPending is returned by Handoff assignment when no item is staged.
var ErrNoPending = errors.New("no pending item")
