// Package queue defines message payloads exchanged over the message broker.
package queue

// Event type discriminators. Both event kinds travel over the same
// durable queue so consumers observe resets in order with
// reservations; the Type field tells them apart.
const (
	EventTypeSeatsReserved = "seats.reserved"
	EventTypeBookingsReset = "bookings.reset"
)

// SeatsReservedEvent is published after an allocation commits. It
// carries enough for downstream consumers (booking log, UI refresh
// triggers, analytics) without querying the seat store.
type SeatsReservedEvent struct {
	Type          string   `json:"type"`          // EventTypeSeatsReserved
	SeatLabels    []string `json:"bookedSeats"`   // e.g. "Row 1 - Seat 4"
	SeatCount     int      `json:"seatCount"`     // number of seats booked
	RemainingFree int      `json:"remainingFree"` // free seats after the commit
	ReservedAt    string   `json:"reservedAt"`    // RFC3339 UTC timestamp
}

// BookingsResetEvent is published when all bookings are released or the
// layout is reinitialized, so consumers know their view is stale.
type BookingsResetEvent struct {
	Type    string `json:"type"`   // EventTypeBookingsReset
	Reason  string `json:"reason"` // "reset" or "initialize"
	ResetAt string `json:"resetAt"`
}
