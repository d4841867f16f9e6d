package model

import "fmt"

// Layout constants for the single coach served by this application.
// Rows 1..11 carry seven seats each; the last row carries only three.
// The inventory is generated once at initialization and never resized.
const (
	TotalRows          = 12 // number of rows in the coach
	SeatsPerRow        = 7  // seats in rows 1..11
	LastRowSeats       = 3  // seats in the final row
	TotalSeats         = (TotalRows-1)*SeatsPerRow + LastRowSeats
	MaxSeatsPerRequest = SeatsPerRow // a request may never exceed one full row
)

// Seat describes a single seat in the coach.  Seats are uniquely
// identified by their (row, seat_number) pair; the pair is immutable
// once created and only the Booked flag ever mutates.
//
// Fields:
//  Row        – row of the coach (1-based).
//  SeatNumber – position within the row (1-based).
//  Booked     – whether the seat is currently reserved.
type Seat struct {
	Row        uint32 `json:"row"`        // seats.row
	SeatNumber uint32 `json:"seatNumber"` // seats.seat_number
	Booked     bool   `json:"booked"`     // seats.booked
}

// Key returns the seat's natural key.
func (s Seat) Key() SeatKey {
	return SeatKey{Row: s.Row, SeatNumber: s.SeatNumber}
}

// Label renders the seat in the wire format used by reservation
// responses, e.g. "Row 3 - Seat 5".
func (s Seat) Label() string {
	return fmt.Sprintf("Row %d - Seat %d", s.Row, s.SeatNumber)
}

// SeatKey is the natural key of a seat: the (row, seat_number) pair.
type SeatKey struct {
	Row        uint32
	SeatNumber uint32
}

// SeatsInRow returns how many seats the given row holds.
func SeatsInRow(row uint32) uint32 {
	if row == TotalRows {
		return LastRowSeats
	}
	return SeatsPerRow
}

// GenerateLayout builds the full coach layout in ascending
// (row, seat_number) order with every seat unbooked.  Initialization
// uses this to (re)create the inventory.
func GenerateLayout() []Seat {
	seats := make([]Seat, 0, TotalSeats)
	for row := uint32(1); row <= TotalRows; row++ {
		for n := uint32(1); n <= SeatsInRow(row); n++ {
			seats = append(seats, Seat{Row: row, SeatNumber: n})
		}
	}
	return seats
}
