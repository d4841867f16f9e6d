// Package inventory implements the seat allocation engine. Given a
// requested seat count it selects seats from the current available
// pool, preferring seats in a single row over scattered ones, and
// commits the selection through the store's atomic conditional update.
package inventory

import (
	"context"
	"errors"

	"github.com/iliyamo/train-seat-reservation/internal/model"
	"github.com/iliyamo/train-seat-reservation/internal/repository"
)

// Store is the inventory backing the engine. Two implementations
// exist: repository.SeatRepo (MySQL) and repository.MemorySeatStore.
// CommitBooking must be all-or-nothing: it books every requested seat
// or none, returning repository.ErrConflict when any seat is taken.
type Store interface {
	Initialize(ctx context.Context) error
	ListAll(ctx context.Context) ([]model.Seat, error)
	ListAvailable(ctx context.Context) ([]model.Seat, error)
	CommitBooking(ctx context.Context, keys []model.SeatKey) error
	ReleaseAll(ctx context.Context) error
}

// ErrInvalidRequest is returned when the requested seat count is
// outside [1, MaxSeatsPerRequest]. The store is never touched.
var ErrInvalidRequest = errors.New("invalid number of seats")

// ErrInsufficientCapacity is returned when fewer seats are available
// than requested. Not retried; only external state changes can help.
var ErrInsufficientCapacity = errors.New("not enough available seats")

// ErrConflict is returned after every commit attempt lost the race to
// concurrent bookings.
var ErrConflict = errors.New("allocation conflict")

// maxAttempts bounds the read-select-commit loop. A lost commit means
// another booking landed between our snapshot and our update; a fresh
// snapshot usually resolves it within one or two retries.
const maxAttempts = 3

// Engine allocates seats against a Store. It holds no seat state
// across calls: every Allocate reads a fresh snapshot and commits
// through the store's conditional update.
type Engine struct {
	store Store
}

// NewEngine constructs an Engine. The store must be non-nil.
func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store}
}

// Allocate selects and books exactly count seats. Seats in the first
// row that can hold the whole party win; otherwise the first count
// seats of the globally (row, seat_number)-sorted available pool are
// taken, even when that scatters the party across rows. The returned
// seats carry Booked=true and keep selection order.
func (e *Engine) Allocate(ctx context.Context, count int) ([]model.Seat, error) {
	if count < 1 || count > model.MaxSeatsPerRequest {
		return nil, ErrInvalidRequest
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		available, err := e.store.ListAvailable(ctx)
		if err != nil {
			return nil, err
		}
		if len(available) < count {
			return nil, ErrInsufficientCapacity
		}

		candidates := selectSeats(available, count)

		keys := make([]model.SeatKey, len(candidates))
		for i, s := range candidates {
			keys[i] = s.Key()
		}
		err = e.store.CommitBooking(ctx, keys)
		if err == nil {
			booked := make([]model.Seat, len(candidates))
			for i, s := range candidates {
				s.Booked = true
				booked[i] = s
			}
			return booked, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, err
		}
		// lost the race; re-read and try again
	}
	return nil, ErrConflict
}

// selectSeats picks count seats from the available pool. available
// must be sorted ascending by (row, seat_number); the partition into
// row groups preserves that order, so scanning groups in slice order
// scans rows ascending. The first group large enough wins — first
// match, not best match. With no qualifying row the pool's leading
// seats are taken as the nearest fallback.
func selectSeats(available []model.Seat, count int) []model.Seat {
	start := 0
	for i := 1; i <= len(available); i++ {
		if i == len(available) || available[i].Row != available[start].Row {
			if i-start >= count {
				return available[start : start+count]
			}
			start = i
		}
	}
	return available[:count]
}
