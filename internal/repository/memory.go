package repository

import (
	"context"
	"sync"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// MemorySeatStore keeps the coach inventory in process memory behind a
// mutex. It offers the same operations and semantics as SeatRepo and
// exists for single-node deployments and tests where MySQL is not
// wanted. CommitBooking performs the check-then-set under the lock so
// the all-or-nothing guarantee holds for concurrent callers.
type MemorySeatStore struct {
	mu    sync.Mutex
	seats []model.Seat // always kept in (row, seat_number) ascending order
}

// NewMemorySeatStore returns an empty store. Call Initialize to build
// the coach layout.
func NewMemorySeatStore() *MemorySeatStore {
	return &MemorySeatStore{}
}

// Initialize replaces the inventory with a freshly generated layout,
// all seats unbooked. Idempotent.
func (s *MemorySeatStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats = model.GenerateLayout()
	return nil
}

// ListAll returns a copy of the full inventory in (row, seat_number)
// ascending order.
func (s *MemorySeatStore) ListAll(ctx context.Context) ([]model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Seat, len(s.seats))
	copy(out, s.seats)
	return out, nil
}

// ListAvailable returns a copy of all unbooked seats, preserving the
// (row, seat_number) ascending order of the inventory.
func (s *MemorySeatStore) ListAvailable(ctx context.Context) ([]model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		if !seat.Booked {
			out = append(out, seat)
		}
	}
	return out, nil
}

// CommitBooking books exactly the given seats iff every one is still
// free. Otherwise nothing is mutated and ErrConflict is returned.
func (s *MemorySeatStore) CommitBooking(ctx context.Context, keys []model.SeatKey) error {
	if len(keys) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := make([]int, 0, len(keys))
	for _, k := range keys {
		i, ok := s.indexOf(k)
		if !ok || s.seats[i].Booked {
			return ErrConflict
		}
		idx = append(idx, i)
	}
	for _, i := range idx {
		s.seats[i].Booked = true
	}
	return nil
}

// ReleaseAll clears the booked flag on every seat.
func (s *MemorySeatStore) ReleaseAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.seats {
		s.seats[i].Booked = false
	}
	return nil
}

// indexOf locates a seat by key. Callers must hold the mutex.
func (s *MemorySeatStore) indexOf(k model.SeatKey) (int, bool) {
	for i, seat := range s.seats {
		if seat.Row == k.Row && seat.SeatNumber == k.SeatNumber {
			return i, true
		}
	}
	return 0, false
}
