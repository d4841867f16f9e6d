package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

func TestMemoryStoreInitializeIsIdempotent(t *testing.T) {
	store := NewMemorySeatStore()
	ctx := context.Background()

	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.CommitBooking(ctx, []model.SeatKey{{Row: 1, SeatNumber: 1}}))
	require.NoError(t, store.Initialize(ctx))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, model.TotalSeats)
	for _, s := range all {
		assert.False(t, s.Booked)
	}
}

func TestMemoryStoreListAvailableOrdering(t *testing.T) {
	store := NewMemorySeatStore()
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	available, err := store.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, available, model.TotalSeats)

	prev := model.SeatKey{}
	for _, s := range available {
		k := s.Key()
		less := prev.Row < k.Row || (prev.Row == k.Row && prev.SeatNumber < k.SeatNumber)
		assert.True(t, less, "seats not in (row, seat_number) ascending order: %v after %v", k, prev)
		prev = k
	}

	// Last row holds three seats.
	last := available[len(available)-1]
	assert.Equal(t, model.SeatKey{Row: model.TotalRows, SeatNumber: model.LastRowSeats}, last.Key())
}

func TestMemoryStoreCommitBookingAllOrNothing(t *testing.T) {
	store := NewMemorySeatStore()
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	taken := model.SeatKey{Row: 4, SeatNumber: 2}
	require.NoError(t, store.CommitBooking(ctx, []model.SeatKey{taken}))

	// A commit containing one taken and one free seat must fail whole
	// and leave the free seat untouched.
	free := model.SeatKey{Row: 4, SeatNumber: 3}
	err := store.CommitBooking(ctx, []model.SeatKey{taken, free})
	assert.ErrorIs(t, err, ErrConflict)

	available, err := store.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Len(t, available, model.TotalSeats-1)
	for _, s := range available {
		if s.Key() == free {
			return
		}
	}
	t.Fatalf("seat %v was booked by a failed commit", free)
}

func TestMemoryStoreCommitBookingUnknownSeat(t *testing.T) {
	store := NewMemorySeatStore()
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	err := store.CommitBooking(ctx, []model.SeatKey{{Row: 99, SeatNumber: 1}})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryStoreReleaseAll(t *testing.T) {
	store := NewMemorySeatStore()
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	keys := []model.SeatKey{
		{Row: 1, SeatNumber: 1},
		{Row: 7, SeatNumber: 5},
		{Row: 12, SeatNumber: 3},
	}
	require.NoError(t, store.CommitBooking(ctx, keys))
	require.NoError(t, store.ReleaseAll(ctx))

	available, err := store.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Len(t, available, model.TotalSeats)
}
