package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-seat-reservation/internal/config"
	"github.com/iliyamo/train-seat-reservation/internal/inventory"
	"github.com/iliyamo/train-seat-reservation/internal/model"
	"github.com/iliyamo/train-seat-reservation/internal/repository"
)

func newTestHandler(t *testing.T) (*BookingHandler, *repository.MemorySeatStore) {
	t.Helper()
	store := repository.NewMemorySeatStore()
	require.NoError(t, store.Initialize(context.Background()))
	engine := inventory.NewEngine(store)
	admin := inventory.NewAdmin(store)
	h := NewBookingHandler(engine, admin, store, config.CacheConfig{}, nil, false)
	return h, store
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec
}

func TestReserveSuccess(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h.Reserve, http.MethodPost, "/reserve", `{"numberOfSeats":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message     string   `json:"message"`
		BookedSeats []string `json:"bookedSeats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Seats reserved successfully.", resp.Message)
	assert.Equal(t, []string{
		"Row 1 - Seat 1",
		"Row 1 - Seat 2",
		"Row 1 - Seat 3",
		"Row 1 - Seat 4",
		"Row 1 - Seat 5",
	}, resp.BookedSeats)
}

func TestReserveFallbackAcrossRows(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h.Reserve, http.MethodPost, "/reserve", `{"numberOfSeats":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h.Reserve, http.MethodPost, "/reserve", `{"numberOfSeats":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		BookedSeats []string `json:"bookedSeats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{
		"Row 1 - Seat 6",
		"Row 1 - Seat 7",
		"Row 2 - Seat 1",
	}, resp.BookedSeats)
}

func TestReserveRejectsInvalidCounts(t *testing.T) {
	h, store := newTestHandler(t)

	for _, body := range []string{
		`{"numberOfSeats":0}`,
		`{"numberOfSeats":8}`,
		`{"numberOfSeats":-1}`,
		`{"numberOfSeats":"three"}`,
		`{}`,
	} {
		rec := doJSON(t, h.Reserve, http.MethodPost, "/reserve", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
		assert.Contains(t, rec.Body.String(), "Invalid number of seats. Must be between 1 and 7.")
	}

	available, err := store.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Len(t, available, model.TotalSeats)
}

func TestReserveInsufficientCapacity(t *testing.T) {
	h, store := newTestHandler(t)

	// Book everything but three seats.
	var keys []model.SeatKey
	for _, s := range model.GenerateLayout()[:model.TotalSeats-3] {
		keys = append(keys, s.Key())
	}
	require.NoError(t, store.CommitBooking(context.Background(), keys))

	rec := doJSON(t, h.Reserve, http.MethodPost, "/reserve", `{"numberOfSeats":4}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not enough available seats.")
}

func TestListSeatsReturnsFullInventory(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h.Reserve, http.MethodPost, "/reserve", `{"numberOfSeats":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h.ListSeats, http.MethodGet, "/seats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var seats []model.Seat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seats))
	require.Len(t, seats, model.TotalSeats)
	assert.True(t, seats[0].Booked)
	assert.True(t, seats[1].Booked)
	assert.False(t, seats[2].Booked)
	assert.Equal(t, model.SeatKey{Row: 1, SeatNumber: 1}, seats[0].Key())
	assert.Equal(t, model.SeatKey{Row: 12, SeatNumber: 3}, seats[len(seats)-1].Key())
}

func TestResetReleasesEverything(t *testing.T) {
	h, store := newTestHandler(t)

	rec := doJSON(t, h.Reserve, http.MethodPost, "/reserve", `{"numberOfSeats":7}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h.Reset, http.MethodPost, "/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "All bookings have been reset.")

	available, err := store.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Len(t, available, model.TotalSeats)
}

func TestInitializeRebuildsLayout(t *testing.T) {
	h, store := newTestHandler(t)

	rec := doJSON(t, h.Reserve, http.MethodPost, "/reserve", `{"numberOfSeats":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h.Initialize, http.MethodPost, "/initialize", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Seats initialized!", rec.Body.String())

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, model.TotalSeats)
	for _, s := range all {
		assert.False(t, s.Booked)
	}
}

func TestResetEventStampsMutationTime(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Second)
	ev := resetEvent("reset")
	after := time.Now().UTC()

	assert.Equal(t, "reset", ev.Reason)
	ts, err := time.Parse(time.RFC3339, ev.ResetAt)
	require.NoError(t, err)
	// The timestamp is taken when the event is built, before any
	// publisher goroutine gets scheduled.
	assert.False(t, ts.Before(before), "ResetAt %v predates %v", ts, before)
	assert.False(t, ts.After(after), "ResetAt %v postdates %v", ts, after)
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, Health, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
