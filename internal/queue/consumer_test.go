package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLogLineSeatsReserved(t *testing.T) {
	ev := SeatsReservedEvent{
		Type:          EventTypeSeatsReserved,
		SeatLabels:    []string{"Row 1 - Seat 1", "Row 1 - Seat 2"},
		SeatCount:     2,
		RemainingFree: 78,
		ReservedAt:    "2026-08-31T10:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	line, err := renderLogLine(body)
	require.NoError(t, err)
	assert.Equal(t, "[2026-08-31T10:00:00Z] Seats reserved | count=2 | remaining_free=78 | seats=[Row 1 - Seat 1,Row 1 - Seat 2]\n", line)
}

func TestRenderLogLineBookingsReset(t *testing.T) {
	ev := BookingsResetEvent{
		Type:    EventTypeBookingsReset,
		Reason:  "reset",
		ResetAt: "2026-08-31T10:05:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	line, err := renderLogLine(body)
	require.NoError(t, err)
	assert.Equal(t, "[2026-08-31T10:05:00Z] Bookings reset | reason=reset\n", line)
	assert.NotContains(t, line, "Seats reserved")
}

func TestRenderLogLineRejectsUntypedMessages(t *testing.T) {
	// A reset payload without the discriminator must be rejected, not
	// rendered as a zero-seat reservation.
	_, err := renderLogLine([]byte(`{"reason":"reset","resetAt":"2026-08-31T10:05:00Z"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestRenderLogLineRejectsMalformedJSON(t *testing.T) {
	_, err := renderLogLine([]byte(`{not json`))
	assert.Error(t, err)
}
