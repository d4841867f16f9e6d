package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/train-seat-reservation/internal/config"
	"github.com/iliyamo/train-seat-reservation/internal/inventory"
	"github.com/iliyamo/train-seat-reservation/internal/middleware"
	"github.com/iliyamo/train-seat-reservation/internal/model"
	"github.com/iliyamo/train-seat-reservation/internal/queue"
	queuepublisher "github.com/iliyamo/train-seat-reservation/internal/service"
)

// BookingHandler serves the four inventory operations: initialize the
// layout, list all seats, reserve seats and reset bookings. It holds
// the allocation engine and administrator plus read access to the
// store for the seat listing. Redis is optional; when present, the
// seat-listing cache is invalidated after every mutation.
type BookingHandler struct {
	Engine        *inventory.Engine
	Admin         *inventory.Admin
	Store         inventory.Store
	CacheCfg      config.CacheConfig
	Redis         *redis.Client
	PublishEvents bool // emit RabbitMQ events after mutations
}

// NewBookingHandler constructs a BookingHandler. Engine, admin and
// store must be non-nil; rdb may be nil when Redis is unavailable.
func NewBookingHandler(engine *inventory.Engine, admin *inventory.Admin, store inventory.Store, cacheCfg config.CacheConfig, rdb *redis.Client, publishEvents bool) *BookingHandler {
	if engine == nil || admin == nil || store == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		Engine:        engine,
		Admin:         admin,
		Store:         store,
		CacheCfg:      cacheCfg,
		Redis:         rdb,
		PublishEvents: publishEvents,
	}
}

// seatsRoute is the cached route invalidated after every mutation.
const seatsRoute = "/seats"

// Initialize handles POST /initialize. It wipes and rebuilds the full
// coach layout with every seat unbooked. Safe to call repeatedly.
func (h *BookingHandler) Initialize(c echo.Context) error {
	if err := h.Admin.InitializeLayout(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to initialize seats"})
	}
	h.afterMutation(c, "initialize")
	return c.String(http.StatusOK, "Seats initialized!")
}

// ListSeats handles GET /seats. It returns the full inventory, booked
// seats included, ordered by row then seat number.
func (h *BookingHandler) ListSeats(c echo.Context) error {
	seats, err := h.Store.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	if seats == nil {
		seats = []model.Seat{}
	}
	return c.JSON(http.StatusOK, seats)
}

// Reserve handles POST /reserve. The body must contain a JSON object
// with an integer "numberOfSeats" between 1 and 7. On success it
// responds with the booked seat labels in allocation order.
func (h *BookingHandler) Reserve(c echo.Context) error {
	var body struct {
		NumberOfSeats int `json:"numberOfSeats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid number of seats. Must be between 1 and 7."})
	}

	seats, err := h.Engine.Allocate(c.Request().Context(), body.NumberOfSeats)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid number of seats. Must be between 1 and 7."})
		case errors.Is(err, inventory.ErrInsufficientCapacity):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Not enough available seats."})
		case errors.Is(err, inventory.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Could not complete the booking due to concurrent reservations. Please try again."})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reserve seats"})
		}
	}

	labels := make([]string, len(seats))
	for i, s := range seats {
		labels[i] = s.Label()
	}

	h.invalidateSeatsCache(c.Request().Context())
	if h.PublishEvents {
		reservedAt := time.Now().UTC().Format(time.RFC3339)
		go h.publishReserved(labels, reservedAt)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Seats reserved successfully.",
		"bookedSeats": labels,
	})
}

// Reset handles POST /reset. It releases every booked seat.
func (h *BookingHandler) Reset(c echo.Context) error {
	if err := h.Admin.ResetAllBookings(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reset bookings"})
	}
	h.afterMutation(c, "reset")
	return c.JSON(http.StatusOK, echo.Map{"message": "All bookings have been reset."})
}

// afterMutation drops the seat-listing cache and, when enabled,
// notifies consumers that every cached seat view is stale.
func (h *BookingHandler) afterMutation(c echo.Context, reason string) {
	h.invalidateSeatsCache(c.Request().Context())
	if h.PublishEvents {
		ev := resetEvent(reason)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queuepublisher.PublishBookingsReset(ctx, ev)
		}()
	}
}

// resetEvent stamps the mutation time immediately so the event carries
// the moment of the reset, not the publisher goroutine's schedule.
func resetEvent(reason string) queue.BookingsResetEvent {
	return queue.BookingsResetEvent{
		Reason:  reason,
		ResetAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *BookingHandler) invalidateSeatsCache(ctx context.Context) {
	middleware.InvalidateCache(ctx, h.CacheCfg, h.Redis, seatsRoute)
}

// publishReserved emits the allocation event off the request path. The
// remaining-free count is read with a fresh context because the
// request context is gone once the response is written.
func (h *BookingHandler) publishReserved(labels []string, reservedAt string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	remaining := -1
	if available, err := h.Store.ListAvailable(ctx); err == nil {
		remaining = len(available)
	}
	_ = queuepublisher.PublishSeatsReserved(ctx, queue.SeatsReservedEvent{
		SeatLabels:    labels,
		SeatCount:     len(labels),
		RemainingFree: remaining,
		ReservedAt:    reservedAt,
	})
}
