package repository // repository defines data access for the seat inventory

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// SeatRepo stores the coach inventory in MySQL. It is the durable
// implementation of the inventory store: every mutation goes through
// Initialize, CommitBooking or ReleaseAll, and CommitBooking is the
// concurrency-safety boundary (a conditional update checked against
// the number of affected rows inside a transaction).
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// Initialize wipes the seats table and regenerates the full coach
// layout with every seat unbooked. Idempotent: a second call yields
// the same final state. Runs in a transaction so a failed rebuild
// never leaves a partial inventory behind.
func (r *SeatRepo) Initialize(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM seats`); err != nil {
		return err
	}

	seats := model.GenerateLayout()
	query := `INSERT INTO seats (row_num, seat_number, booked) VALUES `
	args := make([]interface{}, 0, len(seats)*3)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, 0)"
		args = append(args, s.Row, s.SeatNumber)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListAll retrieves the full inventory ordered by row then seat number.
func (r *SeatRepo) ListAll(ctx context.Context) ([]model.Seat, error) {
	const q = `SELECT row_num, seat_number, booked
	           FROM seats
	           ORDER BY row_num, seat_number`
	return r.querySeats(ctx, q)
}

// ListAvailable retrieves all unbooked seats ordered by row then seat
// number. The ordering is load-bearing: it defines "nearest" for the
// allocation fallback and "first available" within a row.
func (r *SeatRepo) ListAvailable(ctx context.Context) ([]model.Seat, error) {
	const q = `SELECT row_num, seat_number, booked
	           FROM seats
	           WHERE booked = 0
	           ORDER BY row_num, seat_number`
	return r.querySeats(ctx, q)
}

func (r *SeatRepo) querySeats(ctx context.Context, q string) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.Row, &s.SeatNumber, &s.Booked); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CommitBooking marks exactly the given seats as booked, but only if
// every one of them is still free. A single conditional UPDATE claims
// all keys at once; when the affected-row count falls short of the
// request, at least one seat was taken by a concurrent booking and the
// transaction rolls back, leaving no seat mutated. Returns ErrConflict
// in that case.
func (r *SeatRepo) CommitBooking(ctx context.Context, keys []model.SeatKey) error {
	if len(keys) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var b strings.Builder
	b.WriteString(`UPDATE seats SET booked = 1 WHERE booked = 0 AND (row_num, seat_number) IN (`)
	args := make([]interface{}, 0, len(keys)*2)
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?)")
		args = append(args, k.Row, k.SeatNumber)
	}
	b.WriteString(")")

	res, err := tx.ExecContext(ctx, b.String(), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != int64(len(keys)) {
		return ErrConflict
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReleaseAll clears the booked flag on every seat.
func (r *SeatRepo) ReleaseAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE seats SET booked = 0`)
	return err
}
