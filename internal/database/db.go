package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the seats table when it does not exist yet.
// The (row_num, seat_number) pair is the natural key; row is stored as
// row_num because ROW is a reserved word in MySQL 8.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const q = `CREATE TABLE IF NOT EXISTS seats (
	    row_num     INT UNSIGNED NOT NULL,
	    seat_number INT UNSIGNED NOT NULL,
	    booked      TINYINT(1)   NOT NULL DEFAULT 0,
	    PRIMARY KEY (row_num, seat_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	_, err := db.ExecContext(ctx, q)
	return err
}
