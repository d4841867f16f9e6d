// Package repository defines error values shared by the seat store
// implementations. These sentinels let higher layers such as the
// allocation engine and the HTTP handlers distinguish failure
// scenarios with errors.Is instead of string matching.
package repository

import "errors"

// ErrConflict is returned by CommitBooking when at least one of the
// requested seats is not currently free. The commit is all-or-nothing,
// so no seat was mutated. The allocation engine retries on this error;
// handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("booking conflict")
