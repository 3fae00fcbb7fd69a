// Package service provides business logic services for Filmvault.
package service

import "errors"

// Common service errors. Business rule violations (unknown user, blocked
// account, bad credentials, missing movie, empty ledger) surface as the
// domain package's sentinels; the errors here are the service layer's own.
var (
	// Validation errors. The first failing check short-circuits; errors are
	// never aggregated.
	ErrFieldRequired     = errors.New("required field missing")
	ErrInvalidIdentifier = errors.New("identifier must be a valid email or username")
	ErrInvalidUsername   = errors.New("invalid username: must not contain digits")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidPassword   = errors.New("invalid password: must be longer than 6 characters with an uppercase letter, a digit, and a symbol")
	ErrPasswordMismatch  = errors.New("passwords do not match")

	// Booking errors
	ErrNoActiveSession     = errors.New("no booking session in progress")
	ErrSelectionIncomplete = errors.New("seat, showtime, and date selections are all required")
	ErrInvalidSeatType     = errors.New("unknown seat type")
	ErrInvalidShowtime     = errors.New("unknown showtime")
	ErrInvalidShowDate     = errors.New("unknown show date")

	// General errors
	ErrStorage = errors.New("storage error")
)
