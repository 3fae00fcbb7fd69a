// Package domain contains the core business entities for Filmvault.
package domain

import "errors"

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (filesystem, config, etc.).

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same username/email exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserBlocked indicates the account has been blocked by an admin.
	ErrUserBlocked = errors.New("user account is blocked")

	// ErrInvalidCredentials indicates authentication failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMovieNotFound indicates the catalog position does not exist.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrNoBookings indicates the account has no bookings in the ledger.
	ErrNoBookings = errors.New("no bookings for user")
)
