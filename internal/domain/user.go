// Package domain contains the core business entities for Filmvault.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the movie ticketing system.
package domain

import (
	"time"
)

// Status is the lifecycle status of a user account.
type Status string

const (
	// StatusActive marks an account that may authenticate and book.
	StatusActive Status = "Active"

	// StatusBlocked marks an account that is denied authentication.
	StatusBlocked Status = "Blocked"
)

// RegistrationDateFormat is the on-disk layout of a user's registration date.
const RegistrationDateFormat = "2006-01-02"

// User represents a registered account.
//
// The password is stored and compared in plain text. That is the contract
// of the user file format; hashing would break every existing row.
type User struct {
	// Username is the display name used for login. Must not contain digits.
	Username string

	// Email is the unique identifier for the account.
	Email string

	// Password is the plain-text password.
	Password string

	// RegistrationDate is the day the account was created. Rows written
	// before the date column existed default to the day they were decoded.
	RegistrationDate time.Time

	// Status is Active or Blocked. Rows written before the status column
	// existed default to Active.
	Status Status
}

// NewUser creates a new active User registered today.
func NewUser(username, email, password string) *User {
	return &User{
		Username:         username,
		Email:            email,
		Password:         password,
		RegistrationDate: Today(),
		Status:           StatusActive,
	}
}

// IsBlocked returns true if the account is denied authentication.
func (u *User) IsBlocked() bool {
	return u.Status == StatusBlocked
}

// Today returns the current date truncated to midnight UTC, the granularity
// the user file stores.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
