// Package repository defines data access interfaces for Filmvault.
// These interfaces abstract the flat-file stores, allowing for different
// implementations (delimited text files, in-memory for testing) while
// keeping the service layer clean.
package repository

import (
	"context"

	"github.com/filmvault/filmvault/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
//
// Identifier lookups come in two flavours on purpose: exact-match (used for
// existence checks and row addressing) and case-insensitive (used for
// authentication and status checks). The split is part of the store's
// observable behaviour and must not be unified silently.
type UserRepository interface {
	// Create appends a new user to the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by exact email match.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByIdentifier retrieves the first user whose username or email
	// equals identifier exactly.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// GetByIdentifierFold retrieves the first user whose username or email
	// equals identifier case-insensitively.
	GetByIdentifierFold(ctx context.Context, identifier string) (*domain.User, error)

	// Update replaces the row addressed by exact email match with user,
	// preserving file order, and rewrites the store.
	Update(ctx context.Context, email string, user *domain.User) error

	// Delete removes the row addressed by exact email match and rewrites
	// the store. No cascading: the user's tickets are left in the ledger.
	Delete(ctx context.Context, email string) error

	// List returns all users in file order.
	List(ctx context.Context) ([]*domain.User, error)

	// Exists reports whether any row matches username or email exactly.
	Exists(ctx context.Context, username, email string) (bool, error)
}

// =============================================================================
// Movie Repository
// =============================================================================

// MovieRepository defines the interface for movie catalog data access.
//
// The catalog has no row-level operations: movies are addressed by position,
// so every mutation loads the whole list, edits it in memory, and saves the
// whole list back. Load and Save are the only synchronization points.
type MovieRepository interface {
	// Load returns the full catalog in file order.
	Load(ctx context.Context) ([]*domain.Movie, error)

	// Save replaces the catalog file with movies, in the given order.
	Save(ctx context.Context, movies []*domain.Movie) error
}

// =============================================================================
// Ticket Repository
// =============================================================================

// TicketRepository defines the interface for the append-only booking ledger.
// There is no update or delete: a ticket, once written, is immutable.
type TicketRepository interface {
	// Append writes one ticket to the end of the ledger.
	Append(ctx context.Context, ticket *domain.Ticket) error

	// List returns all tickets in file order, oldest first.
	List(ctx context.Context) ([]*domain.Ticket, error)

	// ListByIdentifierFold returns the tickets whose identifier equals
	// identifier case-insensitively, in file order.
	ListByIdentifierFold(ctx context.Context, identifier string) ([]*domain.Ticket, error)
}
