package flatfile

import (
	"context"
	"strings"

	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository"
)

// ticketRepository implements repository.TicketRepository over a flat file.
// The ledger is append-only; RewriteAll is never used here.
type ticketRepository struct {
	store *Store[*domain.Ticket]
}

// NewTicketRepository creates a ticket repository backed by the file at path.
func NewTicketRepository(path string) repository.TicketRepository {
	return &ticketRepository{store: NewStore(path, ticketCodec{})}
}

// Append writes one ticket to the end of the ledger.
func (r *ticketRepository) Append(ctx context.Context, ticket *domain.Ticket) error {
	return r.store.Append(ctx, ticket)
}

// List returns all tickets in file order, oldest first.
func (r *ticketRepository) List(ctx context.Context) ([]*domain.Ticket, error) {
	return r.store.ScanAll(ctx)
}

// ListByIdentifierFold returns the tickets booked under identifier,
// matched case-insensitively, in file order.
func (r *ticketRepository) ListByIdentifierFold(ctx context.Context, identifier string) ([]*domain.Ticket, error) {
	return r.store.Filter(ctx, func(t *domain.Ticket) bool {
		return strings.EqualFold(t.Identifier, identifier)
	})
}
