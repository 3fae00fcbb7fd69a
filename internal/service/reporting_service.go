package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository"
)

// ReportingService answers aggregate queries over the ticket ledger and the
// user store. Every query is a fresh full scan; nothing is cached.
type ReportingService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
	logger  zerolog.Logger
}

// NewReportingService creates a new ReportingService.
func NewReportingService(tickets repository.TicketRepository, users repository.UserRepository, logger zerolog.Logger) *ReportingService {
	return &ReportingService{
		tickets: tickets,
		users:   users,
		logger:  logger.With().Str("service", "reporting").Logger(),
	}
}

// AllBookings returns every ticket in ledger order, oldest first.
func (s *ReportingService) AllBookings(ctx context.Context) ([]*domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return tickets, nil
}

// BookingsFor returns the tickets booked under identifier, matched
// case-insensitively, in ledger order.
func (s *ReportingService) BookingsFor(ctx context.Context, identifier string) ([]*domain.Ticket, error) {
	tickets, err := s.tickets.ListByIdentifierFold(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return tickets, nil
}

// BookingCounts returns the number of bookings per identifier in one full
// scan. Keys are the identifiers exactly as stored; unlike BookingsFor, no
// case folding happens here.
func (s *ReportingService) BookingCounts(ctx context.Context) (map[string]int, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	counts := make(map[string]int, len(tickets))
	for _, t := range tickets {
		counts[t.Identifier]++
	}
	return counts, nil
}

// TotalRevenue sums the price field of every ticket. Prices that fail to
// parse as integers are skipped silently; a frozen snapshot that was never
// valid should not poison the total.
func (s *ReportingService) TotalRevenue(ctx context.Context) (int, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	total := 0
	for _, t := range tickets {
		price, err := strconv.Atoi(strings.TrimSpace(t.Price))
		if err != nil {
			continue
		}
		total += price
	}
	return total, nil
}

// MostRecentMovie returns the movie name on the identifier's latest
// booking. The ledger is append-only and never reordered, so the last entry
// in file order is the most recent.
func (s *ReportingService) MostRecentMovie(ctx context.Context, identifier string) (string, error) {
	bookings, err := s.BookingsFor(ctx, identifier)
	if err != nil {
		return "", err
	}
	if len(bookings) == 0 {
		return "", fmt.Errorf("%w: '%s'", domain.ErrNoBookings, identifier)
	}
	return bookings[len(bookings)-1].MovieName, nil
}

// TotalSpent sums the price field of the identifier's bookings, skipping
// unparseable prices.
func (s *ReportingService) TotalSpent(ctx context.Context, identifier string) (int, error) {
	bookings, err := s.BookingsFor(ctx, identifier)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, t := range bookings {
		price, err := strconv.Atoi(strings.TrimSpace(t.Price))
		if err != nil {
			continue
		}
		total += price
	}
	return total, nil
}

// ProfileSummary is the per-user view shown on a profile screen.
type ProfileSummary struct {
	BookingCount    int
	MostRecentMovie string
	TotalSpent      int
}

// Profile assembles the identifier's booking count, most recent movie, and
// total spend in one call. A user with no bookings gets "N/A" as the most
// recent movie.
func (s *ReportingService) Profile(ctx context.Context, identifier string) (*ProfileSummary, error) {
	bookings, err := s.BookingsFor(ctx, identifier)
	if err != nil {
		return nil, err
	}

	summary := &ProfileSummary{
		BookingCount:    len(bookings),
		MostRecentMovie: "N/A",
	}
	for _, t := range bookings {
		if price, err := strconv.Atoi(strings.TrimSpace(t.Price)); err == nil {
			summary.TotalSpent += price
		}
	}
	if len(bookings) > 0 {
		summary.MostRecentMovie = bookings[len(bookings)-1].MovieName
	}
	return summary, nil
}

// DashboardCounters is the admin dashboard snapshot.
type DashboardCounters struct {
	TotalUsers    int
	ActiveUsers   int
	BlockedUsers  int
	TotalBookings int
	TotalRevenue  int
}

// Dashboard builds the admin dashboard counters from one scan of each
// store.
func (s *ReportingService) Dashboard(ctx context.Context) (*DashboardCounters, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	counters := &DashboardCounters{
		TotalUsers:    len(users),
		TotalBookings: len(tickets),
	}
	for _, u := range users {
		if u.IsBlocked() {
			counters.BlockedUsers++
		} else {
			counters.ActiveUsers++
		}
	}
	for _, t := range tickets {
		if price, err := strconv.Atoi(strings.TrimSpace(t.Price)); err == nil {
			counters.TotalRevenue += price
		}
	}
	return counters, nil
}

// UserSortKey selects the column SortUsers orders by.
type UserSortKey string

const (
	// SortByUsername orders users by username.
	SortByUsername UserSortKey = "username"

	// SortByEmail orders users by email.
	SortByEmail UserSortKey = "email"

	// SortByRegistrationDate orders users by registration date, oldest
	// first.
	SortByRegistrationDate UserSortKey = "date"
)

// SearchUsers filters a user snapshot to entries whose username or email
// contains query, case-insensitively. An empty query matches everyone.
// Pure function over the snapshot; the store is not consulted.
func SearchUsers(users []*domain.User, query string) []*domain.User {
	if query == "" {
		return append([]*domain.User(nil), users...)
	}
	query = strings.ToLower(query)

	var matched []*domain.User
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), query) ||
			strings.Contains(strings.ToLower(u.Email), query) {
			matched = append(matched, u)
		}
	}
	return matched
}

// SortUsers returns a copy of the user snapshot ordered by key. The sort is
// stable, so equal entries keep their file order.
func SortUsers(users []*domain.User, key UserSortKey) []*domain.User {
	sorted := append([]*domain.User(nil), users...)
	sort.SliceStable(sorted, func(i, j int) bool {
		switch key {
		case SortByEmail:
			return sorted[i].Email < sorted[j].Email
		case SortByRegistrationDate:
			return sorted[i].RegistrationDate.Before(sorted[j].RegistrationDate)
		default:
			return sorted[i].Username < sorted[j].Username
		}
	})
	return sorted
}
