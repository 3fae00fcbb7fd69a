package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository/flatfile"
)

func ticket(identifier, movie, price string) *domain.Ticket {
	return &domain.Ticket{
		Identifier: identifier,
		MovieName:  movie,
		Genre:      "Sci-Fi",
		Language:   "English",
		Rating:     "UA",
		Date:       "August 31, 2026",
		Time:       "10:00 AM",
		Seats:      "A1",
		SeatType:   domain.SeatStandard,
		Price:      price,
	}
}

func newReportingService(t *testing.T, tickets []*domain.Ticket, users []*domain.User) *ReportingService {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	ticketRepo := flatfile.NewTicketRepository(filepath.Join(dir, "ticket.txt"))
	for _, tk := range tickets {
		require.NoError(t, ticketRepo.Append(ctx, tk))
	}

	userRepo := flatfile.NewUserRepository(filepath.Join(dir, "users.txt"))
	for _, u := range users {
		require.NoError(t, userRepo.Create(ctx, u))
	}

	return NewReportingService(ticketRepo, userRepo, zerolog.Nop())
}

func TestBookingCountsAreCaseSensitive(t *testing.T) {
	svc := newReportingService(t, []*domain.Ticket{
		ticket("bob@x.com", "Dune", "185"),
		ticket("BOB@x.com", "Dune", "185"),
		ticket("bob@x.com", "Drishyam", "225"),
		ticket("alice@x.com", "Dune", "300"),
	}, nil)

	counts, err := svc.BookingCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]int{
		"bob@x.com":   2,
		"BOB@x.com":   1,
		"alice@x.com": 1,
	}, counts)
}

func TestBookingsForFoldsCase(t *testing.T) {
	svc := newReportingService(t, []*domain.Ticket{
		ticket("bob@x.com", "Dune", "185"),
		ticket("BOB@x.com", "Drishyam", "225"),
		ticket("alice@x.com", "Dune", "300"),
	}, nil)

	bookings, err := svc.BookingsFor(context.Background(), "Bob@X.com")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	require.Equal(t, "Dune", bookings[0].MovieName)
	require.Equal(t, "Drishyam", bookings[1].MovieName)
}

func TestTotalRevenueSkipsUnparseablePrices(t *testing.T) {
	svc := newReportingService(t, []*domain.Ticket{
		ticket("bob@x.com", "Dune", "185"),
		ticket("bob@x.com", "Dune", "not-a-number"),
		ticket("alice@x.com", "Dune", " 300 "),
		ticket("alice@x.com", "Dune", ""),
	}, nil)

	total, err := svc.TotalRevenue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 485, total)
}

func TestMostRecentMovie(t *testing.T) {
	ctx := context.Background()
	svc := newReportingService(t, []*domain.Ticket{
		ticket("bob@x.com", "Dune", "185"),
		ticket("alice@x.com", "Drishyam", "225"),
		ticket("bob@x.com", "Oppenheimer", "300"),
	}, nil)

	name, err := svc.MostRecentMovie(ctx, "BOB@x.com")
	require.NoError(t, err)
	require.Equal(t, "Oppenheimer", name)

	_, err = svc.MostRecentMovie(ctx, "nobody@x.com")
	require.ErrorIs(t, err, domain.ErrNoBookings)
}

func TestTotalSpent(t *testing.T) {
	svc := newReportingService(t, []*domain.Ticket{
		ticket("bob@x.com", "Dune", "185"),
		ticket("alice@x.com", "Dune", "500"),
		ticket("BOB@x.com", "Drishyam", "225"),
	}, nil)

	total, err := svc.TotalSpent(context.Background(), "bob@x.com")
	require.NoError(t, err)
	require.Equal(t, 410, total)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("WithBookings", func(t *testing.T) {
		svc := newReportingService(t, []*domain.Ticket{
			ticket("bob@x.com", "Dune", "185"),
			ticket("bob@x.com", "Drishyam", "225"),
		}, nil)

		summary, err := svc.Profile(ctx, "bob@x.com")
		require.NoError(t, err)
		require.Equal(t, &ProfileSummary{
			BookingCount:    2,
			MostRecentMovie: "Drishyam",
			TotalSpent:      410,
		}, summary)
	})

	t.Run("NoBookings", func(t *testing.T) {
		svc := newReportingService(t, nil, nil)

		summary, err := svc.Profile(ctx, "ghost@x.com")
		require.NoError(t, err)
		require.Equal(t, &ProfileSummary{MostRecentMovie: "N/A"}, summary)
	})
}

func TestDashboard(t *testing.T) {
	blocked := domain.NewUser("carol", "carol@x.com", "Passw0rd!")
	blocked.Status = domain.StatusBlocked

	svc := newReportingService(t, []*domain.Ticket{
		ticket("bob@x.com", "Dune", "185"),
		ticket("alice@x.com", "Dune", "300"),
	}, []*domain.User{
		domain.NewUser("bob", "bob@x.com", "Passw0rd!"),
		domain.NewUser("alice", "alice@x.com", "Passw0rd!"),
		blocked,
	})

	counters, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, &DashboardCounters{
		TotalUsers:    3,
		ActiveUsers:   2,
		BlockedUsers:  1,
		TotalBookings: 2,
		TotalRevenue:  485,
	}, counters)
}

func TestSearchUsers(t *testing.T) {
	users := []*domain.User{
		domain.NewUser("bob", "bob@x.com", "p"),
		domain.NewUser("alice", "alice@y.com", "p"),
		domain.NewUser("Bobby", "bobby@z.com", "p"),
	}

	require.Len(t, SearchUsers(users, ""), 3)

	matched := SearchUsers(users, "BOB")
	require.Len(t, matched, 2)
	require.Equal(t, "bob", matched[0].Username)
	require.Equal(t, "Bobby", matched[1].Username)

	matched = SearchUsers(users, "y.com")
	require.Len(t, matched, 1)
	require.Equal(t, "alice", matched[0].Username)
}

func TestSortUsers(t *testing.T) {
	older := domain.NewUser("zed", "zed@x.com", "p")
	older.RegistrationDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	users := []*domain.User{
		domain.NewUser("bob", "bob@x.com", "p"),
		older,
		domain.NewUser("alice", "alice@x.com", "p"),
	}

	byName := SortUsers(users, SortByUsername)
	require.Equal(t, "alice", byName[0].Username)
	require.Equal(t, "zed", byName[2].Username)

	byDate := SortUsers(users, SortByRegistrationDate)
	require.Equal(t, "zed", byDate[0].Username)

	// The input order is untouched.
	require.Equal(t, "bob", users[0].Username)
}
