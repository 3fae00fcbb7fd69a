// Package main is the entry point for the Filmvault admin CLI.
// This tool provides administrative commands for managing accounts, the
// movie catalog, and reports. It is the trusted surface: there is no
// credential check here, the operator owns the data files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/filmvault/filmvault/internal/config"
	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository/flatfile"
	"github.com/filmvault/filmvault/internal/service"
	"github.com/filmvault/filmvault/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type app struct {
	accounts *service.AccountService
	catalog  *service.CatalogService
	reports  *service.ReportingService
}

func newApp() *app {
	cfg := config.MustLoad(os.Getenv("FILMVAULT_CONFIG"))

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		fatal("failed to create data directory: %v", err)
	}

	users := flatfile.NewUserRepository(cfg.Storage.UsersPath())
	movies := flatfile.NewMovieRepository(cfg.Storage.MoviesPath())
	tickets := flatfile.NewTicketRepository(cfg.Storage.TicketsPath())
	posters := storage.NewPosterStore(cfg.Storage.PostersPath())

	return &app{
		accounts: service.NewAccountService(users, logger),
		catalog:  service.NewCatalogService(movies, posters, logger),
		reports:  service.NewReportingService(tickets, users, logger),
	}
}

func main() {
	if len(os.Args) < 3 && (len(os.Args) < 2 || os.Args[1] != "version" && os.Args[1] != "help" && os.Args[1] != "-h" && os.Args[1] != "--help") {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	switch command {
	case "user":
		newApp().userCommand(ctx, os.Args[2], os.Args[3:])

	case "movie":
		newApp().movieCommand(ctx, os.Args[2], os.Args[3:])

	case "report":
		newApp().reportCommand(ctx, os.Args[2], os.Args[3:])

	case "version":
		fmt.Printf("Filmvault Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func (a *app) userCommand(ctx context.Context, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("user list", flag.ExitOnError)
		search := fs.String("search", "", "filter by username/email substring")
		sortKey := fs.String("sort", "username", "username, email, or date")
		fs.Parse(args)

		users, err := a.accounts.List(ctx)
		if err != nil {
			fatal("failed to list users: %v", err)
		}
		users = service.SearchUsers(users, *search)
		users = service.SortUsers(users, service.UserSortKey(*sortKey))
		for _, u := range users {
			fmt.Printf("%-20s %-30s %-10s %s\n",
				u.Username, u.Email, u.Status,
				u.RegistrationDate.Format(domain.RegistrationDateFormat))
		}

	case "block", "unblock":
		fs := flag.NewFlagSet("user "+sub, flag.ExitOnError)
		email := fs.String("email", "", "account email (exact match)")
		fs.Parse(args)

		status := domain.StatusBlocked
		if sub == "unblock" {
			status = domain.StatusActive
		}
		if err := a.accounts.SetStatus(ctx, *email, status); err != nil {
			fatal("failed to %s user: %v", sub, err)
		}
		fmt.Printf("User %s is now %s\n", *email, status)

	case "delete":
		fs := flag.NewFlagSet("user delete", flag.ExitOnError)
		email := fs.String("email", "", "account email (exact match)")
		fs.Parse(args)

		if err := a.accounts.Delete(ctx, *email); err != nil {
			fatal("failed to delete user: %v", err)
		}
		fmt.Printf("User %s deleted\n", *email)

	case "reset-password":
		fs := flag.NewFlagSet("user reset-password", flag.ExitOnError)
		email := fs.String("email", "", "account email (exact match)")
		password := fs.String("password", "", "new password")
		confirm := fs.String("confirm", "", "password confirmation")
		fs.Parse(args)

		if err := a.accounts.ResetPassword(ctx, *email, *password, *confirm); err != nil {
			fatal("failed to reset password: %v", err)
		}
		fmt.Printf("Password reset for %s\n", *email)

	case "update":
		fs := flag.NewFlagSet("user update", flag.ExitOnError)
		oldEmail := fs.String("email", "", "current account email (exact match)")
		username := fs.String("new-username", "", "new display name")
		newEmail := fs.String("new-email", "", "new email address")
		password := fs.String("new-password", "", "new password")
		fs.Parse(args)

		err := a.accounts.UpdateProfile(ctx, service.UpdateProfileInput{
			OldEmail:    *oldEmail,
			NewUsername: *username,
			NewEmail:    *newEmail,
			NewPassword: *password,
		})
		if err != nil {
			fatal("failed to update profile: %v", err)
		}
		fmt.Printf("Profile updated for %s\n", *newEmail)

	default:
		fatal("unknown user subcommand: %s", sub)
	}
}

func (a *app) movieCommand(ctx context.Context, sub string, args []string) {
	movies, err := a.catalog.Load(ctx)
	if err != nil {
		fatal("failed to load catalog: %v", err)
	}

	switch sub {
	case "list":
		for i, m := range movies {
			poster := m.ImagePath
			if poster == "" {
				poster = "-"
			}
			fmt.Printf("%3d  %-30s %-20s %-10s %-10s %-10s %-6s %s\n",
				i, m.Name, m.Director, m.Genre, m.Language, m.Duration, m.Rating, poster)
		}

	case "add":
		input, fs := movieFlags("movie add")
		fs.Parse(args)

		movie, err := a.catalog.Add(ctx, *input)
		if err != nil {
			fatal("failed to add movie: %v", err)
		}
		fmt.Printf("Movie %q added\n", movie.Name)

	case "update":
		input, fs := movieFlags("movie update")
		index := fs.Int("index", -1, "catalog position from 'movie list'")
		fs.Parse(args)

		if err := a.catalog.UpdateAt(ctx, *index, *input); err != nil {
			fatal("failed to update movie: %v", err)
		}
		fmt.Printf("Movie at position %d updated\n", *index)

	case "remove":
		fs := flag.NewFlagSet("movie remove", flag.ExitOnError)
		index := fs.Int("index", -1, "catalog position from 'movie list'")
		fs.Parse(args)

		if err := a.catalog.RemoveAt(ctx, *index); err != nil {
			fatal("failed to remove movie: %v", err)
		}
		fmt.Printf("Movie at position %d removed\n", *index)

	default:
		fatal("unknown movie subcommand: %s", sub)
	}
}

func movieFlags(name string) (*service.MovieInput, *flag.FlagSet) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	input := &service.MovieInput{}
	fs.StringVar(&input.Name, "name", "", "movie title")
	fs.StringVar(&input.Director, "director", "", "director")
	fs.StringVar(&input.Genre, "genre", "", strings.Join(service.Genres, " | "))
	fs.StringVar(&input.Language, "language", "", strings.Join(service.Languages, " | "))
	fs.StringVar(&input.Duration, "duration", "", "running time, e.g. '120 min'")
	fs.StringVar(&input.Rating, "rating", "", strings.Join(service.Ratings, " | "))
	fs.StringVar(&input.PosterSource, "poster", "", "path to a poster image to copy in")
	return input, fs
}

func (a *app) reportCommand(ctx context.Context, sub string, args []string) {
	switch sub {
	case "dashboard":
		counters, err := a.reports.Dashboard(ctx)
		if err != nil {
			fatal("failed to build dashboard: %v", err)
		}
		fmt.Printf("Users:    %d (%d active, %d blocked)\n",
			counters.TotalUsers, counters.ActiveUsers, counters.BlockedUsers)
		fmt.Printf("Bookings: %d\n", counters.TotalBookings)
		fmt.Printf("Revenue:  %d\n", counters.TotalRevenue)

	case "counts":
		counts, err := a.reports.BookingCounts(ctx)
		if err != nil {
			fatal("failed to count bookings: %v", err)
		}
		for identifier, n := range counts {
			fmt.Printf("%-30s %d\n", identifier, n)
		}

	case "revenue":
		total, err := a.reports.TotalRevenue(ctx)
		if err != nil {
			fatal("failed to total revenue: %v", err)
		}
		fmt.Printf("Total revenue: %d\n", total)

	case "bookings":
		fs := flag.NewFlagSet("report bookings", flag.ExitOnError)
		identifier := fs.String("user", "", "email or username (all users if empty)")
		fs.Parse(args)

		var (
			tickets []*domain.Ticket
			err     error
		)
		if *identifier == "" {
			tickets, err = a.reports.AllBookings(ctx)
		} else {
			tickets, err = a.reports.BookingsFor(ctx, *identifier)
		}
		if err != nil {
			fatal("failed to list bookings: %v", err)
		}
		for _, t := range tickets {
			fmt.Printf("%-25s %-30s %s %s  seats %s (%s)  total %s\n",
				t.Identifier, t.MovieName, t.Date, t.Time, t.Seats, t.SeatType, t.Price)
		}

	default:
		fatal("unknown report subcommand: %s", sub)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`Filmvault Admin CLI

Usage:
  filmvault-admin <command> <subcommand> [arguments]

Commands:
  user     list | block | unblock | delete | reset-password | update
  movie    list | add | update | remove
  report   dashboard | counts | revenue | bookings
  version  Print version information
  help     Show this help message

Examples:
  filmvault-admin user list --search bob --sort date
  filmvault-admin user block --email bob@example.com
  filmvault-admin movie add --name Dune --director "Denis Villeneuve" --genre Sci-Fi --language English --duration "155 min" --rating UA
  filmvault-admin report dashboard

Use "filmvault-admin <command> <subcommand> --help" for flag details.`)
}
