// Package main is the entry point for the Filmvault user CLI.
// It wraps the account, catalog, booking, and reporting services for a
// single user working against the local record files.
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

// app wires the services over the configured record files.
type app struct {
	accounts *service.AccountService
	catalog  *service.CatalogService
	booking  *service.BookingWorkflow
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
		booking:  service.NewBookingWorkflow(tickets, logger),
		reports:  service.NewReportingService(tickets, users, logger),
	}
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "register":
		newApp().register(ctx, args)

	case "login":
		newApp().login(ctx, args)

	case "movies":
		newApp().listMovies(ctx)

	case "book":
		newApp().book(ctx, args)

	case "history":
		newApp().history(ctx, args)

	case "profile":
		newApp().profile(ctx, args)

	case "version":
		fmt.Printf("Filmvault CLI\n")
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

func (a *app) register(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "display name (no digits)")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	fs.Parse(args)

	user, err := a.accounts.Register(ctx, service.RegisterInput{
		Username:        *username,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		fatal("registration failed: %v", err)
	}
	fmt.Printf("Account created for %s (%s)\n", user.Username, user.Email)
}

func (a *app) login(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	identifier := fs.String("user", "", "email or username")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if err := a.accounts.VerifyActive(ctx, *identifier); err != nil {
		fatal("login failed: %v", err)
	}

	user, err := a.accounts.Authenticate(ctx, *identifier, *password)
	if err != nil {
		fatal("login failed: %v", err)
	}
	fmt.Printf("Welcome back, %s\n", user.Username)
}

func (a *app) listMovies(ctx context.Context) {
	movies, err := a.catalog.Load(ctx)
	if err != nil {
		fatal("failed to load catalog: %v", err)
	}
	if len(movies) == 0 {
		fmt.Println("No movies in the catalog.")
		return
	}
	for i, m := range movies {
		fmt.Printf("%3d  %-30s %-20s %-10s %-10s %-10s %s\n",
			i, m.Name, m.Director, m.Genre, m.Language, m.Duration, m.Rating)
	}
}

func (a *app) book(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	identifier := fs.String("user", "", "email or username")
	index := fs.Int("movie", -1, "movie position from 'movies'")
	seats := fs.String("seats", "", "comma-separated seat labels, e.g. A1,A2")
	seatType := fs.String("seat-type", "standard", "standard, reclinear, or luxury")
	showtime := fs.String("time", "", strings.Join(service.Showtimes, " | "))
	showDate := fs.String("date", "", "today or tomorrow")
	fs.Parse(args)

	if err := a.accounts.VerifyActive(ctx, *identifier); err != nil {
		fatal("booking failed: %v", err)
	}

	if _, err := a.catalog.Load(ctx); err != nil {
		fatal("booking failed: %v", err)
	}
	movie, err := a.catalog.Get(*index)
	if err != nil {
		fatal("booking failed: %v", err)
	}

	a.booking.Start(*identifier, movie)
	for _, label := range strings.Split(*seats, ",") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, err := a.booking.ToggleSeat(label); err != nil {
			fatal("booking failed: %v", err)
		}
	}
	if _, err := a.booking.ChooseSeatType(parseSeatType(*seatType)); err != nil {
		fatal("booking failed: %v", err)
	}
	if err := a.booking.ChooseTime(*showtime); err != nil {
		fatal("booking failed: %v", err)
	}
	if err := a.booking.ChooseDate(parseShowDate(*showDate)); err != nil {
		fatal("booking failed: %v", err)
	}

	ticket, err := a.booking.Confirm(ctx)
	if err != nil {
		fatal("booking failed: %v", err)
	}

	fmt.Println("Ticket booked!")
	fmt.Printf("  Movie: %s (%s, %s)\n", ticket.MovieName, ticket.Language, ticket.Rating)
	fmt.Printf("  Show:  %s at %s\n", ticket.Date, ticket.Time)
	fmt.Printf("  Seats: %s (%s)\n", ticket.Seats, ticket.SeatType)
	fmt.Printf("  Total: %s\n", ticket.Price)
}

func (a *app) history(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	identifier := fs.String("user", "", "email or username")
	fs.Parse(args)

	bookings, err := a.reports.BookingsFor(ctx, *identifier)
	if err != nil {
		fatal("failed to load history: %v", err)
	}
	if len(bookings) == 0 {
		fmt.Println("No bookings yet.")
		return
	}
	for _, t := range bookings {
		fmt.Printf("%-30s %s %s  seats %s (%s)  total %s\n",
			t.MovieName, t.Date, t.Time, t.Seats, t.SeatType, t.Price)
	}
}

func (a *app) profile(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	identifier := fs.String("user", "", "email or username")
	fs.Parse(args)

	summary, err := a.reports.Profile(ctx, *identifier)
	if err != nil {
		fatal("failed to load profile: %v", err)
	}
	fmt.Printf("Bookings:     %d\n", summary.BookingCount)
	fmt.Printf("Recent movie: %s\n", summary.MostRecentMovie)
	fmt.Printf("Total spent:  %d\n", summary.TotalSpent)
}

// parseSeatType maps a CLI flag value onto a price tier. Unknown values are
// passed through and rejected by the workflow.
func parseSeatType(s string) domain.SeatType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return domain.SeatStandard
	case "reclinear":
		return domain.SeatReclinear
	case "luxury":
		return domain.SeatLuxury
	default:
		return domain.SeatType(s)
	}
}

// parseShowDate maps a CLI flag value onto a show day choice.
func parseShowDate(s string) domain.ShowDate {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return domain.ShowToday
	case "tomorrow":
		return domain.ShowTomorrow
	default:
		return domain.ShowDate(s)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`Filmvault CLI

Usage:
  filmvault <command> [arguments]

Commands:
  register    Create an account (--username --email --password --confirm)
  login       Verify credentials (--user --password)
  movies      List the movie catalog
  book        Book seats (--user --movie --seats --seat-type --time --date)
  history     Show your bookings (--user)
  profile     Show booking count, recent movie, and total spent (--user)
  version     Print version information
  help        Show this help message

Examples:
  filmvault register --username bob --email bob@example.com --password 'Passw0rd!' --confirm 'Passw0rd!'
  filmvault book --user bob@example.com --movie 0 --seats A1,A2 --seat-type luxury --time "7:45 PM" --date today

Configuration is read from ./config.yaml or FILMVAULT_* environment variables.`)
}
