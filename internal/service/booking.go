package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository"
)

// Showtimes is the fixed slate of showtime slot labels. The workflow only
// accepts a label from this slate.
var Showtimes = []string{"10:00 AM", "1:15 PM", "4:30 PM", "7:45 PM", "11:00 PM"}

// BookingState is the lifecycle state of a booking session.
type BookingState string

const (
	// StateIdle means no session has been started.
	StateIdle BookingState = "Idle"

	// StateSelecting means a session is open but the seat, showtime, and
	// date selections are not yet all present.
	StateSelecting BookingState = "Selecting"

	// StateReadyToConfirm means every selection is present and Confirm may
	// succeed.
	StateReadyToConfirm BookingState = "ReadyToConfirm"

	// StateConfirmed means the ticket has been written to the ledger.
	StateConfirmed BookingState = "Confirmed"
)

// BookingWorkflow accumulates a user's seat, showtime, and date selections
// for one movie, computes the price, and commits a ticket to the ledger on
// confirmation.
//
// Selections accumulate independently and in any order: seats toggle in and
// out of a set, while showtime and date are exclusive choices where a new
// selection replaces the previous one. Starting a session for another movie
// resets everything; nothing carries over.
//
// The workflow is not safe for concurrent use; it models a single user's
// booking session.
type BookingWorkflow struct {
	tickets repository.TicketRepository
	logger  zerolog.Logger

	sessionID  uuid.UUID
	identifier string
	movie      *domain.Movie
	seats      map[string]struct{}
	seatType   domain.SeatType
	showtime   string
	showDate   domain.ShowDate
	confirmed  bool
}

// NewBookingWorkflow creates an idle workflow committing to tickets.
func NewBookingWorkflow(tickets repository.TicketRepository, logger zerolog.Logger) *BookingWorkflow {
	return &BookingWorkflow{
		tickets: tickets,
		logger:  logger.With().Str("service", "booking").Logger(),
	}
}

// Start opens a session for identifier booking movie. All selections reset:
// no seats, Standard tier, no showtime, no date.
func (w *BookingWorkflow) Start(identifier string, movie *domain.Movie) {
	w.sessionID = uuid.New()
	w.identifier = identifier
	w.movie = movie
	w.seats = make(map[string]struct{})
	w.seatType = domain.SeatStandard
	w.showtime = ""
	w.showDate = ""
	w.confirmed = false

	w.logger.Info().
		Str("session_id", w.sessionID.String()).
		Str("identifier", identifier).
		Str("movie", movie.Name).
		Msg("booking session started")
}

// SessionID returns the ID of the current session, or uuid.Nil when idle.
func (w *BookingWorkflow) SessionID() uuid.UUID {
	return w.sessionID
}

// ToggleSeat adds the seat label to the selection, or removes it if already
// selected. Returns the recomputed total price.
func (w *BookingWorkflow) ToggleSeat(label string) (price int, err error) {
	if w.movie == nil {
		return 0, ErrNoActiveSession
	}
	if _, selected := w.seats[label]; selected {
		delete(w.seats, label)
	} else {
		w.seats[label] = struct{}{}
	}
	return w.Price(), nil
}

// ChooseSeatType switches every selected seat to tier t and recomputes the
// price.
func (w *BookingWorkflow) ChooseSeatType(t domain.SeatType) (price int, err error) {
	if w.movie == nil {
		return 0, ErrNoActiveSession
	}
	if !t.Valid() {
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidSeatType, t)
	}
	w.seatType = t
	return w.Price(), nil
}

// ChooseTime selects the showtime slot, replacing any previous choice.
func (w *BookingWorkflow) ChooseTime(label string) error {
	if w.movie == nil {
		return ErrNoActiveSession
	}
	for _, slot := range Showtimes {
		if slot == label {
			w.showtime = label
			return nil
		}
	}
	return fmt.Errorf("%w: '%s'", ErrInvalidShowtime, label)
}

// ChooseDate selects the show day, replacing any previous choice.
func (w *BookingWorkflow) ChooseDate(d domain.ShowDate) error {
	if w.movie == nil {
		return ErrNoActiveSession
	}
	if !d.Valid() {
		return fmt.Errorf("%w: '%s'", ErrInvalidShowDate, d)
	}
	w.showDate = d
	return nil
}

// Seats returns the selected seat labels in sorted order.
func (w *BookingWorkflow) Seats() []string {
	labels := make([]string, 0, len(w.seats))
	for label := range w.seats {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Price returns seatCount x pricePerSeat(seatType) for the current
// selection.
func (w *BookingWorkflow) Price() int {
	return len(w.seats) * w.seatType.PricePerSeat()
}

// State reports the session's lifecycle state.
func (w *BookingWorkflow) State() BookingState {
	switch {
	case w.movie == nil:
		return StateIdle
	case w.confirmed:
		return StateConfirmed
	case len(w.seats) > 0 && w.showtime != "" && w.showDate != "":
		return StateReadyToConfirm
	default:
		return StateSelecting
	}
}

// Confirm builds the ticket from the accumulated selections plus the
// movie's static attributes and appends it to the ledger.
//
// Confirmation is rejected unless at least one seat, a showtime, and a date
// are all selected; nothing is written in that case. If the ledger append
// fails the selections are kept so the user can retry; nothing else was
// mutated, so there is no rollback.
func (w *BookingWorkflow) Confirm(ctx context.Context) (*domain.Ticket, error) {
	if w.movie == nil {
		return nil, ErrNoActiveSession
	}
	if len(w.seats) == 0 || w.showtime == "" || w.showDate == "" {
		return nil, ErrSelectionIncomplete
	}

	ticket := &domain.Ticket{
		Identifier: w.identifier,
		MovieName:  w.movie.Name,
		Genre:      w.movie.Genre,
		Language:   w.movie.Language,
		Rating:     w.movie.Rating,
		Date:       formatShowDate(w.showDate),
		Time:       w.showtime,
		Seats:      strings.Join(w.Seats(), ", "),
		SeatType:   w.seatType,
		Price:      strconv.Itoa(w.Price()),
	}

	if err := w.tickets.Append(ctx, ticket); err != nil {
		w.logger.Error().
			Err(err).
			Str("session_id", w.sessionID.String()).
			Msg("failed to append ticket")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	w.confirmed = true
	w.logger.Info().
		Str("session_id", w.sessionID.String()).
		Str("identifier", ticket.Identifier).
		Str("movie", ticket.MovieName).
		Str("seats", ticket.Seats).
		Str("price", ticket.Price).
		Msg("ticket booked")

	return ticket, nil
}

// formatShowDate resolves the show day choice against the clock into the
// display text stored on the ticket.
func formatShowDate(d domain.ShowDate) string {
	day := time.Now()
	if d == domain.ShowTomorrow {
		day = day.AddDate(0, 0, 1)
	}
	return day.Format(domain.ShowDateFormat)
}
