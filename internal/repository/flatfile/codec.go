package flatfile

import (
	"strings"
	"time"

	"github.com/filmvault/filmvault/internal/domain"
)

// Delimiters are per entity kind and fixed by the historical file formats.
const (
	userDelimiter   = ","
	movieDelimiter  = ","
	ticketDelimiter = ";"
)

// =============================================================================
// User codec
// =============================================================================

// userCodec maps users to comma-separated rows.
//
// Three schema generations exist on disk:
//
//	username,email,password                          (original)
//	username,email,password,registrationDate         (date column added)
//	username,email,password,registrationDate,status  (current)
//
// Decode is field-count driven and normalizes missing trailing columns:
// a missing date becomes the day of the decode, a missing status becomes
// Active. Encode always emits the current five-column schema.
type userCodec struct{}

func (userCodec) Encode(u *domain.User) string {
	return strings.Join([]string{
		u.Username,
		u.Email,
		u.Password,
		u.RegistrationDate.Format(domain.RegistrationDateFormat),
		string(u.Status),
	}, userDelimiter)
}

func (userCodec) Decode(line string) (*domain.User, bool) {
	parts := strings.Split(line, userDelimiter)
	if len(parts) < 3 || len(parts) > 5 {
		return nil, false
	}

	u := &domain.User{
		Username:         parts[0],
		Email:            parts[1],
		Password:         parts[2],
		RegistrationDate: domain.Today(),
		Status:           domain.StatusActive,
	}
	if len(parts) >= 4 {
		if date, err := time.Parse(domain.RegistrationDateFormat, parts[3]); err == nil {
			u.RegistrationDate = date
		}
	}
	if len(parts) == 5 {
		u.Status = domain.Status(parts[4])
	}
	return u, true
}

// =============================================================================
// Movie codec
// =============================================================================

// movieCodec maps movies to comma-separated rows: six required columns and
// an optional trailing imagePath. Encode always emits seven columns, leaving
// the last one empty for movies without a poster.
type movieCodec struct{}

func (movieCodec) Encode(m *domain.Movie) string {
	return strings.Join([]string{
		m.Name,
		m.Director,
		m.Genre,
		m.Language,
		m.Duration,
		m.Rating,
		m.ImagePath,
	}, movieDelimiter)
}

func (movieCodec) Decode(line string) (*domain.Movie, bool) {
	parts := strings.Split(line, movieDelimiter)
	if len(parts) < 6 {
		return nil, false
	}

	m := &domain.Movie{
		Name:     parts[0],
		Director: parts[1],
		Genre:    parts[2],
		Language: parts[3],
		Duration: parts[4],
		Rating:   parts[5],
	}
	if len(parts) > 6 {
		m.ImagePath = parts[6]
	}
	return m, true
}

// =============================================================================
// Ticket codec
// =============================================================================

// ticketCodec maps tickets to semicolon-separated rows of exactly ten
// columns. There is only one ticket schema generation; rows with fewer
// columns are undecodable and skipped.
type ticketCodec struct{}

func (ticketCodec) Encode(t *domain.Ticket) string {
	return strings.Join([]string{
		t.Identifier,
		t.MovieName,
		t.Genre,
		t.Language,
		t.Rating,
		t.Date,
		t.Time,
		t.Seats,
		string(t.SeatType),
		t.Price,
	}, ticketDelimiter)
}

func (ticketCodec) Decode(line string) (*domain.Ticket, bool) {
	parts := strings.Split(line, ticketDelimiter)
	if len(parts) < 10 {
		return nil, false
	}

	return &domain.Ticket{
		Identifier: parts[0],
		MovieName:  parts[1],
		Genre:      parts[2],
		Language:   parts[3],
		Rating:     parts[4],
		Date:       parts[5],
		Time:       parts[6],
		Seats:      parts[7],
		SeatType:   domain.SeatType(parts[8]),
		Price:      parts[9],
	}, true
}
