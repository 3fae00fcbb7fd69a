package domain

// SeatType is the price tier of the seats on a ticket.
type SeatType string

const (
	// SeatStandard is the base tier.
	SeatStandard SeatType = "Standard Seat"

	// SeatReclinear is the mid tier (reclining seats).
	SeatReclinear SeatType = "Reclinear Seat"

	// SeatLuxury is the top tier.
	SeatLuxury SeatType = "Luxury Seat"
)

// PricePerSeat returns the price of a single seat in this tier, in whole
// currency units. Unknown tiers price at zero; the booking workflow never
// produces one.
func (t SeatType) PricePerSeat() int {
	switch t {
	case SeatStandard:
		return 185
	case SeatReclinear:
		return 225
	case SeatLuxury:
		return 300
	default:
		return 0
	}
}

// Valid returns true if t is one of the known price tiers.
func (t SeatType) Valid() bool {
	switch t {
	case SeatStandard, SeatReclinear, SeatLuxury:
		return true
	}
	return false
}

// SeatTypes lists the known price tiers in ascending price order.
func SeatTypes() []SeatType {
	return []SeatType{SeatStandard, SeatReclinear, SeatLuxury}
}

// ShowDate is the day of the show chosen during booking.
type ShowDate string

const (
	// ShowToday books the show for the current day.
	ShowToday ShowDate = "Today"

	// ShowTomorrow books the show for the next day.
	ShowTomorrow ShowDate = "Tomorrow"
)

// Valid returns true if d is one of the offered show days.
func (d ShowDate) Valid() bool {
	return d == ShowToday || d == ShowTomorrow
}

// ShowDateFormat is the display layout used for the date field on a ticket.
// Tickets store the formatted text, not an ISO date.
const ShowDateFormat = "January 02, 2006"

// Ticket is one booking record in the append-only ledger.
//
// Tickets are never updated or deleted once written. They have no explicit
// ID; insertion order in the ledger file is the only ordering, so the last
// line is the most recent booking.
type Ticket struct {
	// Identifier is the username or email of the booking account. This is
	// the only cross-reference to the user store; no referential integrity
	// is enforced.
	Identifier string

	// MovieName, Genre, Language and Rating are copied from the movie at
	// booking time. They are frozen snapshots, never re-resolved.
	MovieName string
	Genre     string
	Language  string
	Rating    string

	// Date is the display-formatted show day (ShowDateFormat).
	Date string

	// Time is the display label of the chosen showtime slot.
	Time string

	// Seats is the sorted, comma-joined seat labels, e.g. "A1, A2".
	Seats string

	// SeatType is the price tier all seats on this ticket were booked at.
	SeatType SeatType

	// Price is the pre-computed total as an integer string. The ledger
	// never recomputes it.
	Price string
}
