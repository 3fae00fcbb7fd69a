package flatfile

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/filmvault/filmvault/internal/domain"
)

func date(s string) time.Time {
	d, err := time.Parse(domain.RegistrationDateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUserCodecRoundTrip(t *testing.T) {
	codec := userCodec{}

	users := []*domain.User{
		{Username: "bob", Email: "bob@x.com", Password: "Passw0rd!", RegistrationDate: date("2023-05-01"), Status: domain.StatusActive},
		{Username: "eve", Email: "eve@x.com", Password: "S3cret#!", RegistrationDate: date("2020-12-31"), Status: domain.StatusBlocked},
	}
	for _, u := range users {
		decoded, ok := codec.Decode(codec.Encode(u))
		require.True(t, ok)
		require.Equal(t, u, decoded)
	}
}

func TestUserCodecBackwardCompat(t *testing.T) {
	codec := userCodec{}

	t.Run("ThreeFields", func(t *testing.T) {
		u, ok := codec.Decode("bob,bob@x.com,Passw0rd!")
		require.True(t, ok)
		require.Equal(t, "bob", u.Username)
		require.Equal(t, "bob@x.com", u.Email)
		require.Equal(t, "Passw0rd!", u.Password)
		require.Equal(t, domain.StatusActive, u.Status)
		require.True(t, u.RegistrationDate.Equal(domain.Today()), "missing date defaults to today")
	})

	t.Run("FourFields", func(t *testing.T) {
		u, ok := codec.Decode("bob,bob@x.com,Passw0rd!,2023-05-01")
		require.True(t, ok)
		require.True(t, u.RegistrationDate.Equal(date("2023-05-01")))
		require.Equal(t, domain.StatusActive, u.Status)
	})

	t.Run("FiveFields", func(t *testing.T) {
		u, ok := codec.Decode("bob,bob@x.com,Passw0rd!,2023-05-01,Blocked")
		require.True(t, ok)
		require.Equal(t, domain.StatusBlocked, u.Status)
	})

	t.Run("UnparseableDateDefaultsToToday", func(t *testing.T) {
		u, ok := codec.Decode("bob,bob@x.com,Passw0rd!,yesterday")
		require.True(t, ok)
		require.True(t, u.RegistrationDate.Equal(domain.Today()))
	})
}

func TestUserCodecMalformed(t *testing.T) {
	codec := userCodec{}

	for _, line := range []string{
		"",
		"bob",
		"bob,bob@x.com",
		"a,b,c,d,e,f", // six fields matches no generation
	} {
		_, ok := codec.Decode(line)
		require.False(t, ok, "line %q should not decode", line)
	}
}

func TestMovieCodec(t *testing.T) {
	codec := movieCodec{}

	t.Run("RoundTrip", func(t *testing.T) {
		movies := []*domain.Movie{
			{Name: "Dune", Director: "Denis Villeneuve", Genre: "Sci-Fi", Language: "English", Duration: "155 min", Rating: "UA", ImagePath: "posters/dune.jpg"},
			{Name: "Drishyam", Director: "Jeethu Joseph", Genre: "Thriller", Language: "Malayalam", Duration: "160 min", Rating: "U", ImagePath: ""},
		}
		for _, m := range movies {
			decoded, ok := codec.Decode(codec.Encode(m))
			require.True(t, ok)
			require.Equal(t, m, decoded)
		}
	})

	t.Run("SixFieldsWithoutPoster", func(t *testing.T) {
		m, ok := codec.Decode("Dune,Denis Villeneuve,Sci-Fi,English,155 min,UA")
		require.True(t, ok)
		require.Empty(t, m.ImagePath)
	})

	t.Run("EncodeEmitsSevenColumns", func(t *testing.T) {
		line := codec.Encode(&domain.Movie{Name: "Dune", Director: "DV", Genre: "Sci-Fi", Language: "English", Duration: "155 min", Rating: "UA"})
		require.Equal(t, 6, strings.Count(line, ","))
	})

	t.Run("TooFewFields", func(t *testing.T) {
		_, ok := codec.Decode("Dune,DV,Sci-Fi,English,155 min")
		require.False(t, ok)
	})
}

func TestTicketCodec(t *testing.T) {
	codec := ticketCodec{}

	t.Run("RoundTrip", func(t *testing.T) {
		ticket := &domain.Ticket{
			Identifier: "bob@x.com",
			MovieName:  "Dune",
			Genre:      "Sci-Fi",
			Language:   "English",
			Rating:     "UA",
			Date:       "August 31, 2026",
			Time:       "7:45 PM",
			Seats:      "A1, A2",
			SeatType:   domain.SeatLuxury,
			Price:      "600",
		}
		decoded, ok := codec.Decode(codec.Encode(ticket))
		require.True(t, ok)
		require.Equal(t, ticket, decoded)
	})

	t.Run("TooFewFields", func(t *testing.T) {
		_, ok := codec.Decode("bob;Dune;Sci-Fi;English;UA;Aug;7:45 PM;A1;Luxury Seat")
		require.False(t, ok)
	})
}
