package domain

// Movie represents one entry in the movie catalog.
//
// Movies have no stable identifier: a movie is addressed by its position in
// the catalog file, so the in-memory list and the on-disk file must always be
// rewritten together to keep positions consistent.
type Movie struct {
	// Name is the movie title.
	Name string

	// Director is the movie's director.
	Director string

	// Genre is the genre classification (free text, picked from a fixed slate).
	Genre string

	// Language is the spoken language.
	Language string

	// Duration is the running time as display text, e.g. "120 min".
	Duration string

	// Rating is the audience classification, e.g. "PG-13".
	Rating string

	// ImagePath is the path of the copied-in poster image. May be empty.
	ImagePath string
}
