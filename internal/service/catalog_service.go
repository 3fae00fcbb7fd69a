package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository"
	"github.com/filmvault/filmvault/internal/storage"
)

// Selection slates offered by embedding UIs. Validation only requires the
// fields to be non-empty; the slates are advisory.
var (
	// Genres is the slate of genre choices.
	Genres = []string{"Action", "Comedy", "Drama", "Horror", "Romance", "Sci-Fi", "Thriller", "Animation"}

	// Languages is the slate of language choices.
	Languages = []string{"English", "Hindi", "Malayalam", "Tamil", "Telugu"}

	// Ratings is the slate of audience classification choices.
	Ratings = []string{"U", "UA", "A", "PG-13", "R"}
)

// CatalogService manages the movie catalog.
//
// Movies are addressed by row position: the in-memory list loaded by Load
// is the single source of truth for positions until the next Load, and
// every mutation rewrites the whole file so the list and the file never
// diverge. Mutations load the catalog themselves if no Load has happened
// yet, and persist before returning; Persist is also exported for callers
// that want an explicit flush.
type CatalogService struct {
	movies  repository.MovieRepository
	posters *storage.PosterStore
	logger  zerolog.Logger

	list   []*domain.Movie
	loaded bool
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(movies repository.MovieRepository, posters *storage.PosterStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		movies:  movies,
		posters: posters,
		logger:  logger.With().Str("service", "catalog").Logger(),
	}
}

// Load refreshes the in-memory catalog from disk and returns it in file
// order. Positions handed to UpdateAt/RemoveAt refer to this snapshot.
func (s *CatalogService) Load(ctx context.Context) ([]*domain.Movie, error) {
	list, err := s.movies.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load catalog")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	s.list = list
	s.loaded = true
	return append([]*domain.Movie(nil), list...), nil
}

// ensureLoaded loads the catalog on first use so a mutation before Load
// never rewrites the file from an empty list.
func (s *CatalogService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	_, err := s.Load(ctx)
	return err
}

// Get returns the movie at position index in the loaded catalog.
func (s *CatalogService) Get(index int) (*domain.Movie, error) {
	if index < 0 || index >= len(s.list) {
		return nil, fmt.Errorf("%w: position %d", domain.ErrMovieNotFound, index)
	}
	return s.list[index], nil
}

// MovieInput contains the data needed to add or update a catalog entry.
type MovieInput struct {
	Name     string
	Director string
	Genre    string
	Language string
	Duration string
	Rating   string

	// PosterSource is an optional path to a poster image to copy into the
	// poster directory. Empty means no poster (add) or keep the existing
	// one (update).
	PosterSource string
}

// Add validates input, copies the poster in if one was supplied, appends
// the movie to the catalog, and persists. A failed poster copy degrades to
// an empty image path; it never aborts the save.
func (s *CatalogService) Add(ctx context.Context, input MovieInput) (*domain.Movie, error) {
	if err := validateMovieInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	movie := &domain.Movie{
		Name:      strings.TrimSpace(input.Name),
		Director:  strings.TrimSpace(input.Director),
		Genre:     input.Genre,
		Language:  input.Language,
		Duration:  strings.TrimSpace(input.Duration),
		Rating:    input.Rating,
		ImagePath: s.copyPoster(input.PosterSource),
	}

	s.list = append(s.list, movie)
	if err := s.persist(ctx); err != nil {
		s.list = s.list[:len(s.list)-1]
		return nil, err
	}

	s.logger.Info().Str("movie", movie.Name).Msg("movie added")
	return movie, nil
}

// UpdateAt validates input and overwrites every field of the movie at
// position index, then persists. A newly supplied poster replaces the old
// image path; without one the existing path is kept.
func (s *CatalogService) UpdateAt(ctx context.Context, index int, input MovieInput) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(s.list) {
		return fmt.Errorf("%w: position %d", domain.ErrMovieNotFound, index)
	}
	if err := validateMovieInput(input); err != nil {
		return err
	}

	previous := *s.list[index]
	movie := s.list[index]
	movie.Name = strings.TrimSpace(input.Name)
	movie.Director = strings.TrimSpace(input.Director)
	movie.Genre = input.Genre
	movie.Language = input.Language
	movie.Duration = strings.TrimSpace(input.Duration)
	movie.Rating = input.Rating
	if input.PosterSource != "" {
		movie.ImagePath = s.copyPoster(input.PosterSource)
	}

	if err := s.persist(ctx); err != nil {
		*s.list[index] = previous
		return err
	}

	s.logger.Info().Int("position", index).Str("movie", movie.Name).Msg("movie updated")
	return nil
}

// RemoveAt deletes the movie at position index and persists. Positions of
// later movies shift down by one.
func (s *CatalogService) RemoveAt(ctx context.Context, index int) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(s.list) {
		return fmt.Errorf("%w: position %d", domain.ErrMovieNotFound, index)
	}

	removed := s.list[index]
	s.list = append(s.list[:index], s.list[index+1:]...)
	if err := s.persist(ctx); err != nil {
		s.list = append(s.list[:index], append([]*domain.Movie{removed}, s.list[index:]...)...)
		return err
	}

	s.logger.Info().Int("position", index).Str("movie", removed.Name).Msg("movie removed")
	return nil
}

// Persist rewrites the catalog file from the in-memory list.
func (s *CatalogService) Persist(ctx context.Context) error {
	return s.persist(ctx)
}

func (s *CatalogService) persist(ctx context.Context) error {
	if err := s.movies.Save(ctx, s.list); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist catalog")
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// copyPoster copies the poster into the poster directory and returns its
// destination path. Copy failures are logged and degrade to no poster.
func (s *CatalogService) copyPoster(sourcePath string) string {
	destPath, err := s.posters.CopyIn(sourcePath)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", sourcePath).Msg("poster copy failed, saving without image")
		return ""
	}
	return destPath
}

// validateMovieInput checks required fields; the first failure aborts.
func validateMovieInput(input MovieInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: movie name", ErrFieldRequired)
	}
	if strings.TrimSpace(input.Director) == "" {
		return fmt.Errorf("%w: director", ErrFieldRequired)
	}
	if input.Genre == "" {
		return fmt.Errorf("%w: genre", ErrFieldRequired)
	}
	if input.Language == "" {
		return fmt.Errorf("%w: language", ErrFieldRequired)
	}
	if strings.TrimSpace(input.Duration) == "" {
		return fmt.Errorf("%w: duration", ErrFieldRequired)
	}
	if input.Rating == "" {
		return fmt.Errorf("%w: rating", ErrFieldRequired)
	}
	return nil
}
