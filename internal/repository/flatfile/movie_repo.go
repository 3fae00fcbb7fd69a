package flatfile

import (
	"context"

	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository"
)

// movieRepository implements repository.MovieRepository over a flat file.
//
// The catalog is whole-file only: movies carry no stable ID, so their
// position in the file is their identity. Load and Save move the complete
// list; everything in between happens in the caller's memory.
type movieRepository struct {
	store *Store[*domain.Movie]
}

// NewMovieRepository creates a movie repository backed by the file at path.
func NewMovieRepository(path string) repository.MovieRepository {
	return &movieRepository{store: NewStore(path, movieCodec{})}
}

// Load returns the full catalog in file order.
func (r *movieRepository) Load(ctx context.Context) ([]*domain.Movie, error) {
	return r.store.ScanAll(ctx)
}

// Save replaces the catalog file with movies, in the given order.
func (r *movieRepository) Save(ctx context.Context, movies []*domain.Movie) error {
	return r.store.RewriteAll(ctx, movies)
}
