package flatfile

import (
	"context"
	"strings"

	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository"
)

// userRepository implements repository.UserRepository over a flat file.
type userRepository struct {
	store *Store[*domain.User]
}

// NewUserRepository creates a user repository backed by the file at path.
func NewUserRepository(path string) repository.UserRepository {
	return &userRepository{store: NewStore(path, userCodec{})}
}

// Create appends a new user to the store.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.Append(ctx, user)
}

// GetByEmail retrieves a user by exact email match.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, found, err := r.store.Find(ctx, func(u *domain.User) bool {
		return u.Email == email
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

// GetByIdentifier retrieves the first user whose username or email equals
// identifier exactly.
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user, found, err := r.store.Find(ctx, func(u *domain.User) bool {
		return u.Username == identifier || u.Email == identifier
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

// GetByIdentifierFold retrieves the first user whose username or email
// equals identifier case-insensitively.
func (r *userRepository) GetByIdentifierFold(ctx context.Context, identifier string) (*domain.User, error) {
	user, found, err := r.store.Find(ctx, func(u *domain.User) bool {
		return strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

// Update replaces the row addressed by exact email match and rewrites the
// whole file. Rows written under older schemas are upgraded on the way out.
func (r *userRepository) Update(ctx context.Context, email string, user *domain.User) error {
	users, err := r.store.ScanAll(ctx)
	if err != nil {
		return err
	}

	found := false
	for i, u := range users {
		if u.Email == email {
			users[i] = user
			found = true
			break
		}
	}
	if !found {
		return repository.ErrNotFound
	}

	return r.store.RewriteAll(ctx, users)
}

// Delete removes the row addressed by exact email match and rewrites the
// whole file.
func (r *userRepository) Delete(ctx context.Context, email string) error {
	users, err := r.store.ScanAll(ctx)
	if err != nil {
		return err
	}

	kept := users[:0]
	found := false
	for _, u := range users {
		if !found && u.Email == email {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return repository.ErrNotFound
	}

	return r.store.RewriteAll(ctx, kept)
}

// List returns all users in file order.
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.store.ScanAll(ctx)
}

// Exists reports whether any row matches username or email exactly.
func (r *userRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	_, found, err := r.store.Find(ctx, func(u *domain.User) bool {
		return u.Username == username || u.Email == email
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
