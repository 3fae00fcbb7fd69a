package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filmvault/filmvault/internal/domain"
	"github.com/filmvault/filmvault/internal/repository"
)

func newUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	return NewUserRepository(filepath.Join(t.TempDir(), "users.txt"))
}

func TestUserRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	require.NoError(t, repo.Create(ctx, domain.NewUser("bob", "bob@x.com", "Passw0rd!")))

	t.Run("GetByEmailExact", func(t *testing.T) {
		u, err := repo.GetByEmail(ctx, "bob@x.com")
		require.NoError(t, err)
		require.Equal(t, "bob", u.Username)

		_, err = repo.GetByEmail(ctx, "BOB@X.COM")
		require.ErrorIs(t, err, repository.ErrNotFound, "email lookup is exact-match")
	})

	t.Run("GetByIdentifierExact", func(t *testing.T) {
		u, err := repo.GetByIdentifier(ctx, "bob")
		require.NoError(t, err)
		require.Equal(t, "bob@x.com", u.Email)

		_, err = repo.GetByIdentifier(ctx, "BOB")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("GetByIdentifierFold", func(t *testing.T) {
		u, err := repo.GetByIdentifierFold(ctx, "BOB")
		require.NoError(t, err)
		require.Equal(t, "bob", u.Username)

		u, err = repo.GetByIdentifierFold(ctx, "Bob@X.com")
		require.NoError(t, err)
		require.Equal(t, "bob", u.Username)
	})

	t.Run("Exists", func(t *testing.T) {
		exists, err := repo.Exists(ctx, "bob", "nobody@x.com")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = repo.Exists(ctx, "nobody", "bob@x.com")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = repo.Exists(ctx, "BOB", "BOB@X.COM")
		require.NoError(t, err)
		require.False(t, exists, "existence check is exact-match")
	})
}

func TestUserRepositoryUpdatePreservesOrder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.txt")
	repo := NewUserRepository(path)

	require.NoError(t, repo.Create(ctx, domain.NewUser("bob", "bob@x.com", "Passw0rd!")))
	require.NoError(t, repo.Create(ctx, domain.NewUser("eve", "eve@x.com", "S3cret#!")))
	require.NoError(t, repo.Create(ctx, domain.NewUser("mallory", "mal@x.com", "Hunter2!a")))

	eve, err := repo.GetByEmail(ctx, "eve@x.com")
	require.NoError(t, err)
	eve.Password = "NewS3cret#!"
	require.NoError(t, repo.Update(ctx, "eve@x.com", eve))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, []string{"bob", "eve", "mallory"},
		[]string{users[0].Username, users[1].Username, users[2].Username})
	require.Equal(t, "NewS3cret#!", users[1].Password)

	require.ErrorIs(t, repo.Update(ctx, "nobody@x.com", eve), repository.ErrNotFound)
}

func TestUserRepositoryUpdateUpgradesLegacyRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.txt")
	repo := NewUserRepository(path)

	legacy := "bob,bob@x.com,Passw0rd!\neve,eve@x.com,S3cret#!\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	bob, err := repo.GetByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	bob.Password = "Fresh0ne!"
	require.NoError(t, repo.Update(ctx, "bob@x.com", bob))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	today := domain.Today().Format(domain.RegistrationDateFormat)
	require.Contains(t, string(content), "bob,bob@x.com,Fresh0ne!,"+today+",Active")
	require.Contains(t, string(content), "eve,eve@x.com,S3cret#!,"+today+",Active",
		"untouched legacy rows are upgraded on rewrite")
}

func TestUserRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	require.NoError(t, repo.Create(ctx, domain.NewUser("bob", "bob@x.com", "Passw0rd!")))
	require.NoError(t, repo.Create(ctx, domain.NewUser("eve", "eve@x.com", "S3cret#!")))

	require.NoError(t, repo.Delete(ctx, "bob@x.com"))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "eve", users[0].Username)

	require.ErrorIs(t, repo.Delete(ctx, "bob@x.com"), repository.ErrNotFound)
}
