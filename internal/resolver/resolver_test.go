package resolver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isdelr/streamy-api/internal/auth"
	"github.com/isdelr/streamy-api/internal/database"
	"github.com/isdelr/streamy-api/internal/models"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return New(db)
}

// registerUser creates a regular account through the normal registration
// path and returns its identity.
func registerUser(t *testing.T, r *Resolver, username string) auth.Identity {
	t.Helper()

	user, err := r.Register(context.Background(), auth.Anonymous(), RegisterInput{
		FirstName:            "Test",
		LastName:             "User",
		Username:             username,
		Email:                username + "@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	})
	require.NoError(t, err)
	return identFor(t, r, user.ID)
}

// registerSuperuser promotes a freshly registered account to superuser, the
// way an operator would flip the flag directly in the database.
func registerSuperuser(t *testing.T, r *Resolver, username string) auth.Identity {
	t.Helper()

	ident := registerUser(t, r, username)
	_, err := r.db.Exec("UPDATE users SET is_superuser = 1 WHERE id = ?", ident.UserID())
	require.NoError(t, err)
	return identFor(t, r, ident.UserID())
}

// identFor re-reads the user record and wraps it as an authenticated
// identity, as the transport middleware would.
func identFor(t *testing.T, r *Resolver, id string) auth.Identity {
	t.Helper()

	user, err := r.users.ByID(context.Background(), id)
	require.NoError(t, err)
	return auth.Authenticated(user)
}

// createMovie inserts a movie as the given superuser identity.
func createMovie(t *testing.T, r *Resolver, ident auth.Identity, title string) models.Movie {
	t.Helper()

	movie, err := r.CreateMovie(context.Background(), ident, CreateMovieInput{
		Title:       title,
		Description: "description of " + title,
		URL:         "https://example.com/watch",
		Year:        1995,
		Rating:      5,
		Poster:      "https://example.com/poster.jpg",
		Cover:       "https://example.com/cover.jpg",
		Genre:       []string{"crime", "drama"},
	})
	require.NoError(t, err)
	return movie
}
