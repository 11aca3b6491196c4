package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isdelr/streamy-api/internal/apperr"
	"github.com/isdelr/streamy-api/internal/auth"
)

func TestCreateLike(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	admin := registerSuperuser(t, r, "admin")
	fan := registerUser(t, r, "fan")
	movie := createMovie(t, r, admin, "Heat")

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		_, err := r.CreateLike(ctx, auth.Anonymous(), movie.ID)
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("unknown movie", func(t *testing.T) {
		_, err := r.CreateLike(ctx, fan, "no-such-id")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("returns the liking user and the movie", func(t *testing.T) {
		result, err := r.CreateLike(ctx, fan, movie.ID)
		require.NoError(t, err)
		require.Equal(t, fan.UserID(), result.User.ID)
		require.Equal(t, movie.ID, result.Movie.ID)
		require.Empty(t, result.User.PasswordHash)
	})

	// No uniqueness is enforced on (user, movie): liking twice produces two
	// records. This mirrors the schema as it stands and is intentional.
	t.Run("duplicate likes are permitted", func(t *testing.T) {
		_, err := r.CreateLike(ctx, fan, movie.ID)
		require.NoError(t, err)

		likes, err := r.Likes(ctx)
		require.NoError(t, err)
		require.Len(t, likes, 2)
	})
}

func TestRemoveLike(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	admin := registerSuperuser(t, r, "admin")
	fan := registerUser(t, r, "fan")
	movie := createMovie(t, r, admin, "Heat")

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		_, err := r.RemoveLike(ctx, auth.Anonymous(), movie.ID)
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("unknown movie", func(t *testing.T) {
		_, err := r.RemoveLike(ctx, fan, "no-such-id")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("no existing like", func(t *testing.T) {
		_, err := r.RemoveLike(ctx, fan, movie.ID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("removes exactly one like", func(t *testing.T) {
		_, err := r.CreateLike(ctx, fan, movie.ID)
		require.NoError(t, err)
		_, err = r.CreateLike(ctx, fan, movie.ID)
		require.NoError(t, err)

		result, err := r.RemoveLike(ctx, fan, movie.ID)
		require.NoError(t, err)
		require.Equal(t, movie.ID, result.Movie.ID)

		likes, err := r.Likes(ctx)
		require.NoError(t, err)
		require.Len(t, likes, 1)
	})

	t.Run("only the requester's likes count", func(t *testing.T) {
		// The remaining like belongs to fan; admin has none to remove.
		_, err := r.RemoveLike(ctx, admin, movie.ID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
