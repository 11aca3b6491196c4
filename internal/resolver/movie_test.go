package resolver

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isdelr/streamy-api/internal/apperr"
	"github.com/isdelr/streamy-api/internal/auth"
)

func TestCreateMovie(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	admin := registerSuperuser(t, r, "admin")
	alice := registerUser(t, r, "alice")

	in := CreateMovieInput{
		Title:       "Heat",
		Description: "Bank heist in Los Angeles",
		URL:         "https://example.com/heat",
		Year:        1995,
		Rating:      5,
		Poster:      "https://example.com/poster.jpg",
		Cover:       "https://example.com/cover.jpg",
		Genre:       []string{"crime", "thriller"},
	}

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		_, err := r.CreateMovie(ctx, auth.Anonymous(), in)
		require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("non-superuser is forbidden", func(t *testing.T) {
		_, err := r.CreateMovie(ctx, alice, in)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("superuser creates and owns the movie", func(t *testing.T) {
		movie, err := r.CreateMovie(ctx, admin, in)
		require.NoError(t, err)
		require.Equal(t, "Heat", movie.Title)
		require.Equal(t, []string{"crime", "thriller"}, movie.Genre)
		require.Equal(t, admin.UserID(), movie.PostedBy)
		require.False(t, movie.CreatedAt.IsZero())
	})

	t.Run("missing fields", func(t *testing.T) {
		bad := in
		bad.Poster = ""
		_, err := r.CreateMovie(ctx, admin, bad)
		require.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("title too long", func(t *testing.T) {
		bad := in
		bad.Title = strings.Repeat("x", 51)
		_, err := r.CreateMovie(ctx, admin, bad)
		require.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("year out of range", func(t *testing.T) {
		bad := in
		bad.Year = 40000
		_, err := r.CreateMovie(ctx, admin, bad)
		require.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestUpdateMovie(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	admin := registerSuperuser(t, r, "admin")
	bob := registerUser(t, r, "bob")
	movie := createMovie(t, r, admin, "Heat")

	strptr := func(s string) *string { return &s }
	intptr := func(n int) *int { return &n }

	t.Run("unknown movie", func(t *testing.T) {
		_, err := r.UpdateMovie(ctx, admin, "no-such-id", UpdateMovieInput{Title: strptr("X")})
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := r.UpdateMovie(ctx, bob, movie.ID, UpdateMovieInput{Title: strptr("X")})
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("anonymous is forbidden", func(t *testing.T) {
		_, err := r.UpdateMovie(ctx, auth.Anonymous(), movie.ID, UpdateMovieInput{Title: strptr("X")})
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("owner updates supplied fields", func(t *testing.T) {
		updated, err := r.UpdateMovie(ctx, admin, movie.ID, UpdateMovieInput{
			Title:  strptr("Heat (Remastered)"),
			Rating: intptr(4),
		})
		require.NoError(t, err)
		require.Equal(t, "Heat (Remastered)", updated.Title)
		require.Equal(t, 4, updated.Rating)
		// Untouched fields survive.
		require.Equal(t, movie.Description, updated.Description)
		require.Equal(t, movie.Genre, updated.Genre)
	})

	t.Run("zero rating is treated as not supplied", func(t *testing.T) {
		first, err := r.UpdateMovie(ctx, admin, movie.ID, UpdateMovieInput{Rating: intptr(0)})
		require.NoError(t, err)
		require.Equal(t, 4, first.Rating)

		// Idempotence: the same no-op update applied again yields the same state.
		second, err := r.UpdateMovie(ctx, admin, movie.ID, UpdateMovieInput{Rating: intptr(0)})
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("empty genre list is treated as not supplied", func(t *testing.T) {
		updated, err := r.UpdateMovie(ctx, admin, movie.ID, UpdateMovieInput{Genre: []string{}})
		require.NoError(t, err)
		require.Equal(t, movie.Genre, updated.Genre)
	})

	t.Run("updated title is still bounded", func(t *testing.T) {
		_, err := r.UpdateMovie(ctx, admin, movie.ID, UpdateMovieInput{Title: strptr(strings.Repeat("x", 51))})
		require.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestDeleteMovie(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	admin := registerSuperuser(t, r, "admin")
	bob := registerUser(t, r, "bob")
	movie := createMovie(t, r, admin, "Heat")

	t.Run("unknown movie", func(t *testing.T) {
		_, err := r.DeleteMovie(ctx, admin, "no-such-id")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := r.DeleteMovie(ctx, bob, movie.ID)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("anonymous is forbidden", func(t *testing.T) {
		_, err := r.DeleteMovie(ctx, auth.Anonymous(), movie.ID)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("owner deletes, likes cascade", func(t *testing.T) {
		_, err := r.CreateLike(ctx, bob, movie.ID)
		require.NoError(t, err)

		id, err := r.DeleteMovie(ctx, admin, movie.ID)
		require.NoError(t, err)
		require.Equal(t, movie.ID, id)

		movies, err := r.Movies(ctx, "")
		require.NoError(t, err)
		require.Empty(t, movies)

		likes, err := r.Likes(ctx)
		require.NoError(t, err)
		require.Empty(t, likes)
	})
}

func TestMoviesSearch(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()
	admin := registerSuperuser(t, r, "admin")

	batman, err := r.CreateMovie(ctx, admin, CreateMovieInput{
		Title: "Batman Begins", Description: "Origin story", URL: "https://example.com/1",
		Year: 2005, Rating: 4, Poster: "p", Cover: "c", Genre: []string{"action"},
	})
	require.NoError(t, err)

	darkKnight, err := r.CreateMovie(ctx, admin, CreateMovieInput{
		Title: "The Dark Knight", Description: "BATMAN against the Joker", URL: "https://example.com/2",
		Year: 2008, Rating: 5, Poster: "p", Cover: "c", Genre: []string{"action"},
	})
	require.NoError(t, err)

	_, err = r.CreateMovie(ctx, admin, CreateMovieInput{
		Title: "Heat", Description: "Bank heist", URL: "https://example.com/3",
		Year: 1995, Rating: 5, Poster: "p", Cover: "c", Genre: []string{"crime"},
	})
	require.NoError(t, err)

	t.Run("no search returns all", func(t *testing.T) {
		movies, err := r.Movies(ctx, "")
		require.NoError(t, err)
		require.Len(t, movies, 3)
	})

	t.Run("matches title and description case-insensitively", func(t *testing.T) {
		movies, err := r.Movies(ctx, "batman")
		require.NoError(t, err)
		require.Len(t, movies, 2)

		ids := []string{movies[0].ID, movies[1].ID}
		require.Contains(t, ids, batman.ID)
		require.Contains(t, ids, darkKnight.ID)
	})

	t.Run("no match is an empty slice", func(t *testing.T) {
		movies, err := r.Movies(ctx, "godzilla")
		require.NoError(t, err)
		require.NotNil(t, movies)
		require.Empty(t, movies)
	})
}
