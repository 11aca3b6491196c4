package resolver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/isdelr/streamy-api/internal/apperr"
	"github.com/isdelr/streamy-api/internal/auth"
	"github.com/isdelr/streamy-api/internal/authz"
	"github.com/isdelr/streamy-api/internal/models"
	"github.com/isdelr/streamy-api/internal/store"
)

// CreateMovieInput carries the fields for movie submission. All fields are
// required.
type CreateMovieInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Year        int      `json:"year"`
	Rating      int      `json:"rating"`
	Poster      string   `json:"poster"`
	Cover       string   `json:"cover"`
	Genre       []string `json:"genre"`
}

// UpdateMovieInput carries the optional fields for a movie update. A nil
// pointer means "not supplied"; note that supplied zero or empty values are
// treated the same way, see UpdateMovie.
type UpdateMovieInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	URL         *string  `json:"url"`
	Year        *int     `json:"year"`
	Rating      *int     `json:"rating"`
	Poster      *string  `json:"poster"`
	Cover       *string  `json:"cover"`
	Genre       []string `json:"genre"`
}

func validateMovie(m models.Movie) error {
	if len(m.Title) > models.MaxTitleLen {
		return apperr.Validation(fmt.Sprintf("title must be at most %d characters", models.MaxTitleLen))
	}
	if m.Year < 0 || m.Year > models.MaxYear {
		return apperr.Validation("year is out of range")
	}
	if m.Rating < 0 || m.Rating > models.MaxRating {
		return apperr.Validation("rating is out of range")
	}
	return nil
}

// CreateMovie adds a movie to the catalog. Only superusers may do this; the
// requester becomes the movie's immutable posted_by owner.
func (r *Resolver) CreateMovie(ctx context.Context, ident auth.Identity, in CreateMovieInput) (models.Movie, error) {
	if err := authz.Decide(ident, authz.ActionCreateMovie, nil).Err(); err != nil {
		return models.Movie{}, err
	}
	if in.Title == "" || in.Description == "" || in.URL == "" || in.Poster == "" || in.Cover == "" || len(in.Genre) == 0 {
		return models.Movie{}, apperr.Validation("all movie fields are required")
	}

	movie := models.Movie{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Year:        in.Year,
		Rating:      in.Rating,
		Poster:      in.Poster,
		Cover:       in.Cover,
		Genre:       in.Genre,
		PostedBy:    ident.UserID(),
	}
	if err := validateMovie(movie); err != nil {
		return models.Movie{}, err
	}

	err := r.inTx(ctx, func(_ *store.UserStore, catalog *store.CatalogStore) error {
		if err := catalog.CreateMovie(ctx, movie); err != nil {
			return err
		}
		var err error
		movie, err = catalog.MovieByID(ctx, movie.ID)
		return err
	})
	if err != nil {
		return models.Movie{}, err
	}
	return movie, nil
}

// UpdateMovie overwrites fields of a movie posted by the requester.
//
// Supplied values that are zero or empty are indistinguishable from "not
// supplied" and leave the stored value unchanged — a rating of 0 or an empty
// genre list can therefore never be written through this operation. This
// mirrors the behavior the API has always had and is covered by tests.
func (r *Resolver) UpdateMovie(ctx context.Context, ident auth.Identity, movieID string, in UpdateMovieInput) (models.Movie, error) {
	var movie models.Movie
	err := r.inTx(ctx, func(_ *store.UserStore, catalog *store.CatalogStore) error {
		var err error
		movie, err = catalog.MovieByID(ctx, movieID)
		if err != nil {
			return err
		}
		if err := authz.Decide(ident, authz.ActionUpdateMovie, &movie).Err(); err != nil {
			return err
		}

		if in.Title != nil && *in.Title != "" {
			movie.Title = *in.Title
		}
		if in.Description != nil && *in.Description != "" {
			movie.Description = *in.Description
		}
		if in.URL != nil && *in.URL != "" {
			movie.URL = *in.URL
		}
		if in.Year != nil && *in.Year != 0 {
			movie.Year = *in.Year
		}
		if in.Rating != nil && *in.Rating != 0 {
			movie.Rating = *in.Rating
		}
		if in.Poster != nil && *in.Poster != "" {
			movie.Poster = *in.Poster
		}
		if in.Cover != nil && *in.Cover != "" {
			movie.Cover = *in.Cover
		}
		if len(in.Genre) > 0 {
			movie.Genre = in.Genre
		}

		if err := validateMovie(movie); err != nil {
			return err
		}
		return catalog.UpdateMovie(ctx, movie)
	})
	if err != nil {
		return models.Movie{}, err
	}
	return movie, nil
}

// DeleteMovie removes a movie posted by the requester and returns its ID.
// Likes on the movie cascade away with it.
func (r *Resolver) DeleteMovie(ctx context.Context, ident auth.Identity, movieID string) (string, error) {
	err := r.inTx(ctx, func(_ *store.UserStore, catalog *store.CatalogStore) error {
		movie, err := catalog.MovieByID(ctx, movieID)
		if err != nil {
			return err
		}
		if err := authz.Decide(ident, authz.ActionDeleteMovie, &movie).Err(); err != nil {
			return err
		}
		return catalog.DeleteMovie(ctx, movieID)
	})
	if err != nil {
		return "", err
	}
	return movieID, nil
}

// Movies lists the catalog. A non-empty search narrows the result to movies
// whose title or description contains the string case-insensitively; an
// empty result set is an empty slice, not an error.
func (r *Resolver) Movies(ctx context.Context, search string) ([]models.Movie, error) {
	return r.catalog.Movies(ctx, search)
}
