package resolver

import (
	"context"

	"github.com/google/uuid"

	"github.com/isdelr/streamy-api/internal/auth"
	"github.com/isdelr/streamy-api/internal/authz"
	"github.com/isdelr/streamy-api/internal/models"
	"github.com/isdelr/streamy-api/internal/store"
)

// LikeResult pairs the liking user with the liked movie.
type LikeResult struct {
	User  models.User  `json:"user"`
	Movie models.Movie `json:"movie"`
}

// CreateLike records that the requester likes the given movie. Liking the
// same movie again adds another like record; no uniqueness is enforced.
func (r *Resolver) CreateLike(ctx context.Context, ident auth.Identity, movieID string) (LikeResult, error) {
	if err := authz.Decide(ident, authz.ActionCreateLike, nil).Err(); err != nil {
		return LikeResult{}, err
	}

	var movie models.Movie
	err := r.inTx(ctx, func(_ *store.UserStore, catalog *store.CatalogStore) error {
		var err error
		movie, err = catalog.MovieByID(ctx, movieID)
		if err != nil {
			return err
		}
		return catalog.CreateLike(ctx, models.Like{
			ID:      uuid.New().String(),
			UserID:  ident.UserID(),
			MovieID: movieID,
		})
	})
	if err != nil {
		return LikeResult{}, err
	}

	user, _ := ident.User()
	user.PasswordHash = ""
	return LikeResult{User: user, Movie: movie}, nil
}

// RemoveLike deletes one like of the requester on the given movie — the most
// recently created one when duplicates exist. Fails with a not-found error
// when the requester has no like on that movie.
func (r *Resolver) RemoveLike(ctx context.Context, ident auth.Identity, movieID string) (LikeResult, error) {
	if err := authz.Decide(ident, authz.ActionRemoveLike, nil).Err(); err != nil {
		return LikeResult{}, err
	}

	var movie models.Movie
	err := r.inTx(ctx, func(_ *store.UserStore, catalog *store.CatalogStore) error {
		var err error
		movie, err = catalog.MovieByID(ctx, movieID)
		if err != nil {
			return err
		}
		like, err := catalog.LatestLike(ctx, ident.UserID(), movieID)
		if err != nil {
			return err
		}
		return catalog.DeleteLike(ctx, like.ID)
	})
	if err != nil {
		return LikeResult{}, err
	}

	user, _ := ident.User()
	user.PasswordHash = ""
	return LikeResult{User: user, Movie: movie}, nil
}

// Likes returns all like records.
func (r *Resolver) Likes(ctx context.Context) ([]models.Like, error) {
	return r.catalog.Likes(ctx)
}
