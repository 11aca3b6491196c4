package resolver

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/isdelr/streamy-api/internal/apperr"
	"github.com/isdelr/streamy-api/internal/auth"
	"github.com/isdelr/streamy-api/internal/authz"
	"github.com/isdelr/streamy-api/internal/models"
	"github.com/isdelr/streamy-api/internal/store"
)

// RegisterInput carries the fields for account registration.
type RegisterInput struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// Register creates a new user account. Username and email must be unused and
// the password confirmation must match; nothing is persisted on failure.
func (r *Resolver) Register(ctx context.Context, ident auth.Identity, in RegisterInput) (models.User, error) {
	if err := authz.Decide(ident, authz.ActionRegister, nil).Err(); err != nil {
		return models.User{}, err
	}
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return models.User{}, apperr.Validation("username, email and password are required")
	}
	if in.Password != in.PasswordConfirmation {
		return models.User{}, apperr.Validation("password confirmation does not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
	}

	err = r.inTx(ctx, func(users *store.UserStore, _ *store.CatalogStore) error {
		if _, err := users.ByUsername(ctx, in.Username); err == nil {
			return apperr.Conflict("username already taken")
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		if _, err := users.ByEmail(ctx, in.Email); err == nil {
			return apperr.Conflict("email already registered")
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		user, err = users.ByID(ctx, user.ID)
		return err
	})
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateAccount overwrites the requester's name fields. Empty parameters
// leave the stored value unchanged.
func (r *Resolver) UpdateAccount(ctx context.Context, ident auth.Identity, firstName, lastName string) (models.User, error) {
	if err := authz.Decide(ident, authz.ActionUpdateAccount, nil).Err(); err != nil {
		return models.User{}, err
	}

	var user models.User
	err := r.inTx(ctx, func(users *store.UserStore, _ *store.CatalogStore) error {
		var err error
		user, err = users.ByID(ctx, ident.UserID())
		if err != nil {
			return err
		}
		if firstName != "" {
			user.FirstName = firstName
		}
		if lastName != "" {
			user.LastName = lastName
		}
		return users.UpdateNames(ctx, user.ID, user.FirstName, user.LastName)
	})
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ChangePassword replaces the requester's credential. The old password must
// verify and the new password must match its confirmation.
func (r *Resolver) ChangePassword(ctx context.Context, ident auth.Identity, oldPassword, newPassword, confirmPassword string) (models.User, error) {
	if err := authz.Decide(ident, authz.ActionChangePassword, nil).Err(); err != nil {
		return models.User{}, err
	}

	var user models.User
	err := r.inTx(ctx, func(users *store.UserStore, _ *store.CatalogStore) error {
		var err error
		user, err = users.ByID(ctx, ident.UserID())
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
			return apperr.Unauthenticated("current password is incorrect")
		}
		if newPassword == "" {
			return apperr.Validation("new password is required")
		}
		if newPassword != confirmPassword {
			return apperr.Validation("password confirmation does not match")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return users.UpdatePasswordHash(ctx, user.ID, string(hash))
	})
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteAccount removes the requester's own record after verifying the
// supplied password. Movies posted by the user and their likes cascade away
// with it. Returns a snapshot of the deleted record.
func (r *Resolver) DeleteAccount(ctx context.Context, ident auth.Identity, password string) (models.User, error) {
	if err := authz.Decide(ident, authz.ActionDeleteAccount, nil).Err(); err != nil {
		return models.User{}, err
	}

	var user models.User
	err := r.inTx(ctx, func(users *store.UserStore, _ *store.CatalogStore) error {
		var err error
		user, err = users.ByID(ctx, ident.UserID())
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return apperr.Unauthenticated("password is incorrect")
		}
		return users.Delete(ctx, user.ID)
	})
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Me returns the requester's own record.
func (r *Resolver) Me(ctx context.Context, ident auth.Identity) (models.User, error) {
	if err := authz.Decide(ident, authz.ActionViewSelf, nil).Err(); err != nil {
		return models.User{}, err
	}

	user, err := r.users.ByID(ctx, ident.UserID())
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Users returns all user records. The listing is public: the upstream schema
// exposes it without authentication, which is a likely gap but is kept as-is
// rather than silently tightened.
func (r *Resolver) Users(ctx context.Context) ([]models.User, error) {
	users, err := r.users.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
