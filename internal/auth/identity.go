package auth

import (
	"context"

	"github.com/isdelr/streamy-api/internal/models"
)

// Identity is the requester attached to an incoming operation. It is a
// tagged variant: either an authenticated user or the anonymous sentinel.
// The zero value is anonymous, so an Identity is never a nil reference.
type Identity struct {
	user          models.User
	authenticated bool
}

// Anonymous returns the no-requester sentinel identity.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns an identity for the given user.
func Authenticated(user models.User) Identity {
	return Identity{user: user, authenticated: true}
}

// IsAnonymous reports whether no authenticated user is attached.
func (i Identity) IsAnonymous() bool {
	return !i.authenticated
}

// User returns the authenticated user and true, or the zero user and false
// for the anonymous sentinel.
func (i Identity) User() (models.User, bool) {
	return i.user, i.authenticated
}

// UserID returns the authenticated user's ID, or "" for anonymous. The empty
// string never equals a stored record ID, so ownership comparisons against it
// always fail.
func (i Identity) UserID() string {
	if !i.authenticated {
		return ""
	}
	return i.user.ID
}

type contextKey string

const identityKey = contextKey("identity")

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFromContext returns the identity attached by the transport
// middleware, or the anonymous sentinel when none is present.
func IdentityFromContext(ctx context.Context) Identity {
	if ident, ok := ctx.Value(identityKey).(Identity); ok {
		return ident
	}
	return Anonymous()
}
