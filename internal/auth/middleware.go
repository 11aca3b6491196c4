package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Middleware attaches the requester identity to the request context. A
// missing Authorization header yields the anonymous identity rather than an
// error: public reads are allowed, and the authorization policy decides per
// operation. A present-but-invalid bearer token is rejected outright.
func Middleware(tokens *TokenService, users UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), Anonymous())))
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader {
				http.Error(w, "Malformed Authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			// The token proves identity at issue time; the record is
			// re-read so deleted users and stale superuser flags do not
			// survive in their tokens.
			user, err := users.ByID(r.Context(), claims.UserID)
			if err != nil {
				log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found")
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			ctx := WithIdentity(r.Context(), Authenticated(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
