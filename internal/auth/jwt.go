package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/isdelr/streamy-api/internal/apperr"
	"github.com/isdelr/streamy-api/internal/models"
)

// Token use values embedded in the claims so a refresh token can never pass
// as an access token.
const (
	useAccess  = "access"
	useRefresh = "refresh"
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	TokenUse string `json:"tokenUse"`
	jwt.RegisteredClaims
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserSource is the subset of the identity store the token service needs.
type UserSource interface {
	ByID(ctx context.Context, id string) (models.User, error)
	ByUsername(ctx context.Context, username string) (models.User, error)
	ByEmail(ctx context.Context, email string) (models.User, error)
}

// TokenService verifies credentials and issues, validates and refreshes
// session tokens.
type TokenService struct {
	users       UserSource
	key         []byte
	accessTTL   time.Duration
	refreshTTL  time.Duration
	identifiers []string
}

// NewTokenService creates a TokenService. identifiers lists the user fields a
// caller may log in with ("username", "email").
func NewTokenService(users UserSource, secret string, accessTTL, refreshTTL time.Duration, identifiers []string) *TokenService {
	return &TokenService{
		users:       users,
		key:         []byte(secret),
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		identifiers: identifiers,
	}
}

// Login verifies the supplied credentials against the identity store and
// issues an access/refresh token pair. The identifier is matched against
// each configured login field in order; lookup misses and password
// mismatches are indistinguishable to the caller.
func (s *TokenService) Login(ctx context.Context, identifier, password string) (TokenPair, models.User, error) {
	var (
		user  models.User
		found bool
	)
	for _, field := range s.identifiers {
		var err error
		switch field {
		case "username":
			user, err = s.users.ByUsername(ctx, identifier)
		case "email":
			user, err = s.users.ByEmail(ctx, identifier)
		default:
			continue
		}
		if err == nil {
			found = true
			break
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return TokenPair{}, models.User{}, err
		}
	}
	if !found {
		return TokenPair{}, models.User{}, apperr.Unauthenticated("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return TokenPair{}, models.User{}, apperr.Unauthenticated("invalid credentials")
	}

	access, err := s.sign(user, useAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, models.User{}, err
	}
	refresh, err := s.sign(user, useRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, models.User{}, err
	}

	user.PasswordHash = ""
	return TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Verify parses and validates an access token.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != useAccess {
		return nil, apperr.Unauthenticated("not an access token")
	}
	return claims, nil
}

// Refresh validates a refresh token and issues a new access token carrying
// the same identity claims.
func (s *TokenService) Refresh(tokenStr string) (string, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return "", err
	}
	if claims.TokenUse != useRefresh {
		return "", apperr.Unauthenticated("not a refresh token")
	}
	return s.sign(models.User{ID: claims.UserID, Username: claims.Username}, useAccess, s.accessTTL)
}

func (s *TokenService) sign(user models.User, use string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *TokenService) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, apperr.Unauthenticated("invalid or expired token")
	}
	if !token.Valid {
		return nil, apperr.Unauthenticated("invalid token")
	}
	return claims, nil
}
