package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/streamy-api/internal/auth"
)

// AuthHandler handles login, token verification and token refresh.
type AuthHandler struct {
	tokens *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// LoginPayload defines the structure for login requests. Identifier is a
// username or email depending on the configured login fields.
type LoginPayload struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login handles credential verification and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if !decode(w, r, &payload) {
		return
	}

	pair, user, err := h.tokens.Login(r.Context(), payload.Identifier, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("identifier", payload.Identifier).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         user,
	})
}

// Verify reports whether a token is a valid access token, with its claims.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token string `json:"token"`
	}
	if !decode(w, r, &payload) {
		return
	}

	claims, err := h.tokens.Verify(payload.Token)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"valid": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "claims": claims})
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decode(w, r, &payload) {
		return
	}

	access, err := h.tokens.Refresh(payload.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": access})
}
