package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/streamy-api/internal/auth"
	"github.com/isdelr/streamy-api/internal/resolver"
)

// UserHandler handles HTTP requests for account management.
type UserHandler struct {
	resolver *resolver.Resolver
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(res *resolver.Resolver) *UserHandler {
	return &UserHandler{resolver: res}
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload resolver.RegisterInput
	if !decode(w, r, &payload) {
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	user, err := h.resolver.Register(r.Context(), ident, payload)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// GetMe returns the currently authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFromContext(r.Context())
	user, err := h.resolver.Me(r.Context(), ident)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// List returns all users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.resolver.Users(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Update handles updating the requester's profile name fields.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if !decode(w, r, &payload) {
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	user, err := h.resolver.UpdateAccount(r.Context(), ident, payload.FirstName, payload.LastName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ChangePassword handles changing the requester's password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OldPassword     string `json:"oldPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if !decode(w, r, &payload) {
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	user, err := h.resolver.ChangePassword(r.Context(), ident, payload.OldPassword, payload.NewPassword, payload.ConfirmPassword)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles the permanent deletion of the requester's account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Password string `json:"password"`
	}
	if !decode(w, r, &payload) {
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	user, err := h.resolver.DeleteAccount(r.Context(), ident, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("user_id", ident.UserID()).Msg("Failed to delete account")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
