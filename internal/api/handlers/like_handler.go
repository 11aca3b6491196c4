package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isdelr/streamy-api/internal/auth"
	"github.com/isdelr/streamy-api/internal/resolver"
)

// LikeHandler handles HTTP requests for movie likes.
type LikeHandler struct {
	resolver *resolver.Resolver
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(res *resolver.Resolver) *LikeHandler {
	return &LikeHandler{resolver: res}
}

// List returns all like records.
func (h *LikeHandler) List(w http.ResponseWriter, r *http.Request) {
	likes, err := h.resolver.Likes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// Create records a like by the requester on a movie.
func (h *LikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFromContext(r.Context())
	result, err := h.resolver.CreateLike(r.Context(), ident, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// Remove deletes one like by the requester on a movie.
func (h *LikeHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFromContext(r.Context())
	result, err := h.resolver.RemoveLike(r.Context(), ident, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
