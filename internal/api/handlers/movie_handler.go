package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/streamy-api/internal/auth"
	"github.com/isdelr/streamy-api/internal/resolver"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	resolver *resolver.Resolver
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(res *resolver.Resolver) *MovieHandler {
	return &MovieHandler{resolver: res}
}

// List returns all movies, optionally narrowed by a search string.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	movies, err := h.resolver.Movies(r.Context(), search)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// Create handles movie submission.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload resolver.CreateMovieInput
	if !decode(w, r, &payload) {
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	movie, err := h.resolver.CreateMovie(r.Context(), ident, payload)
	if err != nil {
		log.Warn().Err(err).Str("user_id", ident.UserID()).Msg("Failed to create movie")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, movie)
}

// Update handles movie field updates by the posting user.
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload resolver.UpdateMovieInput
	if !decode(w, r, &payload) {
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	movie, err := h.resolver.UpdateMovie(r.Context(), ident, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// Delete handles movie deletion by the posting user.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFromContext(r.Context())
	movieID, err := h.resolver.DeleteMovie(r.Context(), ident, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"movieId": movieID})
}
