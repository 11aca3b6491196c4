package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/isdelr/streamy-api/internal/api/handlers"
	"github.com/isdelr/streamy-api/internal/auth"
	"github.com/isdelr/streamy-api/internal/resolver"
)

// NewRouter creates and configures a new Chi router. The auth middleware
// attaches a requester identity (anonymous when no bearer token is present)
// to every request; whether an operation needs one is the authorization
// policy's call, not the router's.
func NewRouter(res *resolver.Resolver, tokens *auth.TokenService) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(auth.Middleware(tokens, res.UserStore()))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(tokens)
	userHandler := handlers.NewUserHandler(res)
	movieHandler := handlers.NewMovieHandler(res)
	likeHandler := handlers.NewLikeHandler(res)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/verify", authHandler.Verify)
			r.Post("/refresh", authHandler.Refresh)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Register)
			r.Get("/", userHandler.List)
			r.Route("/me", func(r chi.Router) {
				r.Get("/", userHandler.GetMe)
				r.Put("/", userHandler.Update)
				r.Delete("/", userHandler.Delete)
				r.Put("/password", userHandler.ChangePassword)
			})
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", movieHandler.List)
			r.Post("/", movieHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", movieHandler.Update)
				r.Delete("/", movieHandler.Delete)
				r.Post("/like", likeHandler.Create)
				r.Delete("/like", likeHandler.Remove)
			})
		})

		r.Get("/likes", likeHandler.List)
	})

	return r
}
