// Package router sets up all HTTP routes and middleware chains for the
// inkwell API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessions *session.Authority, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.LoadSession(sessions))

	r.Get("/health", public.Health)

	// Admin routes.
	r.Route("/admin", func(r chi.Router) {
		// Login is rate-limited per client IP to slow credential stuffing.
		loginLimiter := middleware.NewRateLimiter(10, time.Minute)
		r.With(loginLimiter.Middleware).Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		// Authenticated admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", admin.ListPosts)
				r.Post("/", admin.CreatePost)
				r.Put("/{id}", admin.UpdatePost)
				r.Delete("/{id}", admin.DeletePost)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.ListCategories)
				r.Post("/", admin.CreateCategory)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", admin.ListTags)
				r.Post("/", admin.CreateTag)
			})

			r.Get("/analytics", admin.Analytics)
		})
	})

	// Public read surface.
	r.Get("/", public.Home)
	r.Get("/posts/{slug}", public.Post)
	r.Get("/category/{slug}", public.Category)
	r.Get("/tag/{slug}", public.Tag)

	return r
}
