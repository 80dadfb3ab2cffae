package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the public route tree. Everything under /api except
// the auth endpoints sits behind the bearer-token guard.
func NewRouter(h *Handler, tokens tokenValidator, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator(tokens))

			r.Route("/secrets", func(r chi.Router) {
				r.Get("/", h.listSecrets)
				r.Post("/", h.createSecret)
				r.Get("/{id}", h.getSecret)
				r.Put("/{id}", h.updateSecret)
				r.Delete("/{id}", h.deleteSecret)
			})

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", h.getProfile)
				r.Post("/change-password", h.changePassword)
			})
		})
	})

	return r
}
