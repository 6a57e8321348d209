package user

import (
	"github.com/go-chi/chi/v5"
)

// Routes are the public authentication endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.SignUp)
	r.Post("/login", h.Login)
	r.Post("/google", h.GoogleLogin)

	return r
}

// ProfileRoutes require an authenticated session.
func ProfileRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.Me)

	return r
}
