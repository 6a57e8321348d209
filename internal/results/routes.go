package results

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/latest", h.Latest)

	return r
}

// AdminRoutes exposes the ranking view; mount behind the admin middleware.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Rank)

	return r
}
