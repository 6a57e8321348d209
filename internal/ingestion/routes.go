package ingestion

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Upload)
	r.Get("/", h.Get)
	r.Get("/file", h.Download)

	return r
}
