package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, ws *WSHandler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Start)
	r.Get("/", h.Get)
	r.Post("/answer", h.Answer)
	r.Delete("/", h.Abandon)
	r.Get("/ws", ws.ServeWS)

	return r
}
