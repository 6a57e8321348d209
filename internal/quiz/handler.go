package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skillcheck-ai/skillcheck-api/internal/auth"
	"github.com/skillcheck-ai/skillcheck-api/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Start begins a quiz for the authenticated user. Starting while a quiz
// is already running returns the running session unchanged.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	userName := claims.Name
	if userName == "" {
		userName = claims.Email
	}
	snap, err := h.service.Start(r.Context(), claims.UserID, userName)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingPrerequisite):
			http.Error(w, "upload a resume before starting a quiz", http.StatusPreconditionFailed)
		case errors.Is(err, ErrGenerationFailed):
			http.Error(w, "quiz generation failed", http.StatusBadGateway)
		default:
			log.WithError(err).Error("Failed to start quiz")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusCreated, snap)
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := h.service.Answer(r.Context(), claims.UserID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSession):
			http.Error(w, "no quiz in progress", http.StatusNotFound)
		case errors.Is(err, ErrQuizFinished):
			http.Error(w, "quiz already finished", http.StatusConflict)
		case errors.Is(err, ErrEvaluationFailed):
			http.Error(w, "answer evaluation failed", http.StatusBadGateway)
		default:
			log.WithError(err).Error("Failed to submit answer")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, snap)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	snap, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			http.Error(w, "no quiz in progress", http.StatusNotFound)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, snap)
}

// Abandon drops the session without recording a result.
func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.Abandon(r.Context(), claims.UserID); err != nil {
		if errors.Is(err, ErrNoSession) {
			http.Error(w, "no quiz in progress", http.StatusNotFound)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
