package results

import (
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

// Latest returns the calling user's most recent quiz result.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	latest, err := h.service.Latest(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNoResult) {
			http.Error(w, "no result found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load latest result")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, latest)
}

// Rank serves the admin ranking view. Query params: sort, dir, skill.
func (h *Handler) Rank(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	query := RankQuery{
		SortBy: SortByScore,
		Desc:   true,
		Skill:  r.URL.Query().Get("skill"),
	}
	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		query.SortBy = SortField(sortBy)
	}
	if dir := r.URL.Query().Get("dir"); dir != "" {
		query.Desc = dir == "desc"
	}

	view, err := h.service.Rank(r.Context(), query)
	if err != nil {
		if errors.Is(err, ErrInvalidSortField) {
			http.Error(w, "invalid sort field", http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to rank results")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, view)
}
