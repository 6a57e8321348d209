package ingestion

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

// Upload accepts a multipart resume upload, runs the ingestion pipeline, and
// returns the extracted resume data.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+4096)
	file, header, err := r.FormFile("resume")
	if err != nil {
		log.WithError(err).Warn("Invalid resume upload")
		http.Error(w, "resume file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := h.service.Ingest(r.Context(), claims.UserID, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, ErrIngestionFailed):
			http.Error(w, "could not read the uploaded document", http.StatusUnprocessableEntity)
		case errors.Is(err, ErrAnalysisFailed):
			http.Error(w, "resume analysis failed", http.StatusBadGateway)
		default:
			log.WithError(err).Error("Failed to ingest resume")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusCreated, data)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	data, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNoResume) {
			http.Error(w, "no resume on record", http.StatusNotFound)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, data)
}

// Download streams back the originally uploaded document.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	raw, err := h.service.File(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNoResume) {
			http.Error(w, "no resume on record", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load stored resume")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	_, _ = w.Write(raw)
}
