package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/skillcheck-ai/skillcheck-api/internal/auth"
	"github.com/skillcheck-ai/skillcheck-api/internal/config"
)

type Handler struct {
	service  Service
	google   *GoogleAuthenticator
	tokenTTL time.Duration
}

func NewHandler(service Service, google *GoogleAuthenticator, tokenTTL time.Duration) *Handler {
	return &Handler{service: service, google: google, tokenTTL: tokenTTL}
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SignUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, token, err := h.service.SignUp(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			http.Error(w, "email already registered", http.StatusConflict)
		case errors.Is(err, ErrInvalidCredentials):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.WithError(err).Error("Sign up failed")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.setSessionCookie(w, token)
	config.JSON(w, http.StatusCreated, profile)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, token, err := h.service.Login(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Login failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	config.JSON(w, http.StatusOK, profile)
}

// GoogleLogin exchanges an OAuth authorization code for a session.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if h.google == nil {
		http.Error(w, "google sign-in is not configured", http.StatusNotImplemented)
		return
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Code == "" {
		http.Error(w, "authorization code required", http.StatusBadRequest)
		return
	}

	profile, err := h.google.Exchange(r.Context(), body.Code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		http.Error(w, "google sign-in failed", http.StatusUnauthorized)
		return
	}

	response, token, err := h.service.LoginWithGoogle(r.Context(), profile.Email, profile.Name, profile.Sub)
	if err != nil {
		log.WithError(err).Error("Google login failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, profile)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
