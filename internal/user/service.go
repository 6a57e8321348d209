package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skillcheck-ai/skillcheck-api/internal/auth"
	"github.com/skillcheck-ai/skillcheck-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	// SignUp registers a new candidate and returns a signed token.
	SignUp(ctx context.Context, dto SignUpDTO) (*UserResponse, string, error)
	// Login checks credentials and returns a signed token.
	Login(ctx context.Context, dto LoginDTO) (*UserResponse, string, error)
	// Get returns the profile for a user ID.
	Get(ctx context.Context, userID string) (*UserResponse, error)
	// LoginWithGoogle upserts a user from a verified Google profile and
	// returns a signed token.
	LoginWithGoogle(ctx context.Context, email, name, googleID string) (*UserResponse, string, error)
}

type service struct {
	repo        Repository
	adminEmails map[string]struct{}
	tokenTTL    time.Duration
}

func NewService(repo Repository, adminEmails []string, tokenTTL time.Duration) Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(email)] = struct{}{}
	}
	return &service{repo: repo, adminEmails: admins, tokenTTL: tokenTTL}
}

func (s *service) SignUp(ctx context.Context, dto SignUpDTO) (*UserResponse, string, error) {
	log := config.WithContext(ctx)

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if email == "" || len(dto.Password) < 8 {
		return nil, "", fmt.Errorf("%w: email and a password of at least 8 characters are required", ErrInvalidCredentials)
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := User{
		ID:           uuid.New(),
		Name:         dto.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         s.roleFor(email),
	}
	if err := s.repo.Create(&u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, "", err
	}

	token, err := auth.GenerateJWT(u.ID.String(), u.Email, u.Name, u.Role, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return s.toResponse(&u), token, nil
}

func (s *service) Login(ctx context.Context, dto LoginDTO) (*UserResponse, string, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	u, err := s.repo.FindByEmail(email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID.String(), u.Email, u.Name, u.Role, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return s.toResponse(u), token, nil
}

func (s *service) Get(_ context.Context, userID string) (*UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(u), nil
}

func (s *service) LoginWithGoogle(ctx context.Context, email, name, googleID string) (*UserResponse, string, error) {
	log := config.WithContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.FindByEmail(email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		u = &User{
			ID:       uuid.New(),
			Name:     name,
			Email:    email,
			GoogleID: googleID,
			Role:     s.roleFor(email),
		}
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Failed to create user from Google profile")
			return nil, "", err
		}
		log.WithField("user_id", u.ID).Info("User registered via Google")
	case err != nil:
		return nil, "", err
	default:
		if u.GoogleID != googleID || (name != "" && u.Name != name) {
			u.GoogleID = googleID
			if name != "" {
				u.Name = name
			}
			if err := s.repo.Update(u); err != nil {
				return nil, "", err
			}
		}
	}

	token, err := auth.GenerateJWT(u.ID.String(), u.Email, u.Name, u.Role, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return s.toResponse(u), token, nil
}

func (s *service) roleFor(email string) string {
	if _, ok := s.adminEmails[email]; ok {
		return auth.RoleAdmin
	}
	return auth.RoleCandidate
}

func (s *service) toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:      u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.Role == auth.RoleAdmin,
	}
}
