package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skillcheck-ai/skillcheck-api/internal/auth"
)

const testSecret = "a-long-and-sufficiently-random-test-secret"
const testUserID = "user-123"
const testEmail = "candidate@example.com"

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Init() should panic when JWT_SECRET is empty")
			}
		}()

		auth.Init()
	})

	t.Run("ValidSecret", func(t *testing.T) {
		os.Setenv("JWT_SECRET", testSecret)
		auth.Init()
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testEmail, "Test User", auth.RoleAdmin, 5*time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		claims, err := auth.ValidateJWT(tokenStr)
		if err != nil {
			t.Fatalf("ValidateJWT failed unexpectedly: %v", err)
		}

		if claims.UserID != testUserID {
			t.Errorf("wrong UserID: want %s, got %s", testUserID, claims.UserID)
		}
		if claims.Email != testEmail {
			t.Errorf("wrong Email: want %s, got %s", testEmail, claims.Email)
		}
		if claims.Role != auth.RoleAdmin {
			t.Errorf("wrong Role: want %s, got %s", auth.RoleAdmin, claims.Role)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testEmail, "Test User", auth.RoleCandidate, -time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		_, err = auth.ValidateJWT(tokenStr)
		if err == nil {
			t.Fatal("ValidateJWT should fail for an expired token")
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("want %v, got %v", jwt.ErrTokenExpired, err)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		if _, err := auth.ValidateJWT("not.a.token"); err == nil {
			t.Fatal("ValidateJWT should fail for a malformed token")
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.GetUserClaimsFromContext(r.Context())
		if err != nil {
			t.Errorf("claims missing from context: %v", err)
		}
		if claims.UserID != testUserID {
			t.Errorf("wrong UserID in context: %s", claims.UserID)
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("CookieToken", func(t *testing.T) {
		tokenStr, _ := auth.GenerateJWT(testUserID, testEmail, "Test User", auth.RoleCandidate, time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tokenStr})
		rec := httptest.NewRecorder()

		auth.AuthMiddleware(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("BearerToken", func(t *testing.T) {
		tokenStr, _ := auth.GenerateJWT(testUserID, testEmail, "Test User", auth.RoleCandidate, time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()

		auth.AuthMiddleware(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("MissingToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		auth.AuthMiddleware(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("AdminOnly", func(t *testing.T) {
		tokenStr, _ := auth.GenerateJWT(testUserID, testEmail, "Test User", auth.RoleCandidate, time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tokenStr})
		rec := httptest.NewRecorder()

		handler := auth.AuthMiddleware(auth.AdminMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for candidate role, got %d", rec.Code)
		}
	})
}
