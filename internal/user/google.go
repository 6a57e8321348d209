package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleProfile is the subset of the userinfo response we need.
type GoogleProfile struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleAuthenticator turns OAuth authorization codes into verified
// Google profiles.
type GoogleAuthenticator struct {
	config *oauth2.Config
}

// NewGoogleAuthenticator reads client credentials from the environment.
// Returns nil when Google sign-in is not configured.
func NewGoogleAuthenticator() *GoogleAuthenticator {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil
	}

	return &GoogleAuthenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// Exchange trades the authorization code for a token and fetches the
// user's profile with it.
func (g *GoogleAuthenticator) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	resp, err := g.config.Client(ctx, token).Get(userinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("userinfo response missing email")
	}
	return &profile, nil
}
