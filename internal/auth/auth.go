// Package auth turns a redirect code or identity token into a verified
// email address. The identity-provider protocol itself is kept behind this
// boundary: callers only ever see an email or a failure.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GuestEmail is the placeholder identity for sessions without provider
// authentication.
const GuestEmail = "guest@example.com"

// ErrAuthFailed indicates a bad or expired code/token. Recoverable: the user
// is returned to the sign-in prompt.
type ErrAuthFailed struct {
	Reason string
}

func (e *ErrAuthFailed) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// IdentityClaims are the verified claims of an identity token.
type IdentityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator exchanges proof of identity for a verified email.
type Authenticator interface {
	// AuthorizationURL returns the provider URL to start the redirect flow.
	AuthorizationURL() string
	// ExchangeCode exchanges a one-time redirect code for a verified email.
	ExchangeCode(ctx context.Context, code string) (string, error)
	// VerifyIdentityToken verifies a client-obtained identity token and
	// returns its claims.
	VerifyIdentityToken(token string) (*IdentityClaims, error)
}

// Config holds provider settings for the OAuth authenticator.
type Config struct {
	ClientID         string
	ClientSecret     string
	AuthEndpoint     string
	TokenEndpoint    string
	UserInfoEndpoint string
	RedirectURI      string
	// TokenSecret verifies HS256 identity tokens in the token-based flow.
	TokenSecret string
}

// OAuthAuthenticator implements Authenticator against an OAuth-style
// provider: authorization redirect, code-for-token exchange, and a userinfo
// lookup for the email.
type OAuthAuthenticator struct {
	config Config
	http   *http.Client
}

// New creates an authenticator over the given provider config.
func New(config Config) *OAuthAuthenticator {
	return &OAuthAuthenticator{
		config: config,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// AuthorizationURL returns the provider URL the client is sent to.
func (a *OAuthAuthenticator) AuthorizationURL() string {
	q := url.Values{}
	q.Set("client_id", a.config.ClientID)
	q.Set("redirect_uri", a.config.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	return a.config.AuthEndpoint + "?" + q.Encode()
}

// ExchangeCode exchanges the one-time code for an access token, then reads
// the verified email from the userinfo endpoint.
func (a *OAuthAuthenticator) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", &ErrAuthFailed{Reason: "empty authorization code"}
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", a.config.ClientID)
	form.Set("client_secret", a.config.ClientSecret)
	form.Set("redirect_uri", a.config.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ErrAuthFailed{Reason: fmt.Sprintf("token endpoint returned %d", resp.StatusCode)}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", &ErrAuthFailed{Reason: "no access token in response"}
	}

	return a.fetchEmail(ctx, tokenResp.AccessToken)
}

// fetchEmail reads the verified email from the userinfo endpoint.
func (a *OAuthAuthenticator) fetchEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.UserInfoEndpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("userinfo lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ErrAuthFailed{Reason: fmt.Sprintf("userinfo endpoint returned %d", resp.StatusCode)}
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	if info.Email == "" {
		return "", &ErrAuthFailed{Reason: "provider returned no email"}
	}

	return info.Email, nil
}

// VerifyIdentityToken validates an HS256 identity token and returns its
// claims.
func (a *OAuthAuthenticator) VerifyIdentityToken(tokenString string) (*IdentityClaims, error) {
	if tokenString == "" {
		return nil, &ErrAuthFailed{Reason: "token string is empty"}
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.config.TokenSecret), nil
	})
	if err != nil {
		return nil, &ErrAuthFailed{Reason: err.Error()}
	}
	if !token.Valid {
		return nil, &ErrAuthFailed{Reason: "token is not valid"}
	}
	if claims.Email == "" {
		return nil, &ErrAuthFailed{Reason: "token carries no email claim"}
	}

	return claims, nil
}
