package folio

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devnarayan/folio/internal/models"
)

// Login authenticates with email and password. It is an unauthenticated
// call: a 401 here is a credential failure and never triggers the refresh
// interceptor.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.public(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// registerResponse tolerates both observed server behaviors: some revisions
// return only the created user, others also include a token pair.
type registerResponse struct {
	User   *models.User       `json:"user"`
	Tokens *models.AuthTokens `json:"tokens,omitempty"`
}

// Register creates an account and returns the created user. Registration
// never authenticates: any tokens the server includes are discarded, and
// the caller logs in explicitly.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var resp registerResponse
	if err := c.public(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("register response missing user")
	}
	return resp.User, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// CurrentUser fetches the authenticated user from GET /auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AccessTokenExpiry decodes the stored access token's exp claim. The token
// is parsed without signature verification; the client holds no signing
// secret, and expiry is advisory (the server is still the authority).
func (c *Client) AccessTokenExpiry(ctx context.Context) (time.Time, error) {
	token, err := c.creds.AccessToken(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if token == "" {
		return time.Time{}, fmt.Errorf("no access token stored")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("access token has no expiry claim")
	}
	return exp.Time, nil
}
