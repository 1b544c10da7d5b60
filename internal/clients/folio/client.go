// Package folio provides the HTTP gateway to the Folio backend API.
// Every backend call goes through this client: it attaches the stored
// bearer credential and performs the one-shot refresh-and-retry protocol
// when an access token is rejected.
package folio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/interfaces"
	"github.com/devnarayan/folio/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:3000/api/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second

	// maxAuthRetries bounds the refresh-and-retry cycle: a rejected access
	// token buys exactly one refresh attempt, never a loop.
	maxAuthRetries = 1
)

// Client implements the Gateway interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	creds      interfaces.CredentialStore

	// refreshMu serializes refresh exchanges. With the stale-token check in
	// refreshAccessToken, concurrent 401s result in one exchange: late
	// waiters find the token already rotated and skip theirs.
	refreshMu sync.Mutex

	cbMu             sync.Mutex
	onSessionInvalid func()
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new gateway client backed by the given credential store
func NewClient(creds interfaces.CredentialStore, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is an error response received from the backend: the server
// answered, and the envelope carried a failure.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Fields     []models.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Folio API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// TransportError is a network-level failure: no response was received.
// It is a distinct kind from APIError so callers can tell "server said no"
// apart from "server unreachable".
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Folio API unreachable: %v (endpoint: %s)", e.Err, e.Endpoint)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// OnSessionInvalid registers the callback fired after a failed refresh
// cycle has cleared the stored credentials.
func (c *Client) OnSessionInvalid(fn func()) {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	c.onSessionInvalid = fn
}

// send performs one raw rate-limited request attempt. bearer == "" sends no
// Authorization header. The returned envelope is non-nil whenever a response
// was received, even for error statuses.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, bearer string) (*models.Envelope, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("Folio API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &TransportError{Endpoint: path, Err: err}
	}

	env := &models.Envelope{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			// Non-envelope body (proxy error page, plain text). Keep the
			// status code and surface the raw text as the message.
			env = &models.Envelope{
				Success:    resp.StatusCode < 400,
				StatusCode: resp.StatusCode,
				Message:    strings.TrimSpace(string(raw)),
			}
		}
	} else {
		env.Success = resp.StatusCode < 400
		env.StatusCode = resp.StatusCode
	}

	return env, resp.StatusCode, nil
}

// apiError builds the typed error for a failed response.
func apiError(env *models.Envelope, status int, endpoint string) *APIError {
	msg := env.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{
		StatusCode: status,
		Message:    msg,
		Endpoint:   endpoint,
		Fields:     env.Errors,
	}
}

// do drives an authenticated request through the refresh interceptor. The
// attempt counter is explicit and local to this call: on the first 401 the
// client refreshes and retries once; a second 401 invalidates the session.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	for attempt := 0; ; attempt++ {
		token, err := c.creds.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to read access token: %w", err)
		}

		env, status, err := c.send(ctx, method, path, query, body, token)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized {
			if attempt >= maxAuthRetries {
				c.logger.Warn().Str("path", path).Msg("Request rejected after token refresh")
				c.invalidateSession(ctx)
				return apiError(env, status, path)
			}
			if rerr := c.refreshAccessToken(ctx, token); rerr != nil {
				c.invalidateSession(ctx)
				return rerr
			}
			continue
		}

		if status >= 400 {
			return apiError(env, status, path)
		}

		if err := env.DecodeData(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
		return nil
	}
}

// public drives an unauthenticated request (login, register, refresh).
// These bypass the interceptor: a 401 here means bad credentials, not an
// expired session.
func (c *Client) public(ctx context.Context, method, path string, body, out any) error {
	env, status, err := c.send(ctx, method, path, nil, body, "")
	if err != nil {
		return err
	}
	if status >= 400 {
		return apiError(env, status, path)
	}
	if err := env.DecodeData(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// refreshTokenResponse is the payload of POST /auth/refresh-token. The
// server always issues a new access token and may rotate the refresh token.
type refreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token. stale is the access token the caller had rejected: if the store
// holds a different token by the time the lock is acquired, another caller
// already refreshed and the exchange is skipped. The exchange talks to the
// refresh endpoint directly, outside the interceptor, so a 401 from it
// cannot recurse.
func (c *Client) refreshAccessToken(ctx context.Context, stale string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current, err := c.creds.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to read access token: %w", err)
	}
	if current != "" && current != stale {
		c.logger.Debug().Msg("Access token already refreshed by another request")
		return nil
	}

	refresh, err := c.creds.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to read refresh token: %w", err)
	}
	if refresh == "" {
		return &APIError{
			StatusCode: http.StatusUnauthorized,
			Message:    "no refresh token available",
			Endpoint:   "/auth/refresh-token",
		}
	}

	env, status, err := c.send(ctx, http.MethodPost, "/auth/refresh-token", nil, nil, refresh)
	if err != nil {
		return err
	}
	if status >= 400 {
		return apiError(env, status, "/auth/refresh-token")
	}

	var tokens refreshTokenResponse
	if err := env.DecodeData(&tokens); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if tokens.AccessToken == "" {
		return &APIError{
			StatusCode: status,
			Message:    "refresh response missing access token",
			Endpoint:   "/auth/refresh-token",
		}
	}

	if tokens.RefreshToken != "" {
		err = c.creds.SaveTokens(ctx, tokens.AccessToken, tokens.RefreshToken)
	} else {
		err = c.creds.SaveAccessToken(ctx, tokens.AccessToken)
	}
	if err != nil {
		return fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}

	c.logger.Debug().Msg("Access token refreshed")
	return nil
}

// invalidateSession clears stored credentials and signals listeners that
// re-authentication is required.
func (c *Client) invalidateSession(ctx context.Context) {
	if err := c.creds.Clear(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to clear credentials")
	}

	c.cbMu.Lock()
	fn := c.onSessionInvalid
	c.cbMu.Unlock()
	if fn != nil {
		fn()
	}
}

// Ensure Client implements Gateway
var _ interfaces.Gateway = (*Client)(nil)
