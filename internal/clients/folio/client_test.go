package folio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/devnarayan/folio/internal/models"
)

// memCreds is an in-memory CredentialStore for tests.
type memCreds struct {
	mu      sync.Mutex
	access  string
	refresh string
	user    *models.User
	kv      map[string]string
	cleared int
}

func newMemCreds(access, refresh string) *memCreds {
	return &memCreds{access: access, refresh: refresh, kv: map[string]string{}}
}

func (m *memCreds) AccessToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, nil
}

func (m *memCreds) RefreshToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh, nil
}

func (m *memCreds) SaveTokens(_ context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

func (m *memCreds) SaveAccessToken(_ context.Context, access string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	return nil
}

func (m *memCreds) User(context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, nil
}

func (m *memCreds) SaveUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	return nil
}

func (m *memCreds) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh, m.user = "", "", nil
	m.cleared++
	return nil
}

func (m *memCreds) GetKV(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.kv[key], nil
}

func (m *memCreds) SetKV(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	return nil
}

func (m *memCreds) DeleteKV(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.kv, key)
	return nil
}

func (m *memCreds) Close() error { return nil }

func (m *memCreds) clearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

func envelope(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("marshal envelope data: %v", err)
		}
		raw = b
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.Envelope{
		Success:    status < 400,
		StatusCode: status,
		Message:    http.StatusText(status),
		Data:       raw,
	})
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		envelope(t, w, http.StatusOK, []models.Portfolio{})
	}))
	defer srv.Close()

	client := NewClient(newMemCreds("token-a", "refresh-a"), WithBaseURL(srv.URL))
	if _, err := client.ListPortfolios(context.Background()); err != nil {
		t.Fatalf("ListPortfolios returned error: %v", err)
	}

	if gotAuth != "Bearer token-a" {
		t.Errorf("Authorization = %q, want Bearer token-a", gotAuth)
	}
}

func TestDo_RefreshAndRetryOnUnauthorized(t *testing.T) {
	creds := newMemCreds("stale", "refresh-a")
	var refreshBearer string
	var retryBearer string
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh-token":
			refreshBearer = r.Header.Get("Authorization")
			envelope(t, w, http.StatusOK, map[string]string{"accessToken": "fresh"})
		case "/portfolios":
			calls++
			if r.Header.Get("Authorization") == "Bearer stale" {
				envelope(t, w, http.StatusUnauthorized, nil)
				return
			}
			retryBearer = r.Header.Get("Authorization")
			envelope(t, w, http.StatusOK, []models.Portfolio{{ID: "p1", Name: "Growth"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(creds, WithBaseURL(srv.URL))
	portfolios, err := client.ListPortfolios(context.Background())
	if err != nil {
		t.Fatalf("ListPortfolios returned error: %v", err)
	}

	if len(portfolios) != 1 || portfolios[0].ID != "p1" {
		t.Errorf("unexpected portfolios %+v", portfolios)
	}
	if calls != 2 {
		t.Errorf("endpoint called %d times, want 2 (original + retry)", calls)
	}
	// The refresh exchange authenticates with the refresh token.
	if refreshBearer != "Bearer refresh-a" {
		t.Errorf("refresh Authorization = %q, want Bearer refresh-a", refreshBearer)
	}
	if retryBearer != "Bearer fresh" {
		t.Errorf("retry Authorization = %q, want Bearer fresh", retryBearer)
	}
	if access, _ := creds.AccessToken(context.Background()); access != "fresh" {
		t.Errorf("stored access token = %q, want fresh", access)
	}
	// Refresh token was not rotated, so it must survive.
	if refresh, _ := creds.RefreshToken(context.Background()); refresh != "refresh-a" {
		t.Errorf("stored refresh token = %q, want refresh-a", refresh)
	}
}

func TestDo_RotatedRefreshTokenPersisted(t *testing.T) {
	creds := newMemCreds("stale", "refresh-a")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh-token":
			envelope(t, w, http.StatusOK, map[string]string{"accessToken": "fresh", "refreshToken": "refresh-b"})
		default:
			if r.Header.Get("Authorization") == "Bearer stale" {
				envelope(t, w, http.StatusUnauthorized, nil)
				return
			}
			envelope(t, w, http.StatusOK, []models.Portfolio{})
		}
	}))
	defer srv.Close()

	client := NewClient(creds, WithBaseURL(srv.URL))
	if _, err := client.ListPortfolios(context.Background()); err != nil {
		t.Fatalf("ListPortfolios returned error: %v", err)
	}

	if refresh, _ := creds.RefreshToken(context.Background()); refresh != "refresh-b" {
		t.Errorf("stored refresh token = %q, want refresh-b", refresh)
	}
}

func TestDo_SkipsRefreshWhenTokenAlreadyRotated(t *testing.T) {
	// Simulates a second in-flight request hitting a 401 after another
	// request already completed the refresh: the stored token no longer
	// matches the rejected one, so no extra exchange happens and the retry
	// just picks up the rotated token.
	creds := newMemCreds("stale", "refresh-a")
	refreshCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh-token":
			refreshCalls++
			envelope(t, w, http.StatusOK, map[string]string{"accessToken": "fresh"})
		case "/portfolios":
			if r.Header.Get("Authorization") == "Bearer stale" {
				// Another request's refresh lands while this one is in flight.
				creds.SaveAccessToken(r.Context(), "fresh")
				envelope(t, w, http.StatusUnauthorized, nil)
				return
			}
			envelope(t, w, http.StatusOK, []models.Portfolio{{ID: "p1", Name: "Growth"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(creds, WithBaseURL(srv.URL))
	portfolios, err := client.ListPortfolios(context.Background())
	if err != nil {
		t.Fatalf("ListPortfolios returned error: %v", err)
	}

	if len(portfolios) != 1 || portfolios[0].ID != "p1" {
		t.Errorf("unexpected portfolios %+v", portfolios)
	}
	if refreshCalls != 0 {
		t.Errorf("refresh endpoint called %d times, want 0", refreshCalls)
	}
}

func TestDo_SecondUnauthorizedInvalidatesSession(t *testing.T) {
	// The refresh succeeds but the server keeps rejecting the new token.
	// The client must invalidate after exactly one retry, never loop.
	creds := newMemCreds("stale", "refresh-a")
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh-token":
			envelope(t, w, http.StatusOK, map[string]string{"accessToken": "fresh"})
		default:
			calls++
			envelope(t, w, http.StatusUnauthorized, nil)
		}
	}))
	defer srv.Close()

	client := NewClient(creds, WithBaseURL(srv.URL))
	invalidated := false
	client.OnSessionInvalid(func() { invalidated = true })

	_, err := client.ListPortfolios(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401 APIError, got %v", err)
	}

	if calls != 2 {
		t.Errorf("endpoint called %d times, want exactly 2", calls)
	}
	if !invalidated {
		t.Error("session-invalid callback not fired")
	}
	if access, _ := creds.AccessToken(context.Background()); access != "" {
		t.Errorf("access token not cleared, got %q", access)
	}
}

func TestDo_RefreshFailureClearsCredentials(t *testing.T) {
	creds := newMemCreds("stale", "bad-refresh")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh-token":
			envelope(t, w, http.StatusUnauthorized, nil)
		default:
			envelope(t, w, http.StatusUnauthorized, nil)
		}
	}))
	defer srv.Close()

	client := NewClient(creds, WithBaseURL(srv.URL))
	invalidated := false
	client.OnSessionInvalid(func() { invalidated = true })

	_, err := client.ListPortfolios(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401 APIError, got %v", err)
	}

	if !invalidated {
		t.Error("session-invalid callback not fired")
	}
	if refresh, _ := creds.RefreshToken(context.Background()); refresh != "" {
		t.Errorf("refresh token not cleared, got %q", refresh)
	}
}

func TestDo_MissingRefreshTokenFailsWithoutNetwork(t *testing.T) {
	creds := newMemCreds("stale", "")
	refreshCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh-token" {
			refreshCalled = true
		}
		envelope(t, w, http.StatusUnauthorized, nil)
	}))
	defer srv.Close()

	client := NewClient(creds, WithBaseURL(srv.URL))
	_, err := client.ListPortfolios(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if refreshCalled {
		t.Error("refresh endpoint called despite missing refresh token")
	}
	if creds.clearCount() == 0 {
		t.Error("credentials not cleared")
	}
}

func TestLogin_UnauthorizedDoesNotTriggerRefresh(t *testing.T) {
	// A 401 from the login endpoint is a credential failure, not an
	// expired session: no refresh attempt, no storage clear.
	creds := newMemCreds("", "")
	refreshCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh-token" {
			refreshCalled = true
		}
		envelope(t, w, http.StatusUnauthorized, nil)
	}))
	defer srv.Close()

	client := NewClient(creds, WithBaseURL(srv.URL))
	_, err := client.Login(context.Background(), models.LoginRequest{Email: "a@b.co", Password: "x"})
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if refreshCalled {
		t.Error("login 401 must not trigger the refresh interceptor")
	}
	if creds.clearCount() != 0 {
		t.Error("login 401 must not clear credentials")
	}
}

func TestDo_APIErrorCarriesFieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.Envelope{
			Success:    false,
			StatusCode: http.StatusBadRequest,
			Message:    "Validation failed",
			Errors: []models.FieldError{
				{Field: "name", Message: "name is required"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(newMemCreds("tok", "ref"), WithBaseURL(srv.URL))
	_, err := client.CreatePortfolio(context.Background(), models.CreatePortfolioRequest{})

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "Validation failed" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if len(apiErr.Fields) != 1 || apiErr.Fields[0].Field != "name" {
		t.Errorf("Fields = %+v", apiErr.Fields)
	}
}

func TestSend_ToleratesNonEnvelopeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client := NewClient(newMemCreds("tok", "ref"), WithBaseURL(srv.URL))
	_, err := client.ListPortfolios(context.Background())

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", apiErr.StatusCode)
	}
	if apiErr.Message != "upstream unavailable" {
		t.Errorf("Message = %q, want raw body text", apiErr.Message)
	}
}

func TestDo_TransportErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately: connections will be refused

	client := NewClient(newMemCreds("tok", "ref"), WithBaseURL(srv.URL))
	_, err := client.ListPortfolios(context.Background())

	if _, ok := err.(*TransportError); !ok {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if IsUnauthorized(err) {
		t.Error("transport failure must not look like a 401")
	}
}
