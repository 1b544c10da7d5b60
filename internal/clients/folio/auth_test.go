package folio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devnarayan/folio/internal/models"
)

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAccessTokenExpiry(t *testing.T) {
	expiry := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	creds := newMemCreds(signedToken(t, expiry), "refresh")

	client := NewClient(creds)
	got, err := client.AccessTokenExpiry(context.Background())
	if err != nil {
		t.Fatalf("AccessTokenExpiry returned error: %v", err)
	}
	if !got.Equal(expiry) {
		t.Errorf("expiry = %v, want %v", got, expiry)
	}
}

func TestAccessTokenExpiry_NoToken(t *testing.T) {
	client := NewClient(newMemCreds("", ""))
	if _, err := client.AccessTokenExpiry(context.Background()); err == nil {
		t.Error("expected error with no stored token")
	}
}

func TestAccessTokenExpiry_MalformedToken(t *testing.T) {
	client := NewClient(newMemCreds("not-a-jwt", "refresh"))
	if _, err := client.AccessTokenExpiry(context.Background()); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestRegister_DiscardsIssuedTokens(t *testing.T) {
	// Some server revisions hand out a token pair at registration. The
	// client must ignore it: registering is not logging in.
	creds := newMemCreds("", "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		envelope(t, w, http.StatusCreated, map[string]any{
			"user": models.User{ID: "u1", Email: "new@example.com"},
			"tokens": models.AuthTokens{
				AccessToken:  "unwanted-access",
				RefreshToken: "unwanted-refresh",
			},
		})
	}))
	defer srv.Close()

	client := NewClient(creds, WithBaseURL(srv.URL))
	user, err := client.Register(context.Background(), models.RegisterRequest{
		Email: "new@example.com", Password: "Passw0rd!", FirstName: "New", LastName: "User",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if user.ID != "u1" {
		t.Errorf("user ID = %q, want u1", user.ID)
	}
	if access, _ := creds.AccessToken(context.Background()); access != "" {
		t.Errorf("register stored an access token: %q", access)
	}
	if refresh, _ := creds.RefreshToken(context.Background()); refresh != "" {
		t.Errorf("register stored a refresh token: %q", refresh)
	}
}

func TestRegister_MissingUserIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(t, w, http.StatusCreated, map[string]any{})
	}))
	defer srv.Close()

	client := NewClient(newMemCreds("", ""), WithBaseURL(srv.URL))
	if _, err := client.Register(context.Background(), models.RegisterRequest{}); err == nil {
		t.Error("expected error when register response lacks a user")
	}
}
