package interfaces

import (
	"context"

	"github.com/devnarayan/folio/internal/models"
)

// CredentialStore is the durable client-side storage shared by the gateway
// and the session manager: the token pair, a serialized user snapshot, and
// small key-value state for the CLI. Absence of either token means "no
// session". Writes are last-write-wins; there is no cross-writer
// coordination.
type CredentialStore interface {
	// AccessToken returns the stored access token, or "" when absent.
	AccessToken(ctx context.Context) (string, error)

	// RefreshToken returns the stored refresh token, or "" when absent.
	RefreshToken(ctx context.Context) (string, error)

	// SaveTokens persists both tokens.
	SaveTokens(ctx context.Context, access, refresh string) error

	// SaveAccessToken replaces only the access token (refresh rotation may
	// leave the refresh token untouched).
	SaveAccessToken(ctx context.Context, access string) error

	// User returns the cached user snapshot, or nil when absent.
	User(ctx context.Context) (*models.User, error)

	// SaveUser persists the user snapshot.
	SaveUser(ctx context.Context, user *models.User) error

	// Clear removes both tokens and the user snapshot.
	Clear(ctx context.Context) error

	// GetKV and SetKV manage small client-side state (selected portfolio,
	// server overrides). GetKV returns "" for missing keys.
	GetKV(ctx context.Context, key string) (string, error)
	SetKV(ctx context.Context, key, value string) error
	DeleteKV(ctx context.Context, key string) error

	// Close releases the underlying store.
	Close() error
}
