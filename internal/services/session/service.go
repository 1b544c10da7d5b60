// Package session manages the authenticated-user lifecycle: login,
// registration, logout, startup restore, and profile maintenance.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/interfaces"
	"github.com/devnarayan/folio/internal/models"
)

// Service implements SessionService. State transitions:
// anonymous -> authenticating -> authenticated -> anonymous, with
// restoring as a transient startup state.
type Service struct {
	gateway interfaces.Gateway
	creds   interfaces.CredentialStore
	logger  *common.Logger

	mu    sync.RWMutex
	state interfaces.SessionState
	user  *models.User
}

// NewService creates a session service and hooks the gateway's
// session-invalid signal so a failed refresh cycle forces anonymous state
// app-wide.
func NewService(gateway interfaces.Gateway, creds interfaces.CredentialStore, logger *common.Logger) *Service {
	s := &Service{
		gateway: gateway,
		creds:   creds,
		logger:  logger,
		state:   interfaces.SessionAnonymous,
	}
	gateway.OnSessionInvalid(s.handleSessionInvalid)
	return s
}

// handleSessionInvalid resets in-memory state after the gateway has already
// cleared storage.
func (s *Service) handleSessionInvalid() {
	s.mu.Lock()
	s.state = interfaces.SessionAnonymous
	s.user = nil
	s.mu.Unlock()
	s.logger.Info().Msg("Session invalidated, re-authentication required")
}

func (s *Service) setState(state interfaces.SessionState, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}

// Restore rebuilds a session from stored tokens at startup. With no stored
// token pair it settles to anonymous immediately and issues no network call.
// Any failure to fetch the current user clears storage and ends anonymous.
func (s *Service) Restore(ctx context.Context) error {
	access, err := s.creds.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stored tokens: %w", err)
	}
	refresh, err := s.creds.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stored tokens: %w", err)
	}

	if access == "" || refresh == "" {
		s.setState(interfaces.SessionAnonymous, nil)
		s.logger.Debug().Msg("No stored session")
		return nil
	}

	s.setState(interfaces.SessionRestoring, nil)

	user, err := s.gateway.CurrentUser(ctx)
	if err != nil || user == nil || user.ID == "" {
		// Invalid or expired session, or a response with no usable user
		// record. The gateway may already have cleared storage on a failed
		// refresh; clear again to be certain.
		if cerr := s.creds.Clear(ctx); cerr != nil {
			s.logger.Warn().Err(cerr).Msg("Failed to clear stale credentials")
		}
		s.setState(interfaces.SessionAnonymous, nil)
		s.logger.Info().Err(err).Msg("Stored session is no longer valid")
		return nil
	}

	if err := s.creds.SaveUser(ctx, user); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache user snapshot")
	}
	s.setState(interfaces.SessionAuthenticated, user)
	s.logger.Info().Str("email", user.Email).Msg("Session restored")
	return nil
}

// Login authenticates and persists the session. A response missing the user
// record or either token is treated as a failure: no state changes, no
// partial token is persisted.
func (s *Service) Login(ctx context.Context, email, password string) error {
	if err := models.ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	s.setState(interfaces.SessionAuthenticating, nil)

	resp, err := s.gateway.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.setState(interfaces.SessionAnonymous, nil)
		return err
	}

	if resp.User == nil || resp.User.ID == "" {
		s.setState(interfaces.SessionAnonymous, nil)
		return fmt.Errorf("login response missing user")
	}
	if !resp.Tokens.Complete() {
		s.setState(interfaces.SessionAnonymous, nil)
		return fmt.Errorf("login response missing tokens")
	}

	if err := s.creds.SaveTokens(ctx, resp.Tokens.AccessToken, resp.Tokens.RefreshToken); err != nil {
		s.setState(interfaces.SessionAnonymous, nil)
		return fmt.Errorf("failed to persist tokens: %w", err)
	}
	if err := s.creds.SaveUser(ctx, resp.User); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache user snapshot")
	}

	s.setState(interfaces.SessionAuthenticated, resp.User)
	s.logger.Info().Str("email", resp.User.Email).Msg("Logged in")
	return nil
}

// Register creates an account but does not authenticate it. The caller is
// expected to log in explicitly afterwards.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.gateway.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", user.Email).Msg("Account registered")
	return user, nil
}

// Logout tears the session down. The server call is best effort: its
// failure never blocks local cleanup.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.gateway.Logout(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Server logout failed, clearing local session anyway")
	}

	err := s.creds.Clear(ctx)
	s.setState(interfaces.SessionAnonymous, nil)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	s.logger.Info().Msg("Logged out")
	return nil
}

// ChangePassword rotates the password. Identical current and new values are
// rejected before any network call; success leaves the session's tokens
// untouched.
func (s *Service) ChangePassword(ctx context.Context, current, newPassword string) error {
	req := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: newPassword}
	if err := req.Validate(); err != nil {
		return err
	}
	return s.gateway.ChangePassword(ctx, req)
}

// UpdateProfile applies a partial profile update and replaces the in-memory
// and stored user snapshot.
func (s *Service) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.gateway.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" {
		return nil, fmt.Errorf("profile response missing user")
	}

	if err := s.creds.SaveUser(ctx, user); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache user snapshot")
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// RefreshUser refetches the current user from the backend. A response with
// no usable user record is an error and leaves the cached snapshot in place.
func (s *Service) RefreshUser(ctx context.Context) (*models.User, error) {
	user, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" {
		return nil, fmt.Errorf("current-user response missing user")
	}
	if err := s.creds.SaveUser(ctx, user); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache user snapshot")
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// State returns the current lifecycle state.
func (s *Service) State() interfaces.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns the in-memory user, or nil when anonymous.
func (s *Service) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a session is active.
func (s *Service) IsAuthenticated() bool {
	return s.State() == interfaces.SessionAuthenticated
}

// Ensure Service implements SessionService
var _ interfaces.SessionService = (*Service)(nil)
