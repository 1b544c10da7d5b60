package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/interfaces"
	"github.com/devnarayan/folio/internal/models"
)

// fakeGateway stubs the auth surface; the embedded interface panics on
// anything a test did not expect to be called.
type fakeGateway struct {
	interfaces.Gateway

	loginResp *models.AuthResponse
	loginErr  error

	registerUser *models.User
	registerErr  error

	currentUser    *models.User
	currentUserErr error

	logoutErr error

	changePasswordErr error
	updateProfileUser *models.User

	onInvalid func()

	loginCalls       int
	currentUserCalls int
	logoutCalls      int
}

func (f *fakeGateway) OnSessionInvalid(fn func()) { f.onInvalid = fn }

func (f *fakeGateway) Login(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeGateway) Register(context.Context, models.RegisterRequest) (*models.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeGateway) CurrentUser(context.Context) (*models.User, error) {
	f.currentUserCalls++
	return f.currentUser, f.currentUserErr
}

func (f *fakeGateway) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeGateway) ChangePassword(context.Context, models.ChangePasswordRequest) error {
	return f.changePasswordErr
}

func (f *fakeGateway) UpdateProfile(context.Context, models.UpdateProfileRequest) (*models.User, error) {
	return f.updateProfileUser, nil
}

// fakeCreds is an in-memory CredentialStore.
type fakeCreds struct {
	mu      sync.Mutex
	access  string
	refresh string
	user    *models.User
	cleared int
}

func (f *fakeCreds) AccessToken(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access, nil
}

func (f *fakeCreds) RefreshToken(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh, nil
}

func (f *fakeCreds) SaveTokens(_ context.Context, access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = access, refresh
	return nil
}

func (f *fakeCreds) SaveAccessToken(_ context.Context, access string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = access
	return nil
}

func (f *fakeCreds) User(context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, nil
}

func (f *fakeCreds) SaveUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = user
	return nil
}

func (f *fakeCreds) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh, f.user = "", "", nil
	f.cleared++
	return nil
}

func (f *fakeCreds) GetKV(context.Context, string) (string, error) { return "", nil }
func (f *fakeCreds) SetKV(context.Context, string, string) error   { return nil }
func (f *fakeCreds) DeleteKV(context.Context, string) error        { return nil }
func (f *fakeCreds) Close() error                                  { return nil }

func newTestService(gw *fakeGateway, creds *fakeCreds) *Service {
	return NewService(gw, creds, common.NewSilentLogger())
}

func TestRestore_NoStoredTokens(t *testing.T) {
	gw := &fakeGateway{}
	creds := &fakeCreds{}
	svc := newTestService(gw, creds)

	require.NoError(t, svc.Restore(context.Background()))

	assert.Equal(t, interfaces.SessionAnonymous, svc.State())
	assert.Nil(t, svc.CurrentUser())
	// No tokens means no network call at all.
	assert.Zero(t, gw.currentUserCalls)
}

func TestRestore_ValidSession(t *testing.T) {
	gw := &fakeGateway{currentUser: &models.User{ID: "u1", Email: "a@b.co"}}
	creds := &fakeCreds{access: "acc", refresh: "ref"}
	svc := newTestService(gw, creds)

	require.NoError(t, svc.Restore(context.Background()))

	assert.Equal(t, interfaces.SessionAuthenticated, svc.State())
	require.NotNil(t, svc.CurrentUser())
	assert.Equal(t, "a@b.co", svc.CurrentUser().Email)
	assert.NotNil(t, creds.user)
}

func TestRestore_StaleSessionClearsAndEndsAnonymous(t *testing.T) {
	gw := &fakeGateway{currentUserErr: fmt.Errorf("unauthorized")}
	creds := &fakeCreds{access: "acc", refresh: "ref"}
	svc := newTestService(gw, creds)

	// A stale session is not a startup failure.
	require.NoError(t, svc.Restore(context.Background()))

	assert.Equal(t, interfaces.SessionAnonymous, svc.State())
	assert.NotZero(t, creds.cleared)
}

func TestRestore_EmptyUserPayloadClearsAndEndsAnonymous(t *testing.T) {
	// A 200 whose envelope carries no user decodes to a zero-value record;
	// that must not become an authenticated session.
	gw := &fakeGateway{currentUser: &models.User{}}
	creds := &fakeCreds{access: "acc", refresh: "ref"}
	svc := newTestService(gw, creds)

	require.NoError(t, svc.Restore(context.Background()))

	assert.Equal(t, interfaces.SessionAnonymous, svc.State())
	assert.Nil(t, svc.CurrentUser())
	assert.NotZero(t, creds.cleared)
}

func TestRefreshUser_EmptyUserPayloadKeepsSnapshot(t *testing.T) {
	gw := &fakeGateway{currentUser: &models.User{ID: "u1", Email: "a@b.co"}}
	creds := &fakeCreds{access: "acc", refresh: "ref"}
	svc := newTestService(gw, creds)
	require.NoError(t, svc.Restore(context.Background()))
	require.True(t, svc.IsAuthenticated())

	gw.currentUser = &models.User{}
	_, err := svc.RefreshUser(context.Background())
	require.Error(t, err)

	// The previous snapshot survives, both in memory and in storage.
	require.NotNil(t, svc.CurrentUser())
	assert.Equal(t, "u1", svc.CurrentUser().ID)
	require.NotNil(t, creds.user)
	assert.Equal(t, "u1", creds.user.ID)
}

func TestUpdateProfile_EmptyUserPayloadIsError(t *testing.T) {
	gw := &fakeGateway{
		currentUser:       &models.User{ID: "u1", Email: "a@b.co"},
		updateProfileUser: &models.User{},
	}
	creds := &fakeCreds{access: "acc", refresh: "ref"}
	svc := newTestService(gw, creds)
	require.NoError(t, svc.Restore(context.Background()))

	_, err := svc.UpdateProfile(context.Background(), models.UpdateProfileRequest{})
	require.Error(t, err)
	assert.Equal(t, "u1", svc.CurrentUser().ID)
}

func TestLogin_Success(t *testing.T) {
	gw := &fakeGateway{loginResp: &models.AuthResponse{
		User:   &models.User{ID: "u1", Email: "a@b.co"},
		Tokens: models.AuthTokens{AccessToken: "acc", RefreshToken: "ref"},
	}}
	creds := &fakeCreds{}
	svc := newTestService(gw, creds)

	require.NoError(t, svc.Login(context.Background(), "a@b.co", "Passw0rd!"))

	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "acc", creds.access)
	assert.Equal(t, "ref", creds.refresh)
}

func TestLogin_InvalidEmailSkipsNetwork(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw, &fakeCreds{})

	require.Error(t, svc.Login(context.Background(), "not-an-email", "Passw0rd!"))
	assert.Zero(t, gw.loginCalls)
}

func TestLogin_PartialResponseRejected(t *testing.T) {
	tests := []struct {
		name string
		resp *models.AuthResponse
	}{
		{"missing user", &models.AuthResponse{
			Tokens: models.AuthTokens{AccessToken: "acc", RefreshToken: "ref"},
		}},
		{"missing access token", &models.AuthResponse{
			User:   &models.User{ID: "u1"},
			Tokens: models.AuthTokens{RefreshToken: "ref"},
		}},
		{"missing refresh token", &models.AuthResponse{
			User:   &models.User{ID: "u1"},
			Tokens: models.AuthTokens{AccessToken: "acc"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{loginResp: tt.resp}
			creds := &fakeCreds{}
			svc := newTestService(gw, creds)

			require.Error(t, svc.Login(context.Background(), "a@b.co", "Passw0rd!"))

			assert.Equal(t, interfaces.SessionAnonymous, svc.State())
			// No partial persistence.
			assert.Empty(t, creds.access)
			assert.Empty(t, creds.refresh)
		})
	}
}

func TestRegister_NeverAuthenticates(t *testing.T) {
	gw := &fakeGateway{registerUser: &models.User{ID: "u1", Email: "new@b.co"}}
	creds := &fakeCreds{}
	svc := newTestService(gw, creds)

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "new@b.co", Password: "Passw0rd!", FirstName: "New", LastName: "User",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, interfaces.SessionAnonymous, svc.State())
	assert.Empty(t, creds.access)
}

func TestLogout_ServerFailureStillClearsLocally(t *testing.T) {
	gw := &fakeGateway{
		logoutErr:   fmt.Errorf("server unreachable"),
		currentUser: &models.User{ID: "u1"},
	}
	creds := &fakeCreds{access: "acc", refresh: "ref"}
	svc := newTestService(gw, creds)
	require.NoError(t, svc.Restore(context.Background()))
	require.True(t, svc.IsAuthenticated())

	require.NoError(t, svc.Logout(context.Background()))

	assert.Equal(t, interfaces.SessionAnonymous, svc.State())
	assert.Empty(t, creds.access)
	assert.Equal(t, 1, gw.logoutCalls)
}

func TestChangePassword_SameValueRejectedLocally(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw, &fakeCreds{})

	err := svc.ChangePassword(context.Background(), "Passw0rd!", "Passw0rd!")
	require.Error(t, err)
}

func TestSessionInvalidSignalForcesAnonymous(t *testing.T) {
	gw := &fakeGateway{currentUser: &models.User{ID: "u1"}}
	creds := &fakeCreds{access: "acc", refresh: "ref"}
	svc := newTestService(gw, creds)
	require.NoError(t, svc.Restore(context.Background()))
	require.True(t, svc.IsAuthenticated())

	// Simulate the gateway reporting a failed refresh cycle.
	gw.onInvalid()

	assert.Equal(t, interfaces.SessionAnonymous, svc.State())
	assert.Nil(t, svc.CurrentUser())
}

func TestCurrentUser_ReturnsCopy(t *testing.T) {
	gw := &fakeGateway{currentUser: &models.User{ID: "u1", Email: "a@b.co"}}
	creds := &fakeCreds{access: "acc", refresh: "ref"}
	svc := newTestService(gw, creds)
	require.NoError(t, svc.Restore(context.Background()))

	u := svc.CurrentUser()
	u.Email = "mutated@b.co"
	assert.Equal(t, "a@b.co", svc.CurrentUser().Email)
}
