package interfaces

import (
	"context"

	"github.com/devnarayan/folio/internal/models"
)

// SessionState is the session manager's lifecycle state.
type SessionState string

const (
	SessionAnonymous      SessionState = "anonymous"
	SessionRestoring      SessionState = "restoring"
	SessionAuthenticating SessionState = "authenticating"
	SessionAuthenticated  SessionState = "authenticated"
)

// SessionService owns the authenticated-user lifecycle.
type SessionService interface {
	// Restore rebuilds a session from stored tokens at startup. With no
	// stored token pair it settles to anonymous synchronously, without a
	// network call.
	Restore(ctx context.Context) error

	// Login authenticates and persists the session. Responses missing the
	// user or either token are failures with no partial state mutation.
	Login(ctx context.Context, email, password string) error

	// Register creates an account without authenticating it.
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)

	// Logout tears the session down. The server call is best effort;
	// local state is cleared unconditionally.
	Logout(ctx context.Context) error

	// ChangePassword rotates the password; the active session's tokens
	// are not touched.
	ChangePassword(ctx context.Context, current, newPassword string) error

	// UpdateProfile replaces the in-memory and stored user snapshot.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)

	// RefreshUser refetches the current user from the backend.
	RefreshUser(ctx context.Context) (*models.User, error)

	State() SessionState
	CurrentUser() *models.User
	IsAuthenticated() bool
}

// PortfolioService is the observable client-side cache of portfolio data.
// All mutation happens through action methods; reads return copies.
type PortfolioService interface {
	FetchPortfolios(ctx context.Context) error
	FetchPortfolioByID(ctx context.Context, id string) error
	CreatePortfolio(ctx context.Context, req models.CreatePortfolioRequest) (*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id string, req models.UpdatePortfolioRequest) error
	DeletePortfolio(ctx context.Context, id string) error

	FetchInvestments(ctx context.Context, portfolioID string) error
	CreateInvestment(ctx context.Context, portfolioID string, req models.CreateInvestmentRequest) (*models.Investment, error)
	UpdateInvestment(ctx context.Context, portfolioID, id string, req models.UpdateInvestmentRequest) error
	DeleteInvestment(ctx context.Context, portfolioID, id string) error

	FetchTransactions(ctx context.Context, portfolioID string, filter *models.TransactionFilter) error
	CreateTransaction(ctx context.Context, portfolioID, investmentID string, req models.CreateTransactionRequest) (*models.Transaction, error)

	FetchDashboardSummary(ctx context.Context) error

	Portfolios() []models.Portfolio
	CurrentPortfolio() *models.Portfolio
	Investments() []models.Investment
	Transactions() []models.Transaction
	Summary() *models.DashboardSummary
	IsLoading() bool
	LastError() string

	ClearError()
	Reset()
}
