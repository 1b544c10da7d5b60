// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"time"

	"github.com/devnarayan/folio/internal/models"
)

// Gateway is the single choke point for all backend calls. Implementations
// attach the stored bearer credential to every authenticated request and
// transparently perform the one-shot refresh-and-retry on a 401.
type Gateway interface {
	// --- auth (unauthenticated endpoints bypass the refresh interceptor) ---

	// Login authenticates and returns the user plus token pair.
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// Register creates an account. It returns the created user only; any
	// tokens the server includes are discarded (registration never
	// authenticates).
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)

	// Logout invalidates the server-side session, best effort.
	Logout(ctx context.Context) error

	// CurrentUser fetches the authenticated user.
	CurrentUser(ctx context.Context) (*models.User, error)

	// AccessTokenExpiry reports when the stored access token expires.
	AccessTokenExpiry(ctx context.Context) (time.Time, error)

	// OnSessionInvalid registers a callback fired when a refresh cycle
	// fails and the stored credentials have been cleared.
	OnSessionInvalid(fn func())

	// --- user profile ---

	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	UserStats(ctx context.Context) (*models.UserStats, error)

	// --- portfolios ---

	ListPortfolios(ctx context.Context) ([]models.Portfolio, error)
	GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error)
	CreatePortfolio(ctx context.Context, req models.CreatePortfolioRequest) (*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id string, req models.UpdatePortfolioRequest) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id string) error
	PortfolioStats(ctx context.Context, id string) (*models.PortfolioStats, error)

	// --- investments ---

	ListInvestments(ctx context.Context, portfolioID string) ([]models.Investment, error)
	CreateInvestment(ctx context.Context, portfolioID string, req models.CreateInvestmentRequest) (*models.Investment, error)
	UpdateInvestment(ctx context.Context, portfolioID, id string, req models.UpdateInvestmentRequest) (*models.Investment, error)
	DeleteInvestment(ctx context.Context, portfolioID, id string) error
	InvestmentPerformance(ctx context.Context, portfolioID, id string) (*models.InvestmentPerformance, error)

	// --- transactions ---

	CreateTransaction(ctx context.Context, portfolioID, investmentID string, req models.CreateTransactionRequest) (*models.Transaction, error)
	ListTransactions(ctx context.Context, portfolioID string, filter *models.TransactionFilter) ([]models.Transaction, error)
	TransactionAnalytics(ctx context.Context, portfolioID string) (*models.TransactionAnalytics, error)

	// --- dashboard ---

	DashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
	PortfolioAllocation(ctx context.Context, portfolioID string) ([]models.AllocationSlice, error)
	PortfolioPerformance(ctx context.Context, portfolioID string) ([]models.PerformancePoint, error)
	TopPerformers(ctx context.Context, portfolioID string, limit int) ([]models.Investment, error)
	BottomPerformers(ctx context.Context, portfolioID string, limit int) ([]models.Investment, error)
}
