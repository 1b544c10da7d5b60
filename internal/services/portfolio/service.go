// Package portfolio provides the client-side cache of portfolio data: the
// fetched portfolio list, the selected portfolio with its investments and
// transactions, and the derived dashboard summary. All mutation goes
// through action methods; presentation layers read snapshots and subscribe
// for change notifications.
package portfolio

import (
	"context"
	"sync"

	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/interfaces"
	"github.com/devnarayan/folio/internal/models"
)

// Change identifies which part of the cache mutated.
type Change string

const (
	ChangePortfolios   Change = "portfolios"
	ChangeCurrent      Change = "current_portfolio"
	ChangeInvestments  Change = "investments"
	ChangeTransactions Change = "transactions"
	ChangeSummary      Change = "summary"
	ChangeError        Change = "error"
)

// subscriberBuffer bounds each subscriber channel; slow consumers drop
// notifications rather than block mutations.
const subscriberBuffer = 16

// Service implements PortfolioService.
type Service struct {
	gateway interfaces.Gateway
	logger  *common.Logger

	mu           sync.RWMutex
	portfolios   []models.Portfolio
	current      *models.Portfolio
	investments  []models.Investment
	transactions []models.Transaction
	summary      *models.DashboardSummary
	loading      bool
	lastError    string

	subMu   sync.Mutex
	subs    map[int]chan Change
	nextSub int
}

// NewService creates a new portfolio cache service.
func NewService(gateway interfaces.Gateway, logger *common.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
		subs:    make(map[int]chan Change),
	}
}

// Subscribe returns a channel of change notifications and a cancel func.
// Notifications are dropped, not queued, when the subscriber falls behind.
func (s *Service) Subscribe() (<-chan Change, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Change, subscriberBuffer)
	s.subs[id] = ch
	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Service) notify(changes ...Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		for _, change := range changes {
			select {
			case ch <- change:
			default:
			}
		}
	}
}

// begin marks the start of an action: loading set, prior error cleared.
func (s *Service) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

// fail records an action failure. Previously fetched data is left
// untouched: a failed refetch never blanks the screen.
func (s *Service) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()
	s.notify(ChangeError)
	return err
}

// --- portfolio actions ---

// FetchPortfolios replaces the portfolio list wholesale with the server
// response.
func (s *Service) FetchPortfolios(ctx context.Context) error {
	s.begin()

	portfolios, err := s.gateway.ListPortfolios(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.portfolios = portfolios
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangePortfolios)

	s.logger.Debug().Int("count", len(portfolios)).Msg("Portfolios fetched")
	return nil
}

// FetchPortfolioByID loads a single portfolio as the current selection.
func (s *Service) FetchPortfolioByID(ctx context.Context, id string) error {
	s.begin()

	p, err := s.gateway.GetPortfolio(ctx, id)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.current = p
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangeCurrent)
	return nil
}

// CreatePortfolio creates a portfolio and appends the server's record to the
// cached list without refetching it.
func (s *Service) CreatePortfolio(ctx context.Context, req models.CreatePortfolioRequest) (*models.Portfolio, error) {
	if err := req.Validate(); err != nil {
		return nil, s.fail(err)
	}
	s.begin()

	p, err := s.gateway.CreatePortfolio(ctx, req)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.portfolios = append(s.portfolios, *p)
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangePortfolios)

	s.logger.Info().Str("id", p.ID).Str("name", p.Name).Msg("Portfolio created")
	return p, nil
}

// UpdatePortfolio replaces the matching cached element by id, and the
// current selection if it is the same portfolio.
func (s *Service) UpdatePortfolio(ctx context.Context, id string, req models.UpdatePortfolioRequest) error {
	s.begin()

	updated, err := s.gateway.UpdatePortfolio(ctx, id, req)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	for i := range s.portfolios {
		if s.portfolios[i].ID == id {
			s.portfolios[i] = *updated
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = updated
	}
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangePortfolios, ChangeCurrent)
	return nil
}

// DeletePortfolio removes the portfolio from the cached list. When it was
// the current selection, the selection and its dependent investments are
// invalidated rather than left stale.
func (s *Service) DeletePortfolio(ctx context.Context, id string) error {
	s.begin()

	if err := s.gateway.DeletePortfolio(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	kept := s.portfolios[:0]
	for _, p := range s.portfolios {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.portfolios = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
		s.investments = nil
	}
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangePortfolios, ChangeCurrent, ChangeInvestments)

	s.logger.Info().Str("id", id).Msg("Portfolio deleted")
	return nil
}

// --- investment actions ---

// FetchInvestments replaces the investments array wholesale.
func (s *Service) FetchInvestments(ctx context.Context, portfolioID string) error {
	s.begin()

	investments, err := s.gateway.ListInvestments(ctx, portfolioID)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.investments = investments
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangeInvestments)
	return nil
}

// CreateInvestment appends the created investment to the cached array.
func (s *Service) CreateInvestment(ctx context.Context, portfolioID string, req models.CreateInvestmentRequest) (*models.Investment, error) {
	if err := req.Validate(); err != nil {
		return nil, s.fail(err)
	}
	s.begin()

	inv, err := s.gateway.CreateInvestment(ctx, portfolioID, req)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.investments = append(s.investments, *inv)
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangeInvestments)

	s.logger.Info().Str("symbol", inv.Symbol).Str("portfolio", portfolioID).Msg("Investment created")
	return inv, nil
}

// UpdateInvestment replaces the matching cached element by id.
func (s *Service) UpdateInvestment(ctx context.Context, portfolioID, id string, req models.UpdateInvestmentRequest) error {
	s.begin()

	updated, err := s.gateway.UpdateInvestment(ctx, portfolioID, id, req)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	for i := range s.investments {
		if s.investments[i].ID == id {
			s.investments[i] = *updated
			break
		}
	}
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangeInvestments)
	return nil
}

// DeleteInvestment removes the investment from the cached array.
func (s *Service) DeleteInvestment(ctx context.Context, portfolioID, id string) error {
	s.begin()

	if err := s.gateway.DeleteInvestment(ctx, portfolioID, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	kept := s.investments[:0]
	for _, inv := range s.investments {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	s.investments = kept
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangeInvestments)
	return nil
}

// --- transaction actions ---

// FetchTransactions replaces the transactions array wholesale. Filters are
// passed through to the backend, never applied client-side.
func (s *Service) FetchTransactions(ctx context.Context, portfolioID string, filter *models.TransactionFilter) error {
	s.begin()

	txs, err := s.gateway.ListTransactions(ctx, portfolioID, filter)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.transactions = txs
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangeTransactions)
	return nil
}

// CreateTransaction appends the recorded transaction to the cached array.
func (s *Service) CreateTransaction(ctx context.Context, portfolioID, investmentID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, s.fail(err)
	}
	s.begin()

	tx, err := s.gateway.CreateTransaction(ctx, portfolioID, investmentID, req)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.transactions = append(s.transactions, *tx)
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangeTransactions)
	return tx, nil
}

// --- dashboard ---

// FetchDashboardSummary refetches the aggregate view from the backend. The
// summary is always a full refresh, never patched from other cached fields.
func (s *Service) FetchDashboardSummary(ctx context.Context) error {
	s.begin()

	summary, err := s.gateway.DashboardSummary(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.summary = summary
	s.loading = false
	s.mu.Unlock()
	s.notify(ChangeSummary)
	return nil
}

// --- snapshots ---

// Portfolios returns a copy of the cached portfolio list.
func (s *Service) Portfolios() []models.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Portfolio, len(s.portfolios))
	copy(out, s.portfolios)
	return out
}

// CurrentPortfolio returns a copy of the selected portfolio, or nil.
func (s *Service) CurrentPortfolio() *models.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

// Investments returns a copy of the cached investments.
func (s *Service) Investments() []models.Investment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Investment, len(s.investments))
	copy(out, s.investments)
	return out
}

// Transactions returns a copy of the cached transactions.
func (s *Service) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Summary returns a copy of the cached dashboard summary, or nil.
func (s *Service) Summary() *models.DashboardSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return nil
	}
	sum := *s.summary
	sum.Portfolios = make([]models.PortfolioPerformance, len(s.summary.Portfolios))
	copy(sum.Portfolios, s.summary.Portfolios)
	return &sum
}

// IsLoading reports whether an action is in flight.
func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the message from the most recent failed action, or "".
func (s *Service) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// ClearError discards the recorded error.
func (s *Service) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// Reset drops all cached data, e.g. on logout.
func (s *Service) Reset() {
	s.mu.Lock()
	s.portfolios = nil
	s.current = nil
	s.investments = nil
	s.transactions = nil
	s.summary = nil
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	s.notify(ChangePortfolios, ChangeCurrent, ChangeInvestments, ChangeTransactions, ChangeSummary)
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
