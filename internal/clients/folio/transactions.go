package folio

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devnarayan/folio/internal/models"
)

// CreateTransaction records a buy or sell against an investment.
func (c *Client) CreateTransaction(ctx context.Context, portfolioID, investmentID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	var tx models.Transaction
	path := fmt.Sprintf("/portfolios/%s/investments/%s/transactions", portfolioID, investmentID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListTransactions retrieves transactions for a portfolio. The filter is
// encoded as query parameters and applied server-side.
func (c *Client) ListTransactions(ctx context.Context, portfolioID string, filter *models.TransactionFilter) ([]models.Transaction, error) {
	var txs []models.Transaction
	path := fmt.Sprintf("/portfolios/%s/transactions", portfolioID)
	if err := c.do(ctx, http.MethodGet, path, filter.Query(), nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// TransactionAnalytics retrieves buy/sell aggregates for a portfolio.
func (c *Client) TransactionAnalytics(ctx context.Context, portfolioID string) (*models.TransactionAnalytics, error) {
	var analytics models.TransactionAnalytics
	path := fmt.Sprintf("/portfolios/%s/transactions/analytics", portfolioID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}
