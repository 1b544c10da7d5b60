package folio

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devnarayan/folio/internal/models"
)

// ListInvestments retrieves all investments in a portfolio.
func (c *Client) ListInvestments(ctx context.Context, portfolioID string) ([]models.Investment, error) {
	var investments []models.Investment
	path := fmt.Sprintf("/portfolios/%s/investments", portfolioID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &investments); err != nil {
		return nil, err
	}
	return investments, nil
}

// CreateInvestment adds an investment to a portfolio.
func (c *Client) CreateInvestment(ctx context.Context, portfolioID string, req models.CreateInvestmentRequest) (*models.Investment, error) {
	var inv models.Investment
	path := fmt.Sprintf("/portfolios/%s/investments", portfolioID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateInvestment applies a partial update and returns the updated record.
func (c *Client) UpdateInvestment(ctx context.Context, portfolioID, id string, req models.UpdateInvestmentRequest) (*models.Investment, error) {
	var inv models.Investment
	path := fmt.Sprintf("/portfolios/%s/investments/%s", portfolioID, id)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeleteInvestment removes an investment from a portfolio.
func (c *Client) DeleteInvestment(ctx context.Context, portfolioID, id string) error {
	path := fmt.Sprintf("/portfolios/%s/investments/%s", portfolioID, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// InvestmentPerformance retrieves the computed performance view for one
// investment.
func (c *Client) InvestmentPerformance(ctx context.Context, portfolioID, id string) (*models.InvestmentPerformance, error) {
	var perf models.InvestmentPerformance
	path := fmt.Sprintf("/portfolios/%s/investments/%s/performance", portfolioID, id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &perf); err != nil {
		return nil, err
	}
	return &perf, nil
}
