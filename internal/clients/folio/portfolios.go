package folio

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devnarayan/folio/internal/models"
)

// ListPortfolios retrieves all portfolios owned by the authenticated user.
func (c *Client) ListPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := c.do(ctx, http.MethodGet, "/portfolios", nil, nil, &portfolios); err != nil {
		return nil, err
	}
	return portfolios, nil
}

// GetPortfolio retrieves a single portfolio by id.
func (c *Client) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	var p models.Portfolio
	path := fmt.Sprintf("/portfolios/%s", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePortfolio creates a portfolio and returns the server's record of it.
func (c *Client) CreatePortfolio(ctx context.Context, req models.CreatePortfolioRequest) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := c.do(ctx, http.MethodPost, "/portfolios", nil, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePortfolio applies a partial update and returns the updated record.
func (c *Client) UpdatePortfolio(ctx context.Context, id string, req models.UpdatePortfolioRequest) (*models.Portfolio, error) {
	var p models.Portfolio
	path := fmt.Sprintf("/portfolios/%s", id)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePortfolio soft-deletes a portfolio server-side.
func (c *Client) DeletePortfolio(ctx context.Context, id string) error {
	path := fmt.Sprintf("/portfolios/%s", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// PortfolioStats retrieves the per-portfolio aggregate.
func (c *Client) PortfolioStats(ctx context.Context, id string) (*models.PortfolioStats, error) {
	var stats models.PortfolioStats
	path := fmt.Sprintf("/portfolios/%s/stats", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
