package folio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/devnarayan/folio/internal/models"
)

// DashboardSummary retrieves the cross-portfolio aggregate view.
func (c *Client) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// PortfolioAllocation retrieves the asset-type allocation breakdown for a
// portfolio.
func (c *Client) PortfolioAllocation(ctx context.Context, portfolioID string) ([]models.AllocationSlice, error) {
	var slices []models.AllocationSlice
	path := fmt.Sprintf("/dashboard/portfolio/%s/allocation", portfolioID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &slices); err != nil {
		return nil, err
	}
	return slices, nil
}

// PortfolioPerformance retrieves the portfolio value time series.
func (c *Client) PortfolioPerformance(ctx context.Context, portfolioID string) ([]models.PerformancePoint, error) {
	var points []models.PerformancePoint
	path := fmt.Sprintf("/dashboard/portfolio/%s/performance", portfolioID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func performerQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// TopPerformers retrieves the best-performing investments in a portfolio,
// ranked by gain/loss percentage. limit <= 0 uses the server default.
func (c *Client) TopPerformers(ctx context.Context, portfolioID string, limit int) ([]models.Investment, error) {
	var investments []models.Investment
	path := fmt.Sprintf("/dashboard/portfolio/%s/top-performers", portfolioID)
	if err := c.do(ctx, http.MethodGet, path, performerQuery(limit), nil, &investments); err != nil {
		return nil, err
	}
	return investments, nil
}

// BottomPerformers retrieves the worst-performing investments in a
// portfolio. limit <= 0 uses the server default.
func (c *Client) BottomPerformers(ctx context.Context, portfolioID string, limit int) ([]models.Investment, error) {
	var investments []models.Investment
	path := fmt.Sprintf("/dashboard/portfolio/%s/bottom-performers", portfolioID)
	if err := c.do(ctx, http.MethodGet, path, performerQuery(limit), nil, &investments); err != nil {
		return nil, err
	}
	return investments, nil
}
