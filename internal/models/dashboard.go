package models

// PortfolioPerformance is the per-portfolio breakdown within a dashboard
// summary, including the investments that produced the totals.
type PortfolioPerformance struct {
	PortfolioID   string       `json:"portfolioId"`
	PortfolioName string       `json:"portfolioName"`
	TotalValue    float64      `json:"totalValue"`
	TotalInvested float64      `json:"totalInvested"`
	Profit        float64      `json:"profit"`
	ProfitPercent float64      `json:"profitPercentage"`
	Investments   []Investment `json:"investments,omitempty"`
}

// DashboardSummary aggregates totals across all portfolios. It is derived
// data: always refetched from the backend, never patched incrementally.
type DashboardSummary struct {
	TotalPortfolios    int                    `json:"totalPortfolios"`
	TotalValue         float64                `json:"totalValue"`
	TotalInvested      float64                `json:"totalInvested"`
	TotalProfit        float64                `json:"totalProfit"`
	TotalProfitPercent float64                `json:"totalProfitPercentage"`
	Portfolios         []PortfolioPerformance `json:"portfolios"`
}

// Recompute rebuilds the top-level totals from the per-portfolio breakdowns.
func (s *DashboardSummary) Recompute() {
	s.TotalPortfolios = len(s.Portfolios)
	s.TotalValue = 0
	s.TotalInvested = 0
	for i := range s.Portfolios {
		s.TotalValue += s.Portfolios[i].TotalValue
		s.TotalInvested += s.Portfolios[i].TotalInvested
	}
	s.TotalProfit = s.TotalValue - s.TotalInvested
	s.TotalProfitPercent = Percent(s.TotalProfit, s.TotalInvested)
}

// AllocationSlice is one wedge of a portfolio allocation breakdown.
type AllocationSlice struct {
	Type       InvestmentType `json:"type"`
	Value      float64        `json:"value"`
	Percentage float64        `json:"percentage"`
}

// PerformancePoint is one sample of a portfolio value time series.
type PerformancePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
