package models

import "time"

// InvestmentType classifies an investment holding.
type InvestmentType string

const (
	InvestmentTypeStock      InvestmentType = "STOCK"
	InvestmentTypeMutualFund InvestmentType = "MUTUAL_FUND"
	InvestmentTypeBond       InvestmentType = "BOND"
	InvestmentTypeCrypto     InvestmentType = "CRYPTOCURRENCY"
)

// Valid reports whether t is a known investment type.
func (t InvestmentType) Valid() bool {
	switch t {
	case InvestmentTypeStock, InvestmentTypeMutualFund, InvestmentTypeBond, InvestmentTypeCrypto:
		return true
	}
	return false
}

// Portfolio is a named collection of investments owned by one user.
// Deletion is soft server-side; a non-nil DeletedAt marks a tombstone.
type Portfolio struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// CreatePortfolioRequest is the create payload.
type CreatePortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdatePortfolioRequest is a partial update. Nil fields are untouched.
type UpdatePortfolioRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Investment is a position held within a portfolio. SIP fields describe a
// systematic recurring plan and are only meaningful when IsSIP is true.
type Investment struct {
	ID            string         `json:"id"`
	PortfolioID   string         `json:"portfolioId"`
	Name          string         `json:"name"`
	Symbol        string         `json:"symbol"`
	Type          InvestmentType `json:"type"`
	Quantity      float64        `json:"quantity"`
	PurchasePrice float64        `json:"purchasePrice"`
	CurrentPrice  float64        `json:"currentPrice"`
	PurchaseDate  time.Time      `json:"purchaseDate"`
	Notes         string         `json:"notes,omitempty"`
	IsSIP         bool           `json:"isSIP"`
	SIPAmount     float64        `json:"sipAmount,omitempty"`
	SIPStartDate  *time.Time     `json:"sipStartDate,omitempty"`
	SIPDuration   int            `json:"sipDuration,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     *time.Time     `json:"deletedAt,omitempty"`
}

// CostBasis returns the invested amount: purchase price × quantity.
func (i *Investment) CostBasis() float64 {
	return i.PurchasePrice * i.Quantity
}

// MarketValue returns the current value: current price × quantity.
func (i *Investment) MarketValue() float64 {
	return i.CurrentPrice * i.Quantity
}

// GainLoss returns current value minus invested amount.
func (i *Investment) GainLoss() float64 {
	return i.MarketValue() - i.CostBasis()
}

// GainLossPercent returns the gain/loss as a percentage of the cost basis,
// or 0 when nothing was invested.
func (i *Investment) GainLossPercent() float64 {
	return Percent(i.GainLoss(), i.CostBasis())
}

// Percent returns part/whole × 100, or 0 when whole is not positive.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// InvestmentsInvested sums cost basis across a set of investments.
func InvestmentsInvested(investments []Investment) float64 {
	var total float64
	for i := range investments {
		total += investments[i].CostBasis()
	}
	return total
}

// InvestmentsValue sums market value across a set of investments.
func InvestmentsValue(investments []Investment) float64 {
	var total float64
	for i := range investments {
		total += investments[i].MarketValue()
	}
	return total
}

// CreateInvestmentRequest is the create payload for an investment.
type CreateInvestmentRequest struct {
	Name          string         `json:"name"`
	Symbol        string         `json:"symbol"`
	Type          InvestmentType `json:"type"`
	Quantity      float64        `json:"quantity"`
	PurchasePrice float64        `json:"purchasePrice"`
	CurrentPrice  float64        `json:"currentPrice"`
	PurchaseDate  time.Time      `json:"purchaseDate"`
	Notes         string         `json:"notes,omitempty"`
	IsSIP         bool           `json:"isSIP"`
	SIPAmount     float64        `json:"sipAmount,omitempty"`
	SIPStartDate  *time.Time     `json:"sipStartDate,omitempty"`
	SIPDuration   int            `json:"sipDuration,omitempty"`
}

// UpdateInvestmentRequest is a partial update. Nil fields are untouched.
type UpdateInvestmentRequest struct {
	Name         *string  `json:"name,omitempty"`
	Symbol       *string  `json:"symbol,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// PortfolioStats is the per-portfolio aggregate from GET /portfolios/:id/stats.
type PortfolioStats struct {
	PortfolioID         string  `json:"portfolioId"`
	TotalValue          float64 `json:"totalValue"`
	TotalInvested       float64 `json:"totalInvested"`
	TotalGainLoss       float64 `json:"totalGainLoss"`
	GainLossPercentage  float64 `json:"gainLossPercentage"`
	NumberOfInvestments int     `json:"numberOfInvestments"`
}

// InvestmentPerformance is the per-investment view from the performance endpoint.
type InvestmentPerformance struct {
	InvestmentID  string  `json:"investmentId"`
	Invested      float64 `json:"invested"`
	CurrentValue  float64 `json:"currentValue"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercentage"`
	DayChange     float64 `json:"dayChange,omitempty"`
	DayChangePct  float64 `json:"dayChangePercentage,omitempty"`
}
