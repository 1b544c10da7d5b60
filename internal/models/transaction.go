package models

import (
	"net/url"
	"strconv"
	"time"
)

// TransactionType classifies a recorded trade.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeBuy || t == TransactionTypeSell
}

// Transaction records a buy or sell against an investment. Transactions are
// append-only from the client's perspective: create and list, never update.
type Transaction struct {
	ID              string          `json:"id"`
	InvestmentID    string          `json:"investmentId"`
	PortfolioID     string          `json:"portfolioId"`
	Type            TransactionType `json:"type"`
	Quantity        float64         `json:"quantity"`
	Price           float64         `json:"price"`
	Amount          float64         `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CreateTransactionRequest is the create payload.
type CreateTransactionRequest struct {
	Type            TransactionType `json:"type"`
	Quantity        float64         `json:"quantity"`
	Price           float64         `json:"price"`
	Amount          float64         `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Notes           string          `json:"notes,omitempty"`
}

// TransactionFilter narrows a transaction listing. Filters are applied
// server-side; the client passes them through as query parameters.
type TransactionFilter struct {
	Type     TransactionType
	FromDate time.Time
	ToDate   time.Time
	Page     int
	Limit    int
}

// Query encodes the filter as URL query parameters. Zero values are omitted.
func (f *TransactionFilter) Query() url.Values {
	q := url.Values{}
	if f == nil {
		return q
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if !f.FromDate.IsZero() {
		q.Set("fromDate", f.FromDate.Format("2006-01-02"))
	}
	if !f.ToDate.IsZero() {
		q.Set("toDate", f.ToDate.Format("2006-01-02"))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// TransactionAnalytics is the aggregate from the analytics endpoint.
type TransactionAnalytics struct {
	TotalBuys        int     `json:"totalBuys"`
	TotalSells       int     `json:"totalSells"`
	TotalBuyAmount   float64 `json:"totalBuyAmount"`
	TotalSellAmount  float64 `json:"totalSellAmount"`
	AverageBuyPrice  float64 `json:"averageBuyPrice"`
	AverageSellPrice float64 `json:"averageSellPrice"`
}
