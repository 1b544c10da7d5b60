package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/models"
)

type txAddCmd struct {
	portfolioID  string
	investmentID string
	typ          string
	quantity     float64
	price        float64
	date         string
	notes        string
}

func (*txAddCmd) Name() string     { return "tx-add" }
func (*txAddCmd) Synopsis() string { return "record a buy or sell" }
func (*txAddCmd) Usage() string {
	return `tx-add -portfolio <id> -investment <id> -type BUY|SELL -qty <n> -price <p> [-date YYYY-MM-DD] [-notes <text>]

  The transaction amount is quantity times price.
`
}

func (c *txAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio", "", "Portfolio ID (required)")
	f.StringVar(&c.investmentID, "investment", "", "Investment ID (required)")
	f.StringVar(&c.typ, "type", string(models.TransactionTypeBuy), "Transaction type, BUY or SELL")
	f.Float64Var(&c.quantity, "qty", 0, "Quantity traded (required)")
	f.Float64Var(&c.price, "price", 0, "Price per unit (required)")
	f.StringVar(&c.date, "date", "", "Transaction date, YYYY-MM-DD (defaults to today)")
	f.StringVar(&c.notes, "notes", "", "Free-form notes")
}

func (c *txAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.portfolioID == "" || c.investmentID == "" || c.quantity <= 0 || c.price <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -portfolio, -investment, -qty and -price are required")
		return subcommands.ExitUsageError
	}

	date := time.Now()
	if c.date != "" {
		parsed, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -date %q: %v\n", c.date, err)
			return subcommands.ExitUsageError
		}
		date = parsed
	}

	created, err := application.PortfolioService.CreateTransaction(ctx, c.portfolioID, c.investmentID, models.CreateTransactionRequest{
		Type:            models.TransactionType(c.typ),
		Quantity:        c.quantity,
		Price:           c.price,
		Amount:          c.quantity * c.price,
		TransactionDate: date,
		Notes:           c.notes,
	})
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Recorded %s of %g @ %s (%s total), id %s\n",
		created.Type, created.Quantity, currency(created.Price), currency(created.Amount), created.ID)
	return subcommands.ExitSuccess
}

type txListCmd struct {
	portfolioID string
	typ         string
	from        string
	to          string
	page        int
	limit       int
}

func (*txListCmd) Name() string     { return "tx-list" }
func (*txListCmd) Synopsis() string { return "list transactions in a portfolio" }
func (*txListCmd) Usage() string {
	return `tx-list -portfolio <id> [-type BUY|SELL] [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-page <n>] [-limit <n>]

  Filters are applied server-side.
`
}

func (c *txListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio", "", "Portfolio ID (required)")
	f.StringVar(&c.typ, "type", "", "Filter by transaction type")
	f.StringVar(&c.from, "from", "", "Earliest transaction date")
	f.StringVar(&c.to, "to", "", "Latest transaction date")
	f.IntVar(&c.page, "page", 0, "Page number")
	f.IntVar(&c.limit, "limit", 0, "Page size")
}

func (c *txListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.portfolioID == "" {
		fmt.Fprintln(os.Stderr, "Error: -portfolio is required")
		return subcommands.ExitUsageError
	}

	filter := &models.TransactionFilter{
		Type:  models.TransactionType(c.typ),
		Page:  c.page,
		Limit: c.limit,
	}
	if c.from != "" {
		parsed, err := time.Parse("2006-01-02", c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -from %q: %v\n", c.from, err)
			return subcommands.ExitUsageError
		}
		filter.FromDate = parsed
	}
	if c.to != "" {
		parsed, err := time.Parse("2006-01-02", c.to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -to %q: %v\n", c.to, err)
			return subcommands.ExitUsageError
		}
		filter.ToDate = parsed
	}

	if err := application.PortfolioService.FetchTransactions(ctx, c.portfolioID, filter); err != nil {
		return fail(err)
	}

	transactions := application.PortfolioService.Transactions()
	if len(transactions) == 0 {
		fmt.Println("No transactions match.")
		return subcommands.ExitSuccess
	}

	w := newTable()
	fmt.Fprintln(w, "DATE\tTYPE\tQTY\tPRICE\tAMOUNT\tINVESTMENT")
	for i := range transactions {
		tx := &transactions[i]
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%s\t%s\n",
			common.FormatDate(tx.TransactionDate), tx.Type, tx.Quantity,
			currency(tx.Price), currency(tx.Amount), tx.InvestmentID)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

type txAnalyticsCmd struct {
	portfolioID string
}

func (*txAnalyticsCmd) Name() string     { return "tx-analytics" }
func (*txAnalyticsCmd) Synopsis() string { return "show trading aggregates for a portfolio" }
func (*txAnalyticsCmd) Usage() string {
	return `tx-analytics -portfolio <id>
`
}

func (c *txAnalyticsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio", "", "Portfolio ID (required)")
}

func (c *txAnalyticsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.portfolioID == "" {
		fmt.Fprintln(os.Stderr, "Error: -portfolio is required")
		return subcommands.ExitUsageError
	}

	analytics, err := application.Gateway.TransactionAnalytics(ctx, c.portfolioID)
	if err != nil {
		return fail(err)
	}

	w := newTable()
	fmt.Fprintln(w, "\tCOUNT\tAMOUNT\tAVG PRICE")
	fmt.Fprintf(w, "Buys\t%d\t%s\t%s\n", analytics.TotalBuys, currency(analytics.TotalBuyAmount), currency(analytics.AverageBuyPrice))
	fmt.Fprintf(w, "Sells\t%d\t%s\t%s\n", analytics.TotalSells, currency(analytics.TotalSellAmount), currency(analytics.AverageSellPrice))
	w.Flush()
	return subcommands.ExitSuccess
}
