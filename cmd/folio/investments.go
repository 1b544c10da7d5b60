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

type investmentsCmd struct {
	portfolioID string
	performance string
}

func (*investmentsCmd) Name() string     { return "investments" }
func (*investmentsCmd) Synopsis() string { return "list holdings in a portfolio" }
func (*investmentsCmd) Usage() string {
	return `investments -portfolio <id> [-performance <investment-id>]

  Lists the holdings of a portfolio with cost basis, market value and
  gain/loss. With -performance, shows the backend's performance view for
  a single holding instead.
`
}

func (c *investmentsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio", "", "Portfolio ID (required)")
	f.StringVar(&c.performance, "performance", "", "Show performance for this investment ID")
}

func (c *investmentsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.portfolioID == "" {
		fmt.Fprintln(os.Stderr, "Error: -portfolio is required")
		return subcommands.ExitUsageError
	}

	if c.performance != "" {
		perf, err := application.Gateway.InvestmentPerformance(ctx, c.portfolioID, c.performance)
		if err != nil {
			return fail(err)
		}
		w := newTable()
		fmt.Fprintf(w, "Invested\t%s\n", currency(perf.Invested))
		fmt.Fprintf(w, "Current value\t%s\n", currency(perf.CurrentValue))
		fmt.Fprintf(w, "Profit\t%s (%s)\n", currency(perf.Profit), common.FormatPercent(perf.ProfitPercent))
		if perf.DayChange != 0 || perf.DayChangePct != 0 {
			fmt.Fprintf(w, "Day change\t%s (%s)\n", currency(perf.DayChange), common.FormatPercent(perf.DayChangePct))
		}
		w.Flush()
		return subcommands.ExitSuccess
	}

	if err := application.PortfolioService.FetchInvestments(ctx, c.portfolioID); err != nil {
		return fail(err)
	}

	investments := application.PortfolioService.Investments()
	if len(investments) == 0 {
		fmt.Println("No investments in this portfolio.")
		return subcommands.ExitSuccess
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tSYMBOL\tNAME\tTYPE\tQTY\tINVESTED\tVALUE\tGAIN/LOSS")
	for i := range investments {
		inv := &investments[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%s\t%s\t%s (%s)\n",
			inv.ID, inv.Symbol, inv.Name, inv.Type, inv.Quantity,
			currency(inv.CostBasis()), currency(inv.MarketValue()),
			currency(inv.GainLoss()), common.FormatPercent(inv.GainLossPercent()))
	}
	fmt.Fprintf(w, "\tTOTAL\t\t\t\t%s\t%s\t\n",
		currency(models.InvestmentsInvested(investments)),
		currency(models.InvestmentsValue(investments)))
	w.Flush()
	return subcommands.ExitSuccess
}

type investmentAddCmd struct {
	portfolioID   string
	name          string
	symbol        string
	typ           string
	quantity      float64
	purchasePrice float64
	currentPrice  float64
	purchaseDate  string
	notes         string
	sipAmount     float64
	sipStart      string
	sipDuration   int
}

func (*investmentAddCmd) Name() string     { return "investment-add" }
func (*investmentAddCmd) Synopsis() string { return "add a holding to a portfolio" }
func (*investmentAddCmd) Usage() string {
	return `investment-add -portfolio <id> -name <name> -symbol <sym> -type <type> -qty <n> -price <p> [flags]

  Types: STOCK, MUTUAL_FUND, BOND, CRYPTOCURRENCY.
  Pass -sip-amount, -sip-start and -sip-duration together to record a
  systematic investment plan.
`
}

func (c *investmentAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio", "", "Portfolio ID (required)")
	f.StringVar(&c.name, "name", "", "Investment name (required)")
	f.StringVar(&c.symbol, "symbol", "", "Ticker symbol (required)")
	f.StringVar(&c.typ, "type", string(models.InvestmentTypeStock), "Investment type")
	f.Float64Var(&c.quantity, "qty", 0, "Quantity held (required)")
	f.Float64Var(&c.purchasePrice, "price", 0, "Purchase price per unit (required)")
	f.Float64Var(&c.currentPrice, "current", 0, "Current price per unit (defaults to purchase price)")
	f.StringVar(&c.purchaseDate, "date", "", "Purchase date, YYYY-MM-DD (defaults to today)")
	f.StringVar(&c.notes, "notes", "", "Free-form notes")
	f.Float64Var(&c.sipAmount, "sip-amount", 0, "Recurring plan amount")
	f.StringVar(&c.sipStart, "sip-start", "", "Recurring plan start date, YYYY-MM-DD")
	f.IntVar(&c.sipDuration, "sip-duration", 0, "Recurring plan duration in months")
}

func (c *investmentAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.portfolioID == "" || c.name == "" || c.symbol == "" || c.quantity <= 0 || c.purchasePrice <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -portfolio, -name, -symbol, -qty and -price are required")
		return subcommands.ExitUsageError
	}

	purchaseDate := time.Now()
	if c.purchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", c.purchaseDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -date %q: %v\n", c.purchaseDate, err)
			return subcommands.ExitUsageError
		}
		purchaseDate = parsed
	}

	currentPrice := c.currentPrice
	if currentPrice == 0 {
		currentPrice = c.purchasePrice
	}

	req := models.CreateInvestmentRequest{
		Name:          c.name,
		Symbol:        c.symbol,
		Type:          models.InvestmentType(c.typ),
		Quantity:      c.quantity,
		PurchasePrice: c.purchasePrice,
		CurrentPrice:  currentPrice,
		PurchaseDate:  purchaseDate,
		Notes:         c.notes,
	}
	if c.sipAmount > 0 {
		start, err := time.Parse("2006-01-02", c.sipStart)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -sip-start %q: %v\n", c.sipStart, err)
			return subcommands.ExitUsageError
		}
		req.IsSIP = true
		req.SIPAmount = c.sipAmount
		req.SIPStartDate = &start
		req.SIPDuration = c.sipDuration
	}

	created, err := application.PortfolioService.CreateInvestment(ctx, c.portfolioID, req)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Added %s (%s) to portfolio, id %s\n", created.Name, created.Symbol, created.ID)
	return subcommands.ExitSuccess
}

type investmentUpdateCmd struct {
	portfolioID  string
	id           string
	name         string
	symbol       string
	quantity     float64
	currentPrice float64
	notes        string
}

func (*investmentUpdateCmd) Name() string     { return "investment-update" }
func (*investmentUpdateCmd) Synopsis() string { return "update a holding" }
func (*investmentUpdateCmd) Usage() string {
	return `investment-update -portfolio <id> -id <id> [-name <n>] [-symbol <s>] [-qty <n>] [-current <p>] [-notes <text>]

  Only the provided fields change.
`
}

func (c *investmentUpdateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio", "", "Portfolio ID (required)")
	f.StringVar(&c.id, "id", "", "Investment ID (required)")
	f.StringVar(&c.name, "name", "", "New name")
	f.StringVar(&c.symbol, "symbol", "", "New symbol")
	f.Float64Var(&c.quantity, "qty", 0, "New quantity")
	f.Float64Var(&c.currentPrice, "current", 0, "New current price")
	f.StringVar(&c.notes, "notes", "", "New notes")
}

func (c *investmentUpdateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.portfolioID == "" || c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -portfolio and -id are required")
		return subcommands.ExitUsageError
	}

	var req models.UpdateInvestmentRequest
	if c.name != "" {
		req.Name = &c.name
	}
	if c.symbol != "" {
		req.Symbol = &c.symbol
	}
	if c.quantity > 0 {
		req.Quantity = &c.quantity
	}
	if c.currentPrice > 0 {
		req.CurrentPrice = &c.currentPrice
	}
	if c.notes != "" {
		req.Notes = &c.notes
	}
	if req.Name == nil && req.Symbol == nil && req.Quantity == nil && req.CurrentPrice == nil && req.Notes == nil {
		fmt.Fprintln(os.Stderr, "Error: nothing to update")
		return subcommands.ExitUsageError
	}

	if err := application.PortfolioService.UpdateInvestment(ctx, c.portfolioID, c.id, req); err != nil {
		return fail(err)
	}
	fmt.Println("Investment updated")
	return subcommands.ExitSuccess
}

type investmentRemoveCmd struct {
	portfolioID string
	id          string
	yes         bool
}

func (*investmentRemoveCmd) Name() string     { return "investment-remove" }
func (*investmentRemoveCmd) Synopsis() string { return "remove a holding from a portfolio" }
func (*investmentRemoveCmd) Usage() string {
	return `investment-remove -portfolio <id> -id <id> -yes
`
}

func (c *investmentRemoveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio", "", "Portfolio ID (required)")
	f.StringVar(&c.id, "id", "", "Investment ID (required)")
	f.BoolVar(&c.yes, "yes", false, "Confirm removal")
}

func (c *investmentRemoveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.portfolioID == "" || c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -portfolio and -id are required")
		return subcommands.ExitUsageError
	}
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: pass -yes to confirm removal")
		return subcommands.ExitUsageError
	}

	if err := application.PortfolioService.DeleteInvestment(ctx, c.portfolioID, c.id); err != nil {
		return fail(err)
	}
	fmt.Println("Investment removed")
	return subcommands.ExitSuccess
}
