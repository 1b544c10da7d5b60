package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/models"
	"github.com/devnarayan/folio/internal/services/portfolio"
)

type dashboardCmd struct {
	portfolioID string
	performers  bool
	limit       int
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show aggregate totals across all portfolios" }
func (*dashboardCmd) Usage() string {
	return `dashboard [-portfolio <id> -performers [-limit <n>]]

  Fetches the account-wide summary: totals plus a per-portfolio breakdown.
  With -performers, shows the best and worst holdings of one portfolio
  instead.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio", "", "Portfolio ID (required with -performers)")
	f.BoolVar(&c.performers, "performers", false, "Show top and bottom performers for -portfolio")
	f.IntVar(&c.limit, "limit", 5, "How many performers to list per table")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}

	if c.performers {
		if c.portfolioID == "" {
			fmt.Fprintln(os.Stderr, "Error: -performers requires -portfolio")
			return subcommands.ExitUsageError
		}
		return c.executePerformers(ctx)
	}

	if err := application.PortfolioService.FetchDashboardSummary(ctx); err != nil {
		return fail(err)
	}
	summary := application.PortfolioService.Summary()
	if summary == nil {
		fmt.Println("No dashboard data.")
		return subcommands.ExitSuccess
	}

	fmt.Printf("Portfolios: %d   Invested: %s   Value: %s   Profit: %s (%s)\n\n",
		summary.TotalPortfolios, currency(summary.TotalInvested), currency(summary.TotalValue),
		currency(summary.TotalProfit), common.FormatPercent(summary.TotalProfitPercent))

	if len(summary.Portfolios) == 0 {
		return subcommands.ExitSuccess
	}

	w := newTable()
	fmt.Fprintln(w, "PORTFOLIO\tINVESTED\tVALUE\tPROFIT")
	for i := range summary.Portfolios {
		p := &summary.Portfolios[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s (%s)\n",
			p.PortfolioName, currency(p.TotalInvested), currency(p.TotalValue),
			currency(p.Profit), common.FormatPercent(p.ProfitPercent))
	}
	w.Flush()
	return subcommands.ExitSuccess
}

func (c *dashboardCmd) executePerformers(ctx context.Context) subcommands.ExitStatus {
	top, err := application.Gateway.TopPerformers(ctx, c.portfolioID, c.limit)
	if err != nil {
		return fail(err)
	}
	bottom, err := application.Gateway.BottomPerformers(ctx, c.portfolioID, c.limit)
	if err != nil {
		return fail(err)
	}

	printPerformers := func(heading string, investments []models.Investment) {
		fmt.Println(heading)
		if len(investments) == 0 {
			fmt.Println("  (none)")
			return
		}
		w := newTable()
		for i := range investments {
			inv := &investments[i]
			fmt.Fprintf(w, "  %s\t%s\t%s (%s)\n",
				inv.Symbol, inv.Name,
				currency(inv.GainLoss()), common.FormatPercent(inv.GainLossPercent()))
		}
		w.Flush()
	}

	printPerformers("Top performers:", top)
	fmt.Println()
	printPerformers("Bottom performers:", bottom)
	return subcommands.ExitSuccess
}

type chartCmd struct {
	portfolioID string
	kind        string
	out         string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render a portfolio chart to a PNG file" }
func (*chartCmd) Usage() string {
	return `chart -portfolio <id> [-kind performance|allocation] [-out <file.png>]

  Renders the portfolio's value-over-time line chart or its allocation
  donut from the dashboard endpoints.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio", "", "Portfolio ID (required)")
	f.StringVar(&c.kind, "kind", "performance", "Chart kind: performance or allocation")
	f.StringVar(&c.out, "out", "", "Output file (defaults to <kind>.png)")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.portfolioID == "" {
		fmt.Fprintln(os.Stderr, "Error: -portfolio is required")
		return subcommands.ExitUsageError
	}

	var (
		png []byte
		err error
	)
	switch c.kind {
	case "performance":
		points, perr := application.Gateway.PortfolioPerformance(ctx, c.portfolioID)
		if perr != nil {
			return fail(perr)
		}
		png, err = portfolio.RenderPerformanceChart("Portfolio Performance", points)
	case "allocation":
		slices, aerr := application.Gateway.PortfolioAllocation(ctx, c.portfolioID)
		if aerr != nil {
			return fail(aerr)
		}
		png, err = portfolio.RenderAllocationChart("Portfolio Allocation", slices)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown -kind %q\n", c.kind)
		return subcommands.ExitUsageError
	}
	if err != nil {
		return fail(err)
	}

	out := c.out
	if out == "" {
		out = c.kind + ".png"
	}
	if err := os.WriteFile(out, png, 0644); err != nil {
		return fail(err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", out, len(png))
	return subcommands.ExitSuccess
}
