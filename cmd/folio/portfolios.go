package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/models"
)

type portfoliosCmd struct{}

func (*portfoliosCmd) Name() string     { return "portfolios" }
func (*portfoliosCmd) Synopsis() string { return "list portfolios" }
func (*portfoliosCmd) Usage() string {
	return `portfolios

  Lists all portfolios for the authenticated user.
`
}

func (*portfoliosCmd) SetFlags(*flag.FlagSet) {}

func (*portfoliosCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}

	if err := application.PortfolioService.FetchPortfolios(ctx); err != nil {
		return fail(err)
	}

	portfolios := application.PortfolioService.Portfolios()
	if len(portfolios) == 0 {
		fmt.Println("No portfolios. Create one with 'folio portfolio-create'.")
		return subcommands.ExitSuccess
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tCREATED")
	for i := range portfolios {
		p := &portfolios[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Description, common.FormatDate(p.CreatedAt))
	}
	w.Flush()
	return subcommands.ExitSuccess
}

type portfolioCreateCmd struct {
	name        string
	description string
}

func (*portfolioCreateCmd) Name() string     { return "portfolio-create" }
func (*portfolioCreateCmd) Synopsis() string { return "create a portfolio" }
func (*portfolioCreateCmd) Usage() string {
	return `portfolio-create -name <name> [-description <text>]
`
}

func (c *portfolioCreateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Portfolio name (required)")
	f.StringVar(&c.description, "description", "", "Portfolio description")
}

func (c *portfolioCreateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required")
		return subcommands.ExitUsageError
	}

	created, err := application.PortfolioService.CreatePortfolio(ctx, models.CreatePortfolioRequest{
		Name:        c.name,
		Description: c.description,
	})
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Created portfolio %q (%s)\n", created.Name, created.ID)
	return subcommands.ExitSuccess
}

type portfolioUpdateCmd struct {
	id          string
	name        string
	description string
}

func (*portfolioUpdateCmd) Name() string     { return "portfolio-update" }
func (*portfolioUpdateCmd) Synopsis() string { return "update a portfolio's name or description" }
func (*portfolioUpdateCmd) Usage() string {
	return `portfolio-update -id <id> [-name <name>] [-description <text>]

  Only the provided fields change; omitted fields are left untouched.
`
}

func (c *portfolioUpdateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Portfolio ID (required)")
	f.StringVar(&c.name, "name", "", "New name")
	f.StringVar(&c.description, "description", "", "New description")
}

func (c *portfolioUpdateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	var req models.UpdatePortfolioRequest
	if c.name != "" {
		req.Name = &c.name
	}
	if c.description != "" {
		req.Description = &c.description
	}
	if req.Name == nil && req.Description == nil {
		fmt.Fprintln(os.Stderr, "Error: nothing to update")
		return subcommands.ExitUsageError
	}

	if err := application.PortfolioService.UpdatePortfolio(ctx, c.id, req); err != nil {
		return fail(err)
	}
	fmt.Println("Portfolio updated")
	return subcommands.ExitSuccess
}

type portfolioDeleteCmd struct {
	id  string
	yes bool
}

func (*portfolioDeleteCmd) Name() string     { return "portfolio-delete" }
func (*portfolioDeleteCmd) Synopsis() string { return "delete a portfolio" }
func (*portfolioDeleteCmd) Usage() string {
	return `portfolio-delete -id <id> -yes

  Deletes a portfolio and everything in it. Requires -yes to confirm.
`
}

func (c *portfolioDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Portfolio ID (required)")
	f.BoolVar(&c.yes, "yes", false, "Confirm deletion")
}

func (c *portfolioDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: pass -yes to confirm deletion")
		return subcommands.ExitUsageError
	}

	if err := application.PortfolioService.DeletePortfolio(ctx, c.id); err != nil {
		return fail(err)
	}
	fmt.Println("Portfolio deleted")
	return subcommands.ExitSuccess
}

type portfolioStatsCmd struct {
	id string
}

func (*portfolioStatsCmd) Name() string     { return "portfolio-stats" }
func (*portfolioStatsCmd) Synopsis() string { return "show portfolio aggregates" }
func (*portfolioStatsCmd) Usage() string {
	return `portfolio-stats -id <id>
`
}

func (c *portfolioStatsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Portfolio ID (required)")
}

func (c *portfolioStatsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	stats, err := application.Gateway.PortfolioStats(ctx, c.id)
	if err != nil {
		return fail(err)
	}

	w := newTable()
	fmt.Fprintf(w, "Investments\t%d\n", stats.NumberOfInvestments)
	fmt.Fprintf(w, "Invested\t%s\n", currency(stats.TotalInvested))
	fmt.Fprintf(w, "Current value\t%s\n", currency(stats.TotalValue))
	fmt.Fprintf(w, "Gain/loss\t%s (%s)\n", currency(stats.TotalGainLoss), common.FormatPercent(stats.GainLossPercentage))
	w.Flush()
	return subcommands.ExitSuccess
}
