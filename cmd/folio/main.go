// Command folio is the CLI for the Folio portfolio-management backend:
// authenticate, manage portfolios, record transactions, and render
// dashboard views from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/devnarayan/folio/internal/app"
)

// As a short-lived CLI process, a single package-level app instance is fine.
var application *app.App

var (
	configPath = flag.String("config", "", "Path to folio.toml (defaults to FOLIO_CONFIG, then binary dir)")
	showBanner = flag.Bool("banner", false, "Print the startup banner")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&loginCmd{}, "auth")
	subcommands.Register(&logoutCmd{}, "auth")
	subcommands.Register(&registerCmd{}, "auth")
	subcommands.Register(&whoamiCmd{}, "auth")
	subcommands.Register(&passwdCmd{}, "auth")

	subcommands.Register(&portfoliosCmd{}, "portfolios")
	subcommands.Register(&portfolioCreateCmd{}, "portfolios")
	subcommands.Register(&portfolioUpdateCmd{}, "portfolios")
	subcommands.Register(&portfolioDeleteCmd{}, "portfolios")
	subcommands.Register(&portfolioStatsCmd{}, "portfolios")

	subcommands.Register(&investmentsCmd{}, "investments")
	subcommands.Register(&investmentAddCmd{}, "investments")
	subcommands.Register(&investmentUpdateCmd{}, "investments")
	subcommands.Register(&investmentRemoveCmd{}, "investments")

	subcommands.Register(&txAddCmd{}, "transactions")
	subcommands.Register(&txListCmd{}, "transactions")
	subcommands.Register(&txAnalyticsCmd{}, "transactions")

	subcommands.Register(&dashboardCmd{}, "dashboard")
	subcommands.Register(&chartCmd{}, "dashboard")
	subcommands.Register(&versionCmd{}, "")

	flag.Parse()

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()
	application = a

	if *showBanner {
		a.Logger.Debug().Msg("Showing banner")
		printBanner(a)
	}

	ctx := context.Background()
	if err := a.Restore(ctx); err != nil {
		a.Logger.Warn().Err(err).Msg("Session restore failed")
	}

	os.Exit(int(subcommands.Execute(ctx)))
}
