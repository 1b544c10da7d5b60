package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/devnarayan/folio/internal/app"
	"github.com/devnarayan/folio/internal/common"
)

func printBanner(a *app.App) {
	common.PrintBanner(a.Config)
}

// fail prints an error, records it with the notifier, and maps it to a
// failing exit status.
func fail(err error) subcommands.ExitStatus {
	application.Notifier.Error(err.Error())
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// requireAuth aborts commands that need an active session.
func requireAuth() subcommands.ExitStatus {
	if !application.Session.IsAuthenticated() {
		fmt.Fprintln(os.Stderr, "Error: not logged in (run 'folio login')")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// newTable returns a tab-aligned writer on stdout. Callers must Flush.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// currency formats an amount in the configured display currency.
func currency(amount float64) string {
	return common.FormatCurrency(amount, application.Config.CLI.DisplayCurrency)
}
