package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/google/subcommands"
	"golang.org/x/term"

	"github.com/devnarayan/folio/internal/common"
	"github.com/devnarayan/folio/internal/models"
)

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read when it is piped.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "authenticate and store the session locally" }
func (*loginCmd) Usage() string {
	return `login -email <email> [-password <password>]

  Authenticates against the backend and persists the issued token pair.
  When -password is omitted it is prompted for without echo.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email (required)")
	f.StringVar(&c.password, "password", "", "Account password (prompted when omitted)")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		fmt.Fprintln(os.Stderr, "Error: -email is required")
		return subcommands.ExitUsageError
	}
	if c.password == "" {
		pw, err := promptPassword("Password")
		if err != nil {
			return fail(err)
		}
		c.password = pw
	}

	if err := application.Session.Login(ctx, c.email, c.password); err != nil {
		return fail(err)
	}

	user := application.Session.CurrentUser()
	fmt.Printf("Logged in as %s (%s)\n", user.FullName(), user.Email)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "end the session and clear stored credentials" }
func (*logoutCmd) Usage() string {
	return `logout

  Invalidates the server-side session (best effort) and clears the
  locally stored tokens.
`
}

func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := application.Session.Logout(ctx); err != nil {
		return fail(err)
	}
	fmt.Println("Logged out")
	return subcommands.ExitSuccess
}

type registerCmd struct {
	email     string
	password  string
	firstName string
	lastName  string
	phone     string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new account" }
func (*registerCmd) Usage() string {
	return `register -email <email> -first <name> -last <name> [-phone <phone>] [-password <password>]

  Creates an account. Registration does not log in; run 'folio login'
  afterwards to start a session.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email (required)")
	f.StringVar(&c.password, "password", "", "Account password (prompted when omitted)")
	f.StringVar(&c.firstName, "first", "", "First name (required)")
	f.StringVar(&c.lastName, "last", "", "Last name (required)")
	f.StringVar(&c.phone, "phone", "", "Phone number")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.firstName == "" || c.lastName == "" {
		fmt.Fprintln(os.Stderr, "Error: -email, -first and -last are required")
		return subcommands.ExitUsageError
	}
	if c.password == "" {
		pw, err := promptPassword("Password")
		if err != nil {
			return fail(err)
		}
		c.password = pw
	}

	user, err := application.Session.Register(ctx, models.RegisterRequest{
		Email:     c.email,
		Password:  c.password,
		FirstName: c.firstName,
		LastName:  c.lastName,
		Phone:     c.phone,
	})
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Account created for %s. Run 'folio login' to sign in.\n", user.Email)
	return subcommands.ExitSuccess
}

type whoamiCmd struct {
	stats bool
}

func (*whoamiCmd) Name() string     { return "whoami" }
func (*whoamiCmd) Synopsis() string { return "show the current session's user" }
func (*whoamiCmd) Usage() string {
	return `whoami [-stats]

  Prints the authenticated user. With -stats, also fetches account-wide
  aggregates from the backend.
`
}

func (c *whoamiCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.stats, "stats", false, "Include account statistics")
}

func (c *whoamiCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}

	user := application.Session.CurrentUser()
	fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
	if user.Phone != "" {
		fmt.Printf("Phone:  %s\n", user.Phone)
	}
	fmt.Printf("Member since %s\n", common.FormatDate(user.CreatedAt))

	if expiry, err := application.Gateway.AccessTokenExpiry(ctx); err == nil {
		fmt.Printf("Access token expires %s\n", common.FormatDateTime(expiry))
	}

	if c.stats {
		stats, err := application.Gateway.UserStats(ctx)
		if err != nil {
			return fail(err)
		}
		w := newTable()
		fmt.Fprintf(w, "Portfolios\t%d\n", stats.TotalPortfolios)
		fmt.Fprintf(w, "Investments\t%d\n", stats.TotalInvestments)
		fmt.Fprintf(w, "Transactions\t%d\n", stats.TotalTransactions)
		fmt.Fprintf(w, "Invested\t%s\n", currency(stats.TotalInvested))
		fmt.Fprintf(w, "Current value\t%s\n", currency(stats.TotalCurrentValue))
		fmt.Fprintf(w, "Gain/loss\t%s\n", currency(stats.TotalGainLoss))
		w.Flush()
	}
	return subcommands.ExitSuccess
}

type passwdCmd struct{}

func (*passwdCmd) Name() string     { return "passwd" }
func (*passwdCmd) Synopsis() string { return "change the account password" }
func (*passwdCmd) Usage() string {
	return `passwd

  Prompts for the current and new password and rotates the credential.
  The active session stays valid.
`
}

func (*passwdCmd) SetFlags(*flag.FlagSet) {}

func (*passwdCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if st := requireAuth(); st != subcommands.ExitSuccess {
		return st
	}

	current, err := promptPassword("Current password")
	if err != nil {
		return fail(err)
	}
	next, err := promptPassword("New password")
	if err != nil {
		return fail(err)
	}
	confirm, err := promptPassword("Confirm new password")
	if err != nil {
		return fail(err)
	}
	if next != confirm {
		fmt.Fprintln(os.Stderr, "Error: passwords do not match")
		return subcommands.ExitUsageError
	}

	if err := application.Session.ChangePassword(ctx, current, next); err != nil {
		return fail(err)
	}
	fmt.Println("Password changed")
	return subcommands.ExitSuccess
}
