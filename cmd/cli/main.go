package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/demobank/ledger/infra/initializer"
	"github.com/demobank/ledger/pkg/app"
	"github.com/demobank/ledger/pkg/config"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  customer <first_name> <last_name>
  open <customer_id> [initial_credit]
  deposit <account_number> <amount>
  withdraw <account_number> <amount>
  transfer <from_account> <to_account> <amount>
  balance <account_number>
  history <account_number>`

var errUsage = errors.New("invalid usage")

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	headColor = color.New(color.FgCyan, color.Bold)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}
	cfg, err := config.Load(".env")
	if err != nil {
		errColor.Fprintln(os.Stderr, "Failed to load configuration:", err) //nolint: errcheck
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		errColor.Fprintln(os.Stderr, "Failed to initialize:", err) //nolint: errcheck
		os.Exit(1)
	}
	defer deps.Close() //nolint: errcheck

	if err := runCommand(context.Background(), app.New(deps, cfg), os.Args[1:], os.Stdout); err != nil {
		errColor.Fprintln(os.Stderr, "Error:", err) //nolint: errcheck
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		deps.Close() //nolint: errcheck
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, a *app.App, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "customer":
		if len(args) != 2 {
			return errUsage
		}
		c, err := a.CustomerService.CreateCustomer(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		okColor.Fprintf(w, "Customer created: ID=%d Name=%s\n", c.ID, c.FullName()) //nolint: errcheck
	case "open":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		customerID, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		credit := decimal.Zero
		if len(args) == 2 {
			if credit, err = parseAmount(args[1]); err != nil {
				return err
			}
		}
		acc, err := a.AccountService.CreateAccount(ctx, customerID, credit)
		if err != nil {
			return err
		}
		okColor.Fprintf(w, "Account opened: Number=%d Balance=%s\n", acc.Number, acc.Balance.StringFixed(2)) //nolint: errcheck
	case "deposit", "withdraw":
		if len(args) != 2 {
			return errUsage
		}
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		typ := account.TypeDeposit
		if cmd == "withdraw" {
			typ = account.TypeWithdraw
		}
		return submit(ctx, a, w, &account.Request{Type: typ, DestinationAccount: number, Value: amount})
	case "transfer":
		if len(args) != 3 {
			return errUsage
		}
		from, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		to, err := parseNumber(args[1])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		return submit(ctx, a, w, &account.Request{
			Type:               account.TypeTransfer,
			OriginAccount:      from,
			DestinationAccount: to,
			Value:              amount,
		})
	case "balance":
		if len(args) != 1 {
			return errUsage
		}
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		acc, err := a.AccountService.GetAccount(ctx, number)
		if err != nil {
			return err
		}
		okColor.Fprintf(w, "Account %d balance: %s\n", acc.Number, acc.Balance.StringFixed(2)) //nolint: errcheck
	case "history":
		if len(args) != 1 {
			return errUsage
		}
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		txs, err := a.AccountService.ListTransactions(ctx, number)
		if err != nil {
			return err
		}
		headColor.Fprintf(w, "%-8s %-9s %-8s %-8s %12s  %s\n", "ID", "TYPE", "FROM", "TO", "VALUE", "WHEN") //nolint: errcheck
		for _, tx := range txs {
			from := "-"
			if tx.OriginAccount != 0 {
				from = strconv.FormatInt(tx.OriginAccount, 10)
			}
			fmt.Fprintf(w, "%-8d %-9s %-8s %-8d %12s  %s\n", //nolint: errcheck
				tx.ID, tx.Type, from, tx.DestinationAccount, tx.Value.StringFixed(2), tx.When.Format("2006-01-02 15:04:05"))
		}
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	return nil
}

func submit(ctx context.Context, a *app.App, w io.Writer, req *account.Request) error {
	tx, err := a.TransactionEngine.CreateTransaction(ctx, req)
	if err != nil {
		return fmt.Errorf("%s rejected (%s): %w", req.Type, account.KindOf(err), err)
	}
	okColor.Fprintf(w, "%s accepted: ID=%d Value=%s\n", tx.Type, tx.ID, tx.Value.StringFixed(2)) //nolint: errcheck
	return nil
}

func parseNumber(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive number", errUsage, s)
	}
	return n, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", errUsage, s)
	}
	return d, nil
}
