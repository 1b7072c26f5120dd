package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/demobank/ledger/infra/repository/memory"
	"github.com/demobank/ledger/pkg/app"
	"github.com/demobank/ledger/pkg/config"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/lock"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *app.App {
	color.NoColor = true
	return app.New(&app.Deps{
		Uow:    memory.NewUoW(memory.NewStore()),
		Locker: lock.NewKeyed(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, &config.App{})
}

func TestRunCommand_Flow(t *testing.T) {
	a := newTestApp()
	ctx := context.Background()
	var out bytes.Buffer

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"customer", "Ada", "Lovelace"}, "Customer created: ID=1010 Name=Ada Lovelace"},
		{[]string{"open", "1010", "100"}, "Account opened: Number=1001 Balance=100.00"},
		{[]string{"open", "1010"}, "Account opened: Number=1002 Balance=0.00"},
		{[]string{"deposit", "1002", "5.5"}, "DEPOSIT accepted: ID=11002 Value=5.50"},
		{[]string{"transfer", "1001", "1002", "40"}, "TRANSFER accepted: ID=11003"},
		{[]string{"withdraw", "1001", "10"}, "WITHDRAW accepted: ID=11004"},
		{[]string{"balance", "1001"}, "Account 1001 balance: 50.00"},
		{[]string{"balance", "1002"}, "Account 1002 balance: 45.50"},
	}
	for _, step := range steps {
		out.Reset()
		require.NoError(t, runCommand(ctx, a, step.args, &out), step.args)
		assert.Contains(t, out.String(), step.want)
	}

	out.Reset()
	require.NoError(t, runCommand(ctx, a, []string{"history", "1002"}, &out))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	assert.Len(t, lines, 3, "header plus two transactions")
	assert.Contains(t, string(lines[2]), "TRANSFER")
}

func TestRunCommand_Errors(t *testing.T) {
	a := newTestApp()
	ctx := context.Background()
	var out bytes.Buffer

	assert.ErrorIs(t, runCommand(ctx, a, nil, &out), errUsage)
	assert.ErrorIs(t, runCommand(ctx, a, []string{"refund", "1"}, &out), errUsage)
	assert.ErrorIs(t, runCommand(ctx, a, []string{"deposit", "abc", "1"}, &out), errUsage)
	assert.ErrorIs(t, runCommand(ctx, a, []string{"deposit", "1001", "lots"}, &out), errUsage)
	assert.ErrorIs(t, runCommand(ctx, a, []string{"transfer", "1", "2"}, &out), errUsage)

	err := runCommand(ctx, a, []string{"deposit", "1001", "10"}, &out)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	assert.Contains(t, err.Error(), "AccountNotFound")

	assert.ErrorIs(t, runCommand(ctx, a, []string{"history", "1001"}, &out), account.ErrAccountNotFound)
	assert.Empty(t, out.String())
}
