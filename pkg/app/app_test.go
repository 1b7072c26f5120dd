package app_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/demobank/ledger/infra/repository/memory"
	"github.com/demobank/ledger/pkg/app"
	"github.com/demobank/ledger/pkg/config"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/lock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresServices(t *testing.T) {
	deps := &app.Deps{
		Uow:    memory.NewUoW(memory.NewStore()),
		Locker: lock.NewKeyed(),
		Logger: slog.Default(),
	}
	cfg := &config.App{Engine: &config.Engine{
		StoreTimeout:       time.Second,
		MaxRetries:         1,
		RejectSelfTransfer: true,
	}}
	a := app.New(deps, cfg)
	ctx := context.Background()

	c, err := a.CustomerService.CreateCustomer(ctx, "Grace", "Hopper")
	require.NoError(t, err)
	acc, err := a.AccountService.CreateAccount(ctx, c.ID, decimal.NewFromInt(10))
	require.NoError(t, err)

	_, err = a.TransactionEngine.CreateTransaction(ctx, &account.Request{
		Type:               account.TypeTransfer,
		OriginAccount:      acc.Number,
		DestinationAccount: acc.Number,
		Value:              decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, account.ErrSameAccount, "engine config is applied")

	assert.Len(t, a.Legacy.TransactionsByAccountNumber(ctx, acc.Number), 1)
}

func TestDeps_CloseRunsInReverse(t *testing.T) {
	var order []int
	deps := &app.Deps{}
	deps.OnClose(func() error { order = append(order, 1); return nil })
	deps.OnClose(func() error { order = append(order, 2); return errors.New("boom") })

	err := deps.Close()
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, deps.Close())
}
