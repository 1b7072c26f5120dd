// Package app wires the ledger services from their infrastructure dependencies.
package app

import (
	"errors"
	"log/slog"

	"github.com/demobank/ledger/pkg/config"
	"github.com/demobank/ledger/pkg/lock"
	"github.com/demobank/ledger/pkg/repository"
	"github.com/demobank/ledger/pkg/service/account"
	"github.com/demobank/ledger/pkg/service/customer"
	"github.com/demobank/ledger/pkg/service/transaction"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow    repository.UnitOfWork
	Locker lock.Locker
	Logger *slog.Logger

	closers []func() error
}

// OnClose registers fn to run when the dependencies are closed.
func (d *Deps) OnClose(fn func() error) {
	d.closers = append(d.closers, fn)
}

// Close releases the dependencies in reverse registration order.
func (d *Deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	d.closers = nil
	return errors.Join(errs...)
}

type App struct {
	Deps              *Deps
	Config            *config.App
	CustomerService   *customer.Service
	AccountService    *account.Service
	TransactionEngine *transaction.Engine
	Legacy            *transaction.Legacy
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	var opts []transaction.Option
	if cfg != nil && cfg.Engine != nil {
		opts = append(opts, transaction.WithConfig(transaction.Config{
			StoreTimeout:       cfg.Engine.StoreTimeout,
			LockTimeout:        cfg.Engine.LockTimeout,
			MaxRetries:         cfg.Engine.MaxRetries,
			RetryInterval:      cfg.Engine.RetryInterval,
			RejectSelfTransfer: cfg.Engine.RejectSelfTransfer,
		}))
	}
	app.TransactionEngine = transaction.New(deps.Uow, deps.Locker, deps.Logger, opts...)
	app.Legacy = transaction.NewLegacy(app.TransactionEngine)
	app.CustomerService = customer.New(deps.Uow, deps.Logger)
	app.AccountService = account.New(deps.Uow, app.TransactionEngine, deps.Logger)
	return app
}
