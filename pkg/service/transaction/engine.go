// Package transaction implements the transaction engine: validation and atomic
// execution of deposits, withdrawals and transfers, and account history queries.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/demobank/ledger/pkg/domain"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/lock"
	"github.com/demobank/ledger/pkg/repository"
)

// Engine validates and executes money movements.
type Engine struct {
	uow    repository.UnitOfWork
	locker lock.Locker
	logger *slog.Logger
	cfg    Config
	now    func() time.Time
}

// New creates an Engine. A nil locker falls back to an in-process keyed lock.
func New(
	uow repository.UnitOfWork,
	locker lock.Locker,
	logger *slog.Logger,
	opts ...Option,
) *Engine {
	if locker == nil {
		locker = lock.NewKeyed()
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		uow:    uow,
		locker: locker,
		logger: logger,
		cfg:    DefaultConfig(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateTransaction validates req and, if accepted, records the transaction and
// applies its balance changes as one atomic unit. Rejected requests change nothing.
func (e *Engine) CreateTransaction(
	ctx context.Context,
	req *account.Request,
) (tx *account.Transaction, err error) {
	logger := e.logger.With(requestAttrs(req)...)
	logger.Info("CreateTransaction started")
	defer func() {
		switch {
		case err == nil:
			logger.Info("CreateTransaction successful", "transactionID", tx.ID)
		case account.IsRejection(err):
			logger.Warn("CreateTransaction failed: rejected", "kind", account.KindOf(err).String(), "error", err)
		default:
			logger.Error("CreateTransaction failed", "error", err)
		}
	}()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if e.cfg.RejectSelfTransfer &&
		req.Type == account.TypeTransfer &&
		req.OriginAccount == req.DestinationAccount {
		return nil, account.ErrSameAccount
	}

	lockCtx, cancel := context.WithTimeout(ctx, e.cfg.LockTimeout)
	unlock, err := e.locker.Lock(lockCtx, req.Accounts()...)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", account.ErrStoreUnavailable, err)
	}
	defer unlock()

	err = e.retry(ctx, logger, func(attemptCtx context.Context) error {
		var applyErr error
		tx, applyErr = e.apply(attemptCtx, req)
		return applyErr
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// TransactionsByAccountNumber returns every transaction where number is the origin or
// the destination, in store order. An existing account without history yields an
// empty, non-nil slice.
func (e *Engine) TransactionsByAccountNumber(
	ctx context.Context,
	number int64,
) (txs []*account.Transaction, err error) {
	logger := e.logger.With("accountNumber", number)
	logger.Info("TransactionsByAccountNumber started")
	defer func() {
		if err != nil {
			logger.Warn("TransactionsByAccountNumber failed", "error", err)
		} else {
			logger.Info("TransactionsByAccountNumber successful", "count", len(txs))
		}
	}()

	if number <= 0 {
		return nil, account.ErrAccountNotFound
	}
	err = e.retry(ctx, logger, func(attemptCtx context.Context) error {
		return e.uow.Do(attemptCtx, func(uow repository.UnitOfWork) error {
			accRepo, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			txRepo, err := uow.TransactionRepository()
			if err != nil {
				return err
			}
			if _, err := loadAccount(attemptCtx, accRepo.Get, number); err != nil {
				return err
			}
			txs, err = txRepo.ByAccountNumber(attemptCtx, number)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []*account.Transaction{}
	}
	return txs, nil
}

// apply executes req inside one unit of work.
func (e *Engine) apply(ctx context.Context, req *account.Request) (*account.Transaction, error) {
	var tx *account.Transaction
	err := e.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		switch req.Type {
		case account.TypeDeposit:
			tx, err = e.deposit(ctx, accRepo, txRepo, req)
		case account.TypeWithdraw:
			tx, err = e.withdraw(ctx, accRepo, txRepo, req)
		case account.TypeTransfer:
			tx, err = e.transfer(ctx, accRepo, txRepo, req)
		default:
			err = account.ErrUnsupportedOperation
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (e *Engine) deposit(
	ctx context.Context,
	accRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
	req *account.Request,
) (*account.Transaction, error) {
	dest, err := loadAccount(ctx, accRepo.GetForUpdate, req.DestinationAccount)
	if err != nil {
		return nil, err
	}
	tx, err := e.record(ctx, txRepo, req)
	if err != nil {
		return nil, err
	}
	dest.Credit(req.Value)
	if _, err := accRepo.Save(ctx, dest); err != nil {
		return nil, err
	}
	return tx, nil
}

func (e *Engine) withdraw(
	ctx context.Context,
	accRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
	req *account.Request,
) (*account.Transaction, error) {
	acc, err := loadAccount(ctx, accRepo.GetForUpdate, req.DestinationAccount)
	if err != nil {
		return nil, err
	}
	if !acc.CanDebit(req.Value) {
		return nil, account.ErrInsufficientBalance
	}
	tx, err := e.record(ctx, txRepo, req)
	if err != nil {
		return nil, err
	}
	if err := acc.Debit(req.Value); err != nil {
		return nil, err
	}
	if _, err := accRepo.Save(ctx, acc); err != nil {
		return nil, err
	}
	return tx, nil
}

func (e *Engine) transfer(
	ctx context.Context,
	accRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
	req *account.Request,
) (*account.Transaction, error) {
	origin, err := loadAccount(ctx, accRepo.GetForUpdate, req.OriginAccount)
	if err != nil {
		return nil, err
	}
	if _, err := loadAccount(ctx, accRepo.GetForUpdate, req.DestinationAccount); err != nil {
		return nil, err
	}
	if !origin.CanDebit(req.Value) {
		return nil, account.ErrInsufficientBalance
	}
	tx, err := e.record(ctx, txRepo, req)
	if err != nil {
		return nil, err
	}
	if err := origin.Debit(req.Value); err != nil {
		return nil, err
	}
	if _, err := accRepo.Save(ctx, origin); err != nil {
		return nil, err
	}
	// Re-read so a self-transfer credits the debited balance and nets to zero.
	dest, err := loadAccount(ctx, accRepo.GetForUpdate, req.DestinationAccount)
	if err != nil {
		return nil, err
	}
	dest.Credit(req.Value)
	if _, err := accRepo.Save(ctx, dest); err != nil {
		return nil, err
	}
	return tx, nil
}

func (e *Engine) record(
	ctx context.Context,
	txRepo repository.TransactionRepository,
	req *account.Request,
) (*account.Transaction, error) {
	tx := account.NewTransaction(req, e.now())
	id, err := txRepo.Insert(ctx, tx)
	if err != nil {
		return nil, err
	}
	tx.ID = id
	return tx, nil
}

func loadAccount(
	ctx context.Context,
	get func(context.Context, int64) (*account.Account, error),
	number int64,
) (*account.Account, error) {
	acc, err := get(ctx, number)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", account.ErrAccountNotFound, number)
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// retry runs op under a per-attempt timeout, retrying transient store failures with
// exponential backoff.
func (e *Engine) retry(ctx context.Context, logger *slog.Logger, op func(context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.cfg.RetryInterval
	b.MaxElapsedTime = 0
	b.Reset()

	attempt := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
		defer cancel()
		return e.classify(ctx, op(attemptCtx))
	}
	notify := func(err error, next time.Duration) {
		logger.Warn("store attempt failed, retrying", "error", err, "backoff", next)
	}
	return backoff.RetryNotify(
		attempt,
		backoff.WithContext(backoff.WithMaxRetries(b, e.cfg.MaxRetries), ctx),
		notify,
	)
}

// classify maps an attempt error onto the engine taxonomy. Only store failures seen
// while the caller's context is live are retried.
func (e *Engine) classify(parent context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case account.IsRejection(err):
		return backoff.Permanent(err)
	case parent.Err() != nil:
		return backoff.Permanent(parent.Err())
	case errors.Is(err, domain.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", account.ErrStoreUnavailable, err)
	default:
		return backoff.Permanent(fmt.Errorf("%w: %w", account.ErrStoreUnavailable, err))
	}
}

func requestAttrs(req *account.Request) []any {
	if req == nil {
		return []any{"request", nil}
	}
	return []any{
		"type", req.Type,
		"originAccount", req.OriginAccount,
		"destinationAccount", req.DestinationAccount,
		"value", req.Value.String(),
	}
}
