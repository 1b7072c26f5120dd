// Package account provides business logic for opening and reading accounts.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/demobank/ledger/pkg/domain"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/domain/customer"
	"github.com/demobank/ledger/pkg/repository"
	"github.com/demobank/ledger/pkg/service/transaction"
	"github.com/shopspring/decimal"
)

// ErrInitialCreditFailed is returned alongside a created account whose opening
// deposit could not be applied.
var ErrInitialCreditFailed = errors.New("initial credit failed")

// Service provides business logic for account operations.
type Service struct {
	uow    repository.UnitOfWork
	engine *transaction.Engine
	logger *slog.Logger
}

// New creates a new Service. Initial credits are posted through engine so they
// show up in the account history as deposits.
func New(
	uow repository.UnitOfWork,
	engine *transaction.Engine,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		engine: engine,
		logger: logger,
	}
}

// CreateAccount opens a zero-balance account for customerID and, when
// initialCredit is positive, deposits it. If the deposit fails the account
// still exists and is returned together with ErrInitialCreditFailed.
func (s *Service) CreateAccount(
	ctx context.Context,
	customerID int64,
	initialCredit decimal.Decimal,
) (acc *account.Account, err error) {
	logger := s.logger.With("customerID", customerID, "initialCredit", initialCredit.String())
	logger.Info("CreateAccount started")

	if initialCredit.IsNegative() {
		logger.Error("CreateAccount failed: negative initial credit")
		return nil, account.ErrInvalidAmount
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customerRepo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if _, err := customerRepo.Get(ctx, customerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return customer.ErrCustomerNotFound
			}
			return err
		}
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = account.New().WithCustomerID(customerID).Build()
		if err != nil {
			return err
		}
		acc.Number, err = accRepo.Save(ctx, acc)
		return err
	})
	if err != nil {
		logger.Error("CreateAccount failed", "error", err)
		return nil, err
	}
	logger = logger.With("accountNumber", acc.Number)

	if !initialCredit.IsPositive() {
		logger.Info("CreateAccount successful")
		return acc, nil
	}

	if _, err = s.engine.CreateTransaction(ctx, &account.Request{
		Type:               account.TypeDeposit,
		DestinationAccount: acc.Number,
		Value:              initialCredit,
	}); err != nil {
		logger.Error("CreateAccount initial credit failed", "error", err)
		return acc, fmt.Errorf("%w: %w", ErrInitialCreditFailed, err)
	}
	acc.Balance = initialCredit
	logger.Info("CreateAccount successful")
	return acc, nil
}

// GetAccount retrieves an account by number.
func (s *Service) GetAccount(
	ctx context.Context,
	number int64,
) (*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acc, err := repo.Get(ctx, number)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", account.ErrAccountNotFound, number)
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// ListTransactions returns the history of an account.
func (s *Service) ListTransactions(
	ctx context.Context,
	number int64,
) ([]*account.Transaction, error) {
	return s.engine.TransactionsByAccountNumber(ctx, number)
}
