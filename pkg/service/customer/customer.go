// Package customer provides business logic for customer management operations.
package customer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/demobank/ledger/pkg/domain"
	"github.com/demobank/ledger/pkg/domain/customer"
	"github.com/demobank/ledger/pkg/repository"
)

// Service provides business logic for customer operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// CreateCustomer registers a new customer in a transaction.
func (s *Service) CreateCustomer(
	ctx context.Context,
	firstName, lastName string,
) (c *customer.Customer, err error) {
	logger := s.logger.With("firstName", firstName, "lastName", lastName)
	logger.Info("CreateCustomer started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		c, err = customer.NewCustomer(firstName, lastName)
		if err != nil {
			return err
		}
		c.ID, err = repo.Save(ctx, c)
		return err
	})
	if err != nil {
		logger.Error("CreateCustomer failed", "error", err)
		return nil, err
	}
	logger.Info("CreateCustomer successful", "customerID", c.ID)
	return c, nil
}

// GetCustomer retrieves a customer by id.
func (s *Service) GetCustomer(
	ctx context.Context,
	id int64,
) (*customer.Customer, error) {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, err
	}
	c, err := repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, customer.ErrCustomerNotFound
	}
	return c, err
}
