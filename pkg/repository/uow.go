package repository

import "context"

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Repositories obtained from the UnitOfWork passed to fn share one session, so every
// write made inside fn commits or rolls back together.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	CustomerRepository() (CustomerRepository, error)
}
