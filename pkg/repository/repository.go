package repository

import (
	"context"

	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/domain/customer"
)

// AccountRepository defines the interface for account data access operations.
// Lookups of unknown numbers return domain.ErrNotFound.
type AccountRepository interface {
	Get(ctx context.Context, number int64) (*account.Account, error)
	// GetForUpdate reads the account and holds it for writing until the surrounding
	// unit of work ends, where the backend supports row locks.
	GetForUpdate(ctx context.Context, number int64) (*account.Account, error)
	// Save inserts the account when its Number is zero and assigns one; otherwise it
	// persists the balance of the existing account. It returns the account number.
	Save(ctx context.Context, a *account.Account) (int64, error)
}

// TransactionRepository defines the interface for ledger entry data access operations.
type TransactionRepository interface {
	// Insert appends tx and returns its assigned id.
	Insert(ctx context.Context, tx *account.Transaction) (int64, error)
	// ByAccountNumber returns every entry whose origin or destination is number,
	// in insertion order.
	ByAccountNumber(ctx context.Context, number int64) ([]*account.Transaction, error)
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	Get(ctx context.Context, id int64) (*customer.Customer, error)
	Save(ctx context.Context, c *customer.Customer) (int64, error)
}
