package memory

import (
	"context"

	"github.com/demobank/ledger/pkg/repository"
)

// UoW is the memory-backed repository.UnitOfWork. Outside Do each repository call
// commits on its own.
type UoW struct {
	store *Store
	sess  *session
}

// NewUoW creates a new UoW over store.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

var _ repository.UnitOfWork = (*UoW)(nil)

// Do runs fn against a fresh session and publishes its writes if fn succeeds and ctx
// is still live. A Do nested inside another joins the outer session.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.sess != nil {
		return fn(u)
	}
	txUow := &UoW{store: u.store, sess: newSession()}
	if err := fn(txUow); err != nil {
		return err
	}
	return u.store.commit(ctx, txUow.sess)
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepository{store: u.store, sess: u.sess}, nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepository{store: u.store, sess: u.sess}, nil
}

func (u *UoW) CustomerRepository() (repository.CustomerRepository, error) {
	return &customerRepository{store: u.store, sess: u.sess}, nil
}
