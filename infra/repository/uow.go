package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/demobank/ledger/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the transaction's session.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():     func(db *gorm.DB) any { return NewAccountRepository(db) },
			reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem(): func(db *gorm.DB) any { return NewTransactionRepository(db) },
			reflect.TypeOf((*repository.CustomerRepository)(nil)).Elem():    func(db *gorm.DB) any { return NewCustomerRepository(db) },
		},
	}
}

var _ repository.UnitOfWork = (*UoW)(nil)

// Do runs the given function in a database transaction. A Do nested inside another
// joins the outer transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
	return MapGormErrorToDomain(err)
}

// GetRepository returns the repository registered for repoType, bound to the current
// session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.AccountRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.AccountRepository), nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.TransactionRepository), nil
}

func (u *UoW) CustomerRepository() (repository.CustomerRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.CustomerRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.CustomerRepository), nil
}
