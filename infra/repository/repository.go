package repository

import (
	"context"
	"time"

	"github.com/demobank/ledger/pkg/domain"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/domain/customer"
	"github.com/demobank/ledger/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository bound to db.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, number int64) (*account.Account, error) {
	return r.get(r.db.WithContext(ctx), number)
}

// GetForUpdate takes a row lock on Postgres. SQLite serializes writers itself.
func (r *accountRepository) GetForUpdate(ctx context.Context, number int64) (*account.Account, error) {
	db := r.db.WithContext(ctx)
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.get(db, number)
}

func (r *accountRepository) get(db *gorm.DB, number int64) (*account.Account, error) {
	var m Account
	if err := WrapError(func() error {
		return db.First(&m, "number = ?", number).Error
	}); err != nil {
		return nil, err
	}
	return mapAccountModelToDomain(&m), nil
}

func (r *accountRepository) Save(ctx context.Context, a *account.Account) (int64, error) {
	now := time.Now().UTC()
	if a.Number == 0 {
		m := Account{
			CustomerID: a.CustomerID,
			Balance:    Amount{a.Balance},
			CreatedAt:  a.CreatedAt,
			UpdatedAt:  now,
		}
		if err := WrapError(func() error {
			return r.db.WithContext(ctx).Create(&m).Error
		}); err != nil {
			return 0, err
		}
		a.Number, a.CreatedAt, a.UpdatedAt = m.Number, m.CreatedAt, m.UpdatedAt
		return a.Number, nil
	}

	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("number = ?", a.Number).
		Updates(map[string]any{"balance": Amount{a.Balance}, "updated_at": now})
	if err := MapGormErrorToDomain(res.Error); err != nil {
		return 0, err
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrNotFound
	}
	a.UpdatedAt = now
	return a.Number, nil
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a ledger entry repository bound to db.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Insert(ctx context.Context, tx *account.Transaction) (int64, error) {
	m := mapTransactionDomainToModel(tx)
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	}); err != nil {
		return 0, err
	}
	tx.ID = m.ID
	return m.ID, nil
}

func (r *transactionRepository) ByAccountNumber(ctx context.Context, number int64) ([]*account.Transaction, error) {
	var rows []Transaction
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("origin_account = ? OR destination_account = ?", number, number).
			Order("id ASC").
			Find(&rows).Error
	}); err != nil {
		return nil, err
	}
	out := make([]*account.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, mapTransactionModelToDomain(&rows[i]))
	}
	return out, nil
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository bound to db.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Get(ctx context.Context, id int64) (*customer.Customer, error) {
	var m Customer
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	}); err != nil {
		return nil, err
	}
	return &customer.Customer{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *customerRepository) Save(ctx context.Context, c *customer.Customer) (int64, error) {
	m := Customer{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		CreatedAt: c.CreatedAt,
	}
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Save(&m).Error
	}); err != nil {
		return 0, err
	}
	c.ID = m.ID
	return m.ID, nil
}

func mapAccountModelToDomain(m *Account) *account.Account {
	return &account.Account{
		Number:     m.Number,
		CustomerID: m.CustomerID,
		Balance:    m.Balance.Decimal,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func mapTransactionDomainToModel(tx *account.Transaction) Transaction {
	m := Transaction{
		Reference:          tx.Reference,
		Type:               tx.Type.String(),
		DestinationAccount: tx.DestinationAccount,
		Value:              Amount{tx.Value},
		OccurredAt:         tx.When,
	}
	if tx.OriginAccount != 0 {
		origin := tx.OriginAccount
		m.OriginAccount = &origin
	}
	return m
}

func mapTransactionModelToDomain(m *Transaction) *account.Transaction {
	tx := &account.Transaction{
		ID:                 m.ID,
		Reference:          m.Reference,
		Type:               account.Type(m.Type),
		DestinationAccount: m.DestinationAccount,
		Value:              m.Value.Decimal,
		When:               m.OccurredAt,
	}
	if m.OriginAccount != nil {
		tx.OriginAccount = *m.OriginAccount
	}
	return tx
}
