package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/demobank/ledger/pkg/domain"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/domain/customer"
	"github.com/demobank/ledger/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(t *testing.T, uow repository.UnitOfWork, balance int64) *account.Account {
	t.Helper()
	repo, err := uow.AccountRepository()
	require.NoError(t, err)
	a, err := account.New().WithCustomerID(FirstCustomerID).WithBalance(decimal.NewFromInt(balance)).Build()
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), a)
	require.NoError(t, err)
	return a
}

func TestAccountRepository_SaveAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := NewUoW(NewStore())
	a := newAccount(t, uow, 100)
	assert.Equal(t, FirstAccountNumber, a.Number)
	b := newAccount(t, uow, 0)
	assert.Equal(t, FirstAccountNumber+1, b.Number)

	repo, _ := uow.AccountRepository()
	got, err := repo.Get(ctx, a.Number)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Balance))

	got.Credit(decimal.NewFromInt(1))
	again, _ := repo.Get(ctx, a.Number)
	assert.True(t, decimal.NewFromInt(100).Equal(again.Balance), "reads are copies")

	_, err = repo.Get(ctx, 4242)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ghost := &account.Account{Number: 4242, CustomerID: 1}
	_, err = repo.Save(ctx, ghost)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionRepository_ByAccountNumber(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := NewUoW(NewStore())
	repo, _ := uow.TransactionRepository()

	empty, err := repo.ByAccountNumber(ctx, 1101)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	entries := []*account.Transaction{
		{Type: account.TypeDeposit, DestinationAccount: 1101, Value: decimal.NewFromInt(1)},
		{Type: account.TypeTransfer, OriginAccount: 1101, DestinationAccount: 1001, Value: decimal.NewFromInt(2)},
		{Type: account.TypeDeposit, DestinationAccount: 1001, Value: decimal.NewFromInt(3)},
	}
	for _, e := range entries {
		_, err := repo.Insert(ctx, e)
		require.NoError(t, err)
	}
	assert.Equal(t, FirstTransactionID, entries[0].ID)

	got, err := repo.ByAccountNumber(ctx, 1101)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entries[0].ID, got[0].ID)
	assert.Equal(t, entries[1].ID, got[1].ID)

	got, err = repo.ByAccountNumber(ctx, 1001)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUoW_CommitPublishesAllWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := NewUoW(NewStore())
	a := newAccount(t, uow, 100)

	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		accRepo, _ := tx.AccountRepository()
		txRepo, _ := tx.TransactionRepository()
		acc, err := accRepo.GetForUpdate(ctx, a.Number)
		if err != nil {
			return err
		}
		if _, err := txRepo.Insert(ctx, &account.Transaction{
			Type: account.TypeDeposit, DestinationAccount: a.Number, Value: decimal.NewFromInt(5),
		}); err != nil {
			return err
		}
		acc.Credit(decimal.NewFromInt(5))
		if _, err := accRepo.Save(ctx, acc); err != nil {
			return err
		}

		// staged writes are visible inside the unit of work but not outside it
		inside, _ := accRepo.Get(ctx, a.Number)
		assert.True(t, decimal.NewFromInt(105).Equal(inside.Balance))
		outsideRepo, _ := uow.AccountRepository()
		outside, _ := outsideRepo.Get(ctx, a.Number)
		assert.True(t, decimal.NewFromInt(100).Equal(outside.Balance))
		return nil
	})
	require.NoError(t, err)

	accRepo, _ := uow.AccountRepository()
	got, _ := accRepo.Get(ctx, a.Number)
	assert.True(t, decimal.NewFromInt(105).Equal(got.Balance))
	txRepo, _ := uow.TransactionRepository()
	history, _ := txRepo.ByAccountNumber(ctx, a.Number)
	assert.Len(t, history, 1)
}

func TestUoW_RollbackDiscardsWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := NewUoW(NewStore())
	a := newAccount(t, uow, 100)
	boom := errors.New("boom")

	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		accRepo, _ := tx.AccountRepository()
		txRepo, _ := tx.TransactionRepository()
		_, _ = txRepo.Insert(ctx, &account.Transaction{
			Type: account.TypeWithdraw, DestinationAccount: a.Number, Value: decimal.NewFromInt(5),
		})
		acc, _ := accRepo.Get(ctx, a.Number)
		acc.Balance = decimal.Zero
		_, _ = accRepo.Save(ctx, acc)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	accRepo, _ := uow.AccountRepository()
	got, _ := accRepo.Get(ctx, a.Number)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Balance))
	txRepo, _ := uow.TransactionRepository()
	history, _ := txRepo.ByAccountNumber(ctx, a.Number)
	assert.Empty(t, history)
}

func TestUoW_NestedDoJoinsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := NewUoW(NewStore())
	boom := errors.New("boom")

	err := uow.Do(ctx, func(outer repository.UnitOfWork) error {
		err := outer.Do(ctx, func(inner repository.UnitOfWork) error {
			repo, _ := inner.CustomerRepository()
			c, _ := customer.NewCustomer("John", "Doe")
			_, err := repo.Save(ctx, c)
			return err
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	repo, _ := uow.CustomerRepository()
	_, err = repo.Get(ctx, FirstCustomerID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "inner writes roll back with the outer unit")
}

func TestStore_FaultAndContext(t *testing.T) {
	t.Parallel()
	store := NewStore(WithFault(func(op string) error {
		if op == "commit" {
			return domain.ErrUnavailable
		}
		return nil
	}))
	uow := NewUoW(store)
	ctx := context.Background()

	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		repo, _ := tx.CustomerRepository()
		c, _ := customer.NewCustomer("Jane", "Roe")
		_, err := repo.Save(ctx, c)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	repo, _ := uow.CustomerRepository()
	_, err = repo.Get(ctx, FirstCustomerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	expired, cancel := context.WithTimeout(ctx, time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)
	_, err = repo.Get(expired, FirstCustomerID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStore_Seed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewStore()
	store.Seed(&account.Account{Number: 1101, CustomerID: 1010, Balance: decimal.NewFromInt(100)})
	store.SeedCustomers(&customer.Customer{ID: 1010, FirstName: "John", LastName: "Doe"})
	uow := NewUoW(store)

	repo, _ := uow.AccountRepository()
	got, err := repo.Get(ctx, 1101)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Balance))

	next := newAccount(t, uow, 0)
	assert.Equal(t, int64(1102), next.Number)

	custRepo, _ := uow.CustomerRepository()
	c, err := custRepo.Get(ctx, 1010)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", c.FullName())
}
