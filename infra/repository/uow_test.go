package repository

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/demobank/ledger/pkg/domain"
	"github.com/demobank/ledger/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_DoAndGetRepository(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		acctRepo, err := txUow.AccountRepository()
		require.NoError(err)
		_, ok := acctRepo.(*accountRepository)
		assert.True(ok)

		txRepo, err := txUow.TransactionRepository()
		require.NoError(err)
		_, ok = txRepo.(*transactionRepository)
		assert.True(ok)

		custRepo, err := txUow.CustomerRepository()
		require.NoError(err)
		_, ok = custRepo.(*customerRepository)
		assert.True(ok)
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_CommitFailureIsUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(io.ErrUnexpectedEOF)

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error { return nil })
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestUoW_GetRepositoryUnknownType(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)
	_, err := uow.GetRepository(nil)
	assert.Error(t, err)
}
