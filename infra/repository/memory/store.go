// Package memory implements the repositories on an in-process store. Writes made
// inside UoW.Do are staged and published together on success.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/domain/customer"
)

// First identifiers handed out by a new Store.
const (
	FirstAccountNumber int64 = 1001
	FirstTransactionID int64 = 11001
	FirstCustomerID    int64 = 1010
)

// Store holds committed state. All reads return copies.
type Store struct {
	mu           sync.RWMutex
	accounts     map[int64]*account.Account
	customers    map[int64]*customer.Customer
	transactions []*account.Transaction

	nextAccount     atomic.Int64
	nextTransaction atomic.Int64
	nextCustomer    atomic.Int64

	fault func(op string) error
}

// Option configures a Store.
type Option func(*Store)

// WithFault installs a hook consulted before every store operation; a non-nil
// result fails that operation. Operation names are "account.get", "account.save",
// "transaction.insert", "transaction.list", "customer.get", "customer.save" and "commit".
func WithFault(fn func(op string) error) Option {
	return func(s *Store) { s.fault = fn }
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		accounts:  make(map[int64]*account.Account),
		customers: make(map[int64]*customer.Customer),
	}
	s.nextAccount.Store(FirstAccountNumber - 1)
	s.nextTransaction.Store(FirstTransactionID - 1)
	s.nextCustomer.Store(FirstCustomerID - 1)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if s.fault != nil {
		if err := s.fault(op); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// session is the staging area of one unit of work.
type session struct {
	accounts     map[int64]*account.Account
	customers    map[int64]*customer.Customer
	transactions []*account.Transaction
}

func newSession() *session {
	return &session{
		accounts:  make(map[int64]*account.Account),
		customers: make(map[int64]*customer.Customer),
	}
}

func (s *Store) commit(ctx context.Context, sess *session) error {
	if err := s.check(ctx, "commit"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range sess.customers {
		s.customers[id] = c
	}
	for n, a := range sess.accounts {
		s.accounts[n] = a
	}
	s.transactions = append(s.transactions, sess.transactions...)
	return nil
}

// Seed stores accounts with preassigned numbers, replacing any existing entry.
// Later generated numbers stay above every seeded one.
func (s *Store) Seed(accounts ...*account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range accounts {
		s.accounts[a.Number] = a.Clone()
		for {
			cur := s.nextAccount.Load()
			if a.Number <= cur || s.nextAccount.CompareAndSwap(cur, a.Number) {
				break
			}
		}
	}
}

// SeedCustomers stores customers with preassigned ids.
func (s *Store) SeedCustomers(customers ...*customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range customers {
		cp := *c
		s.customers[c.ID] = &cp
		for {
			cur := s.nextCustomer.Load()
			if c.ID <= cur || s.nextCustomer.CompareAndSwap(cur, c.ID) {
				break
			}
		}
	}
}
