package memory

import (
	"context"
	"time"

	"github.com/demobank/ledger/pkg/domain"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/domain/customer"
)

type accountRepository struct {
	store *Store
	sess  *session
}

func (r *accountRepository) Get(ctx context.Context, number int64) (*account.Account, error) {
	if err := r.store.check(ctx, "account.get"); err != nil {
		return nil, err
	}
	a, ok := r.lookup(number)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a.Clone(), nil
}

// GetForUpdate is Get; exclusivity comes from the caller's account lock.
func (r *accountRepository) GetForUpdate(ctx context.Context, number int64) (*account.Account, error) {
	return r.Get(ctx, number)
}

func (r *accountRepository) Save(ctx context.Context, a *account.Account) (int64, error) {
	if err := r.store.check(ctx, "account.save"); err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	if a.Number == 0 {
		a.Number = r.store.nextAccount.Add(1)
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
	} else if _, ok := r.lookup(a.Number); !ok {
		return 0, domain.ErrNotFound
	}
	a.UpdatedAt = now

	c := a.Clone()
	if r.sess != nil {
		r.sess.accounts[c.Number] = c
		return c.Number, nil
	}
	r.store.mu.Lock()
	r.store.accounts[c.Number] = c
	r.store.mu.Unlock()
	return c.Number, nil
}

func (r *accountRepository) lookup(number int64) (*account.Account, bool) {
	if r.sess != nil {
		if a, ok := r.sess.accounts[number]; ok {
			return a, true
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	a, ok := r.store.accounts[number]
	return a, ok
}

type transactionRepository struct {
	store *Store
	sess  *session
}

func (r *transactionRepository) Insert(ctx context.Context, tx *account.Transaction) (int64, error) {
	if err := r.store.check(ctx, "transaction.insert"); err != nil {
		return 0, err
	}
	tx.ID = r.store.nextTransaction.Add(1)
	c := *tx
	if r.sess != nil {
		r.sess.transactions = append(r.sess.transactions, &c)
		return c.ID, nil
	}
	r.store.mu.Lock()
	r.store.transactions = append(r.store.transactions, &c)
	r.store.mu.Unlock()
	return c.ID, nil
}

func (r *transactionRepository) ByAccountNumber(ctx context.Context, number int64) ([]*account.Transaction, error) {
	if err := r.store.check(ctx, "transaction.list"); err != nil {
		return nil, err
	}
	out := make([]*account.Transaction, 0)
	collect := func(txs []*account.Transaction) {
		for _, tx := range txs {
			if tx.Involves(number) {
				c := *tx
				out = append(out, &c)
			}
		}
	}
	r.store.mu.RLock()
	collect(r.store.transactions)
	r.store.mu.RUnlock()
	if r.sess != nil {
		collect(r.sess.transactions)
	}
	return out, nil
}

type customerRepository struct {
	store *Store
	sess  *session
}

func (r *customerRepository) Get(ctx context.Context, id int64) (*customer.Customer, error) {
	if err := r.store.check(ctx, "customer.get"); err != nil {
		return nil, err
	}
	if r.sess != nil {
		if c, ok := r.sess.customers[id]; ok {
			cp := *c
			return &cp, nil
		}
	}
	r.store.mu.RLock()
	c, ok := r.store.customers[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *customerRepository) Save(ctx context.Context, c *customer.Customer) (int64, error) {
	if err := r.store.check(ctx, "customer.save"); err != nil {
		return 0, err
	}
	if c.ID == 0 {
		c.ID = r.store.nextCustomer.Add(1)
	}
	cp := *c
	if r.sess != nil {
		r.sess.customers[cp.ID] = &cp
		return cp.ID, nil
	}
	r.store.mu.Lock()
	r.store.customers[cp.ID] = &cp
	r.store.mu.Unlock()
	return cp.ID, nil
}
