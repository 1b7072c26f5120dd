package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account number is not positive or no account
	// with that number exists.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount is returned when a transaction value is not strictly positive.
	ErrInvalidAmount = errors.New("transaction value must be positive")

	// ErrInsufficientBalance is returned when a debited account balance does not strictly
	// exceed the requested value.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUnsupportedOperation is returned for a missing request or an unknown transaction type.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrSameAccount is returned for a transfer whose origin and destination match, when
	// self-transfers are disabled.
	ErrSameAccount = fmt.Errorf("%w: cannot transfer to same account", ErrUnsupportedOperation)

	// ErrStoreUnavailable is returned when the account or transaction store failed or timed
	// out and retries were exhausted.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidCustomer is returned by the builder when no owning customer was given.
	ErrInvalidCustomer = errors.New("customer id is required")
)

// Account is a customer's balance-holding account, identified by its number.
//
// Invariants:
// - Number is assigned by the account store on first save and never changes afterwards.
// - Balance never goes negative after a committed debit.
type Account struct {
	Number     int64
	CustomerID int64
	Balance    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	number     int64
	customerID int64
	balance    decimal.Decimal
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a new Builder with a zero balance and no number assigned.
func New() *Builder {
	return &Builder{
		balance:   decimal.Zero,
		createdAt: time.Now().UTC(),
	}
}

// WithNumber sets the account number. Only used when hydrating from a store.
func (b *Builder) WithNumber(n int64) *Builder {
	b.number = n
	return b
}

// WithCustomerID sets the owning customer. This is a mandatory field.
func (b *Builder) WithCustomerID(id int64) *Builder {
	b.customerID = id
	return b
}

// WithBalance sets the balance. Used for hydration and test setup; new accounts
// receive their initial credit as a deposit.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the builder state and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.customerID <= 0 {
		return nil, ErrInvalidCustomer
	}
	if b.balance.IsNegative() {
		return nil, ErrInvalidAmount
	}
	return &Account{
		Number:     b.number,
		CustomerID: b.customerID,
		Balance:    b.balance,
		CreatedAt:  b.createdAt,
		UpdatedAt:  b.updatedAt,
	}, nil
}

// CanDebit reports whether the balance strictly exceeds value.
// A debit that would leave the balance at exactly zero is refused.
func (a *Account) CanDebit(value decimal.Decimal) bool {
	return a.Balance.GreaterThan(value)
}

// Credit adds value to the balance.
func (a *Account) Credit(value decimal.Decimal) {
	a.Balance = a.Balance.Add(value)
}

// Debit subtracts value from the balance after checking CanDebit.
func (a *Account) Debit(value decimal.Decimal) error {
	if !a.CanDebit(value) {
		return ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(value)
	return nil
}

// Clone returns a copy detached from the receiver.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
