package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type identifies the kind of money movement.
type Type string

// Supported transaction types.
const (
	TypeDeposit  Type = "DEPOSIT"
	TypeWithdraw Type = "WITHDRAW"
	TypeTransfer Type = "TRANSFER"
)

// ParseType reports whether s is exactly one of DEPOSIT, WITHDRAW or TRANSFER.
// Anything else, including other casings, is unsupported.
func ParseType(s string) (Type, bool) {
	t := Type(s)
	return t, t.Valid()
}

// Valid reports whether t is a supported transaction type.
func (t Type) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdraw, TypeTransfer:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }

// Request carries the caller-supplied fields of a transaction.
// Account numbers of zero mean "absent".
type Request struct {
	Type               Type
	OriginAccount      int64
	DestinationAccount int64
	Value              decimal.Decimal
}

// Validate runs the checks that need no store access, in order: type, value, then
// account-number presence.
func (r *Request) Validate() error {
	if r == nil || !r.Type.Valid() {
		return ErrUnsupportedOperation
	}
	if !r.Value.IsPositive() {
		return ErrInvalidAmount
	}
	if r.DestinationAccount <= 0 {
		return ErrAccountNotFound
	}
	if r.Type == TypeTransfer && r.OriginAccount <= 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Accounts returns the account numbers the request touches.
func (r *Request) Accounts() []int64 {
	if r.Type == TypeTransfer {
		return []int64{r.OriginAccount, r.DestinationAccount}
	}
	return []int64{r.DestinationAccount}
}

// Transaction is an immutable ledger entry recording one accepted money movement.
type Transaction struct {
	ID                 int64
	Reference          uuid.UUID
	Type               Type
	OriginAccount      int64
	DestinationAccount int64
	Value              decimal.Decimal
	When               time.Time
}

// NewTransaction builds the uncommitted ledger entry for an accepted request.
func NewTransaction(req *Request, when time.Time) *Transaction {
	tx := &Transaction{
		Reference:          uuid.New(),
		Type:               req.Type,
		DestinationAccount: req.DestinationAccount,
		Value:              req.Value,
		When:               when,
	}
	if req.Type == TypeTransfer {
		tx.OriginAccount = req.OriginAccount
	}
	return tx
}

// Involves reports whether number is the origin or the destination of tx.
func (tx *Transaction) Involves(number int64) bool {
	return tx.DestinationAccount == number || (tx.OriginAccount != 0 && tx.OriginAccount == number)
}
