package transaction

import (
	"context"

	"github.com/demobank/ledger/pkg/domain/account"
)

// Legacy exposes the engine through the sentinel-value contract of older clients:
// 0 for a failed create, nil for history of an unknown account.
type Legacy struct {
	engine *Engine
}

// NewLegacy wraps engine.
func NewLegacy(engine *Engine) *Legacy {
	return &Legacy{engine: engine}
}

// CreateTransaction returns the new transaction id, or 0 if the request failed for
// any reason.
func (l *Legacy) CreateTransaction(ctx context.Context, req *account.Request) int64 {
	tx, err := l.engine.CreateTransaction(ctx, req)
	if err != nil {
		return 0
	}
	return tx.ID
}

// TransactionsByAccountNumber returns the account history, or nil if the account is
// unknown or the store failed.
func (l *Legacy) TransactionsByAccountNumber(ctx context.Context, number int64) []*account.Transaction {
	txs, err := l.engine.TransactionsByAccountNumber(ctx, number)
	if err != nil {
		return nil
	}
	return txs
}
