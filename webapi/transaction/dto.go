package transaction

import (
	"time"

	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//revive:disable

// AccountRef is an account object nested in a transaction body. Only the number is read.
type AccountRef struct {
	AccountNumber int64 `json:"accountNumber"`
}

// CreateTransactionRequest is the body of POST /transactions and POST /legacy/transactions.
type CreateTransactionRequest struct {
	TransactionType    string          `json:"transactionType" validate:"max=32"`
	OriginAccount      *AccountRef     `json:"originAccount"`
	DestinationAccount *AccountRef     `json:"destinationAccount"`
	Value              decimal.Decimal `json:"value"`
}

// ToRequest converts the body into an engine request. Missing account objects
// become absent numbers.
func (r *CreateTransactionRequest) ToRequest() *account.Request {
	typ, _ := account.ParseType(r.TransactionType)
	req := &account.Request{
		Type:  typ,
		Value: r.Value,
	}
	if r.OriginAccount != nil {
		req.OriginAccount = r.OriginAccount.AccountNumber
	}
	if r.DestinationAccount != nil {
		req.DestinationAccount = r.DestinationAccount.AccountNumber
	}
	return req
}

// TransactionDTO is the API response representation of a transaction.
type TransactionDTO struct {
	ID                 int64           `json:"id"`
	Reference          uuid.UUID       `json:"reference"`
	TransactionType    string          `json:"transactionType"`
	OriginAccount      *AccountRef     `json:"originAccount"`
	DestinationAccount *AccountRef     `json:"destinationAccount"`
	Value              decimal.Decimal `json:"value"`
	When               string          `json:"when"`
}

// ToTransactionDTO maps a domain transaction to a TransactionDTO.
func ToTransactionDTO(tx *account.Transaction) *TransactionDTO {
	if tx == nil {
		return nil
	}
	dto := &TransactionDTO{
		ID:                 tx.ID,
		Reference:          tx.Reference,
		TransactionType:    tx.Type.String(),
		DestinationAccount: &AccountRef{AccountNumber: tx.DestinationAccount},
		Value:              tx.Value,
		When:               tx.When.Format(time.RFC3339),
	}
	if tx.OriginAccount != 0 {
		dto.OriginAccount = &AccountRef{AccountNumber: tx.OriginAccount}
	}
	return dto
}

// ToTransactionDTOs maps a history. A nil history stays nil.
func ToTransactionDTOs(txs []*account.Transaction) []*TransactionDTO {
	if txs == nil {
		return nil
	}
	out := make([]*TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionDTO(tx))
	}
	return out
}

//revive:enable
