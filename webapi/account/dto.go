package account

import (
	"time"

	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateAccountRequest represents the request body for opening an account.
type CreateAccountRequest struct {
	CustomerID    int64           `json:"customerId" validate:"required,gt=0"`
	InitialCredit decimal.Decimal `json:"initialCredit"`
}

// AccountDTO is the API response representation of an account.
type AccountDTO struct {
	AccountNumber int64           `json:"accountNumber"`
	CustomerID    int64           `json:"customerId"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     string          `json:"createdAt"`
}

// ToAccountDTO maps a domain account to an AccountDTO.
func ToAccountDTO(a *account.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		AccountNumber: a.Number,
		CustomerID:    a.CustomerID,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}

//revive:enable
