package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/demobank/ledger/pkg/domain"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/domain/customer"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", fmt.Errorf("%w: 1101", account.ErrAccountNotFound), fiber.StatusNotFound},
		{"customer not found", customer.ErrCustomerNotFound, fiber.StatusNotFound},
		{"invalid amount", account.ErrInvalidAmount, fiber.StatusBadRequest},
		{"insufficient balance", account.ErrInsufficientBalance, fiber.StatusUnprocessableEntity},
		{"unsupported operation", account.ErrUnsupportedOperation, fiber.StatusUnprocessableEntity},
		{"same account", account.ErrSameAccount, fiber.StatusUnprocessableEntity},
		{"store unavailable", fmt.Errorf("%w: %w", account.ErrStoreUnavailable, domain.ErrUnavailable), fiber.StatusServiceUnavailable},
		{"raw unavailable", domain.ErrUnavailable, fiber.StatusServiceUnavailable},
		{"name required", customer.ErrNameRequired, fiber.StatusBadRequest},
		{"fiber error", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
		{"nil", nil, fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorToStatusCode(tc.err))
		})
	}
}
