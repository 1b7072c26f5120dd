// Package transaction exposes the transaction engine over HTTP, including the
// sentinel-valued endpoints kept for legacy clients.
package transaction

import (
	transactionsvc "github.com/demobank/ledger/pkg/service/transaction"
	"github.com/demobank/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers HTTP routes for transaction operations.
//
// Routes:
//   - POST   /transactions                         : Submit a deposit, withdrawal or transfer.
//   - GET    /accounts/:number/transactions        : List transactions touching an account.
//   - POST   /legacy/transactions                  : Submit; responds with the id or 0.
//   - GET    /legacy/accounts/:number/transactions : List; responds with null for unknown accounts.
func Routes(app *fiber.App, engine *transactionsvc.Engine, legacy *transactionsvc.Legacy) {
	app.Post("/transactions", CreateTransaction(engine))
	app.Get("/accounts/:number/transactions", GetTransactions(engine))
	app.Post("/legacy/transactions", LegacyCreateTransaction(legacy))
	app.Get("/legacy/accounts/:number/transactions", LegacyGetTransactions(legacy))
}

// CreateTransaction returns a Fiber handler that submits a transaction to the engine.
// Rejections are reported as problem details carrying the error kind.
func CreateTransaction(engine *transactionsvc.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err // error response already written
		}
		tx, err := engine.CreateTransaction(c.UserContext(), input.ToRequest())
		if err != nil {
			log.Warnf("Transaction failed: %v", err)
			return common.ProblemDetailsJSON(c, "Transaction failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", ToTransactionDTO(tx))
	}
}

// GetTransactions returns a Fiber handler listing an account's history.
func GetTransactions(engine *transactionsvc.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, ok := common.ParseNumber(c, "number")
		if !ok {
			return common.ProblemDetailsJSON(c, "Invalid account number", nil, "account number must be a positive integer", fiber.StatusBadRequest)
		}
		txs, err := engine.TransactionsByAccountNumber(c.UserContext(), number)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", ToTransactionDTOs(txs))
	}
}

// LegacyCreateTransaction returns a Fiber handler answering with the bare
// transaction id, 0 meaning the request failed.
func LegacyCreateTransaction(legacy *transactionsvc.Legacy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input CreateTransactionRequest
		if err := c.BodyParser(&input); err != nil {
			return c.JSON(0)
		}
		return c.JSON(legacy.CreateTransaction(c.UserContext(), input.ToRequest()))
	}
}

// LegacyGetTransactions returns a Fiber handler answering with the bare
// history, null for an unknown account.
func LegacyGetTransactions(legacy *transactionsvc.Legacy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, ok := common.ParseNumber(c, "number")
		if !ok {
			return c.JSON(nil)
		}
		return c.JSON(ToTransactionDTOs(legacy.TransactionsByAccountNumber(c.UserContext(), number)))
	}
}
