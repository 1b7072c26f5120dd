package account

import (
	"errors"

	accountsvc "github.com/demobank/ledger/pkg/service/account"
	"github.com/demobank/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers HTTP routes for account operations.
//
// Routes:
//   - POST   /accounts         : Open an account for a customer, with an optional initial credit.
//   - GET    /accounts/:number : Retrieve an account and its balance.
func Routes(app *fiber.App, accountSvc *accountsvc.Service) {
	app.Post("/accounts", CreateAccount(accountSvc))
	app.Get("/accounts/:number", GetAccount(accountSvc))
}

// CreateAccount returns a Fiber handler for opening an account. When the initial
// credit fails the account is still created; the problem response carries it in
// the errors field.
func CreateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		a, err := accountSvc.CreateAccount(c.UserContext(), input.CustomerID, input.InitialCredit)
		if errors.Is(err, accountsvc.ErrInitialCreditFailed) {
			log.Errorf("Account %d opened without initial credit: %v", a.Number, err)
			return common.ProblemDetailsJSON(c, "Initial credit failed", err, ToAccountDTO(a))
		}
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountDTO(a))
	}
}

// GetAccount returns a Fiber handler for reading an account by number.
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, ok := common.ParseNumber(c, "number")
		if !ok {
			return common.ProblemDetailsJSON(c, "Invalid account number", nil, "account number must be a positive integer", fiber.StatusBadRequest)
		}
		a, err := accountSvc.GetAccount(c.UserContext(), number)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountDTO(a))
	}
}
