package customer

import (
	customersvc "github.com/demobank/ledger/pkg/service/customer"
	"github.com/demobank/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

//revive:disable

// CreateCustomerRequest represents the request body for registering a customer.
type CreateCustomerRequest struct {
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName" validate:"required,max=64"`
}

// CustomerDTO is the API response representation of a customer.
type CustomerDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

//revive:enable

// Routes registers HTTP routes for customer operations.
func Routes(app *fiber.App, customerSvc *customersvc.Service) {
	app.Post("/customers", CreateCustomer(customerSvc))
	app.Get("/customers/:id", GetCustomer(customerSvc))
}

// CreateCustomer returns a Fiber handler for registering a customer.
func CreateCustomer(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCustomerRequest](c)
		if input == nil {
			return err // error response already written
		}
		cust, err := customerSvc.CreateCustomer(c.UserContext(), input.FirstName, input.LastName)
		if err != nil {
			log.Errorf("Failed to create customer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Customer created", &CustomerDTO{
			ID:        cust.ID,
			FirstName: cust.FirstName,
			LastName:  cust.LastName,
		})
	}
}

// GetCustomer returns a Fiber handler for reading a customer by id.
func GetCustomer(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := common.ParseNumber(c, "id")
		if !ok {
			return common.ProblemDetailsJSON(c, "Invalid customer id", nil, "customer id must be a positive integer", fiber.StatusBadRequest)
		}
		cust, err := customerSvc.GetCustomer(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer fetched", &CustomerDTO{
			ID:        cust.ID,
			FirstName: cust.FirstName,
			LastName:  cust.LastName,
		})
	}
}
