// Package common holds the response envelopes, error mapping and request binding
// shared by the HTTP handlers.
package common

import (
	"errors"
	"strconv"

	"github.com/demobank/ledger/pkg/domain"
	"github.com/demobank/ledger/pkg/domain/account"
	"github.com/demobank/ledger/pkg/domain/customer"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Kind     string `json:"kind,omitempty"`     // Engine error kind, when known
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes a Response envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem. The status is taken from an
// explicit int argument, otherwise derived from err. A string argument
// overrides the detail.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := ErrorToStatusCode(err)
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	var extra any
	for _, arg := range args {
		switch v := arg.(type) {
		case int:
			status = v
		case string:
			detail = v
		default:
			extra = v
		}
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
		Errors:   extra,
	}
	if k := account.KindOf(err); k != account.KindUnknown {
		pd.Kind = k.String()
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, customer.ErrCustomerNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, customer.ErrNameRequired),
		errors.Is(err, account.ErrInvalidCustomer):
		return fiber.StatusBadRequest
	}
	switch account.KindOf(err) {
	case account.KindAccountNotFound:
		return fiber.StatusNotFound
	case account.KindInvalidAmount:
		return fiber.StatusBadRequest
	case account.KindInsufficientBalance, account.KindUnsupportedOperation:
		return fiber.StatusUnprocessableEntity
	case account.KindStoreUnavailable:
		return fiber.StatusServiceUnavailable
	}
	if errors.Is(err, domain.ErrUnavailable) {
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

// ParseNumber reads a positive integer route parameter.
func ParseNumber(c *fiber.Ctx, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
