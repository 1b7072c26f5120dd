package customer

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrCustomerNotFound is returned when a customer cannot be found in the
	// repository.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrNameRequired is returned when a first or last name is blank.
	ErrNameRequired = errors.New("first and last name are required")
)

// Customer is the owner of one or more accounts.
type Customer struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"created"`
}

// NewCustomer creates a Customer with trimmed names. The id is assigned on save.
func NewCustomer(firstName, lastName string) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// FullName returns "First Last".
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
