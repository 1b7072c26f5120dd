package customer_test

import (
	"testing"

	"github.com/demobank/ledger/infra/repository/memory"
	"github.com/demobank/ledger/webapi/common"
	customerweb "github.com/demobank/ledger/webapi/customer"
	"github.com/demobank/ledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRoutes(t *testing.T) {
	api := testutils.NewTestApp(t, nil)

	var created struct {
		Data customerweb.CustomerDTO `json:"data"`
	}
	require.Equal(t, fiber.StatusCreated,
		api.Do(t, fiber.MethodPost, "/customers", `{"firstName":"Grace","lastName":"Hopper"}`, &created))
	assert.Equal(t, memory.FirstCustomerID, created.Data.ID)

	var got struct {
		Data customerweb.CustomerDTO `json:"data"`
	}
	require.Equal(t, fiber.StatusOK, api.Do(t, fiber.MethodGet, "/customers/1010", "", &got))
	assert.Equal(t, "Hopper", got.Data.LastName)

	var pd common.ProblemDetails
	assert.Equal(t, fiber.StatusBadRequest,
		api.Do(t, fiber.MethodPost, "/customers", `{"firstName":"Grace"}`, &pd))
	assert.Equal(t, "Validation failed", pd.Title)
	assert.Equal(t, fiber.StatusNotFound, api.Do(t, fiber.MethodGet, "/customers/77", "", &pd))
}
