package webapi_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
)

func httptestRequest(path string) *http.Request {
	return httptest.NewRequest(fiber.MethodGet, path, nil)
}
