// Package testutils builds a memory-backed API for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/demobank/ledger/infra/repository/memory"
	"github.com/demobank/ledger/pkg/app"
	"github.com/demobank/ledger/pkg/config"
	"github.com/demobank/ledger/pkg/lock"
	"github.com/demobank/ledger/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/require"
)

// TestApp bundles the Fiber app with the store behind it.
type TestApp struct {
	App   *fiber.App
	Store *memory.Store
	Deps  *app.Deps
}

// NewTestApp creates an API over a fresh memory store. Rate limiting is off
// unless cfg enables it.
func NewTestApp(t testing.TB, cfg *config.App, opts ...memory.Option) *TestApp {
	t.Helper()
	if cfg == nil {
		cfg = &config.App{Env: "test"}
	}
	log.SetOutput(io.Discard)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore(opts...)
	deps := &app.Deps{
		Uow:    memory.NewUoW(store),
		Locker: lock.NewKeyed(),
		Logger: logger,
	}
	return &TestApp{
		App:   webapi.SetupApp(app.New(deps, cfg)),
		Store: store,
		Deps:  deps,
	}
}

// MakeRequestWithApp is a helper for making HTTP requests in tests.
func MakeRequestWithApp(app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err) // For standalone tests, panic on error
	}
	return resp
}

// Do sends a request to the test app and decodes the JSON body into out.
func (a *TestApp) Do(t testing.TB, method, path, body string, out any) int {
	t.Helper()
	resp := MakeRequestWithApp(a.App, method, path, body)
	defer resp.Body.Close() //nolint: errcheck
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
