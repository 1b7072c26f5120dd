// Package webapi provides the HTTP API of the ledger.
// It is organized into sub-packages for different domains:
// - customer: Customer registration endpoints
// - account: Account opening and balance endpoints
// - transaction: Transaction submission and history endpoints, including the legacy ones
package webapi

import (
	"errors"
	"strings"

	"github.com/demobank/ledger/pkg/app"
	"github.com/demobank/ledger/pkg/config"
	accountweb "github.com/demobank/ledger/webapi/account"
	"github.com/demobank/ledger/webapi/common"
	customerweb "github.com/demobank/ledger/webapi/customer"
	transactionweb "github.com/demobank/ledger/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	cfg := app.Config
	if cfg == nil {
		cfg = &config.App{}
	}
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Configure rate limiting middleware
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	if rl := cfg.RateLimit; rl != nil && rl.MaxRequests > 0 {
		fiberApp.Use(limiter.New(limiter.Config{
			Max:        rl.MaxRequests,
			Expiration: rl.Window,
			KeyGenerator: func(c *fiber.Ctx) string {
				if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
					// Take the first IP in the chain
					if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
						return strings.TrimSpace(forwardedFor[:commaIndex])
					}
					return strings.TrimSpace(forwardedFor)
				}
				if realIP := c.Get("X-Real-IP"); realIP != "" {
					return realIP
				}
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	if cfg.Env == "development" {
		fiberApp.Use(logger.New())
	}

	// Health check endpoint
	fiberApp.Get(
		"/health",
		func(c *fiber.Ctx) error {
			return c.SendString("Ledger API is running!")
		},
	)

	customerweb.Routes(fiberApp, app.CustomerService)
	accountweb.Routes(fiberApp, app.AccountService)
	transactionweb.Routes(fiberApp, app.TransactionEngine, app.Legacy)
	return fiberApp
}
