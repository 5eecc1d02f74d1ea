// Package webapi assembles the HTTP surface of the reconciliation engine.
// It is organized into sub-packages:
//   - disbursement: reconcile trigger and ledger read endpoints
//   - recipient: roster management endpoints
package webapi

import (
	"strings"
	"time"

	"github.com/Wutche/payrail/pkg/config"
	disbsvc "github.com/Wutche/payrail/pkg/service/disbursement"
	"github.com/Wutche/payrail/webapi/common"
	disbursementweb "github.com/Wutche/payrail/webapi/disbursement"
	recipientweb "github.com/Wutche/payrail/webapi/recipient"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp initializes Fiber with the engine's routes and middleware.
func SetupApp(deps *config.Deps) *fiber.App {
	svc := disbsvc.NewService(*deps)

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	// Uses X-Forwarded-For when behind a proxy, falls back to direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil, "rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	fiberApp.Use(recover.New())

	fiberApp.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	disbursementweb.Routes(fiberApp, svc, deps.Ledger)
	recipientweb.Routes(fiberApp, deps.Recipients)

	return fiberApp
}
