package middleware

import (
	"caselab/database"

	"github.com/gofiber/fiber/v2"
)

// RequireDatabase answers 503 while the store is unreachable. The process
// stays up so the health check keeps responding.
func RequireDatabase(c *fiber.Ctx) error {
	if database.Database.Db == nil {
		return JsonResponse(c, fiber.StatusServiceUnavailable, false, "Database unavailable!", nil)
	}
	return c.Next()
}
