package authRoutes

import (
	authController "caselab/controllers/auth"
	authValidator "caselab/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration and login
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", authValidator.Register(), authController.Register)
	auth.Post("/login", authValidator.Login(), authController.Login)
}
