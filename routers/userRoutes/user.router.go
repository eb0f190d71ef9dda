package userRoutes

import (
	statsController "caselab/controllers/stats"
	userController "caselab/controllers/userControllers"
	"caselab/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile and stats routes
func SetupUserRoutes(app *fiber.App) {
	app.Get("/api/me", middleware.JWTMiddleware, userController.GetMe)
	app.Put("/api/user/profile", middleware.JWTMiddleware, userController.UpdateProfile)

	app.Get("/api/stats/me", middleware.JWTMiddleware, statsController.GetMyStats)
	app.Get("/api/profile/stats", middleware.JWTMiddleware, statsController.GetProfileStats)
	app.Get("/api/leaderboard", middleware.JWTMiddleware, statsController.GetLeaderboard)
}
