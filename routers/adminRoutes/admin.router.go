package adminRoutes

import (
	adminController "caselab/controllers/admin"
	"caselab/middleware"
	adminValidator "caselab/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the content and user authoring surface.
// Every route requires an admin token.
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireRole("admin"))

	// Case CRUD
	admin.Get("/cases", adminController.AdminListCases)
	admin.Post("/cases", adminValidator.CaseBody(), adminController.AdminCreateCase)
	admin.Put("/cases/:id", adminValidator.CaseID(), adminValidator.CaseBody(), adminController.AdminUpdateCase)
	admin.Delete("/cases/:id", adminValidator.CaseID(), adminController.AdminDeleteCase)

	// Step management
	admin.Get("/cases/:id/steps", adminValidator.CaseID(), adminController.AdminGetCaseSteps)
	admin.Post("/cases/:id/steps", adminValidator.CaseID(), adminValidator.StepBody(), adminController.AdminCreateStep)
	admin.Put("/steps/:id", adminValidator.StepID(), adminValidator.StepBody(), adminController.AdminUpdateStep)
	admin.Delete("/steps/:id", adminValidator.StepID(), adminController.AdminDeleteStep)

	// User management
	admin.Get("/users", adminController.AdminListUsers)
	admin.Put("/users/:id/membership", adminValidator.Membership(), adminController.AdminUpdateMembership)

	// Categories
	admin.Post("/categories", adminValidator.CategoryBody(), adminController.AdminCreateCategory)
	admin.Put("/categories/:id", adminValidator.CategoryID(), adminValidator.CategoryBody(), adminController.AdminUpdateCategory)
	admin.Delete("/categories/:id", adminValidator.CategoryID(), adminController.AdminDeleteCategory)

	// Website content
	admin.Get("/content", adminController.AdminListContent)
	admin.Put("/content", adminValidator.ContentBody(), adminController.AdminUpsertContent)

	// Dashboard
	admin.Get("/overview", adminController.AdminOverview)
}
