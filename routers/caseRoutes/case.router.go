package caseRoutes

import (
	adminController "caselab/controllers/admin"
	caseController "caselab/controllers/cases"
	"caselab/middleware"
	caseValidator "caselab/validators/cases"

	"github.com/gofiber/fiber/v2"
)

// SetupCaseRoutes sets up the student-facing case routes
func SetupCaseRoutes(app *fiber.App) {
	// category list is public
	app.Get("/api/categories", adminController.ListCategories)

	cases := app.Group("/api/cases", middleware.JWTMiddleware)

	cases.Get("/", caseController.ListCases)
	cases.Get("/:id", caseValidator.CaseID(), caseController.GetCase)
	cases.Get("/:id/progress", caseValidator.CaseID(), caseController.GetCaseProgress)
	cases.Post("/:caseId/steps/:stepId/answer", caseValidator.AnswerSubmission(), caseController.SubmitAnswer)
}
