package caseValidator

import (
	"caselab/middleware"

	"github.com/gofiber/fiber/v2"
)

// CaseID parses and validates the :id path parameter
func CaseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caseID, err := c.ParamsInt("id")
		if err != nil || caseID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid case id!", nil)
		}
		c.Locals("caseID", caseID)
		return c.Next()
	}
}

// AnswerSubmission parses the :caseId/:stepId parameters and the answer body
func AnswerSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caseID, err := c.ParamsInt("caseId")
		if err != nil || caseID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid case id!", nil)
		}
		stepID, err := c.ParamsInt("stepId")
		if err != nil || stepID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step id!", nil)
		}

		reqData := new(struct {
			SelectedOptionID uint `json:"selectedOptionId"`
			IsFinalStep      bool `json:"isFinalStep"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.SelectedOptionID == 0 {
			errors["selectedOptionId"] = "Please select an option!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("caseID", caseID)
		c.Locals("stepID", stepID)
		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}
