package adminValidator

import (
	"caselab/middleware"
	"strings"
	"time"

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

// StepID parses and validates the :id path parameter for step routes
func StepID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stepID, err := c.ParamsInt("id")
		if err != nil || stepID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step id!", nil)
		}
		c.Locals("stepID", stepID)
		return c.Next()
	}
}

// CategoryID parses and validates the :id path parameter for category routes
func CategoryID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, err := c.ParamsInt("id")
		if err != nil || categoryID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
		}
		c.Locals("categoryID", categoryID)
		return c.Next()
	}
}

// CaseBody validates the case authoring payload
func CaseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title string `json:"title"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}

// StepBody validates the step authoring payload
func StepBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StepIndex *int   `json:"stepIndex"`
			Type      string `json:"type"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.StepIndex == nil || *reqData.StepIndex < 0 {
			errors["stepIndex"] = "Step index must be zero or greater!"
		}
		if strings.TrimSpace(reqData.Type) == "" {
			errors["type"] = "Step type is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}

// Membership validates the membership update payload and :id parameter
func Membership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := c.ParamsInt("id")
		if err != nil || targetID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		reqData := new(struct {
			MembershipType      string     `json:"membershipType"`
			MembershipExpiresAt *time.Time `json:"membershipExpiresAt"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.MembershipType != "free" && reqData.MembershipType != "premium" {
			errors["membershipType"] = "Membership type must be free or premium!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("targetUserID", targetID)
		c.Locals("validatedMembership", reqData)
		return c.Next()
	}
}

// CategoryBody validates the category payload
func CategoryBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Icon        string `json:"icon"`
			Description string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// ContentBody validates the website content payload
func ContentBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page    string `json:"page"`
			Section string `json:"section"`
			Content string `json:"content"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Page) == "" {
			errors["page"] = "Page is required!"
		}
		if strings.TrimSpace(reqData.Section) == "" {
			errors["section"] = "Section is required!"
		}
		if reqData.Content == "" {
			errors["content"] = "Content is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}
