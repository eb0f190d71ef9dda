package caseController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models/clinical"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitAnswer validates a selected option against the step, scores it and,
// on the final step, finalizes the user's progress for the case.
//
// Finality is derived server-side from the step's position; the legacy
// isFinalStep request field is accepted but not trusted.
func SubmitAnswer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	caseID := c.Locals("caseID").(int)
	stepID := c.Locals("stepID").(int)

	reqData, ok := c.Locals("validatedAnswer").(*struct {
		SelectedOptionID uint `json:"selectedOptionId"`
		IsFinalStep      bool `json:"isFinalStep"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var step clinical.CaseStep
	if err := db.Where("id = ? AND case_id = ?", stepID, caseID).First(&step).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Step not found!", nil)
	}

	// The selected option must belong to the submitted step
	var option clinical.StepOption
	if err := db.Where("id = ? AND step_id = ?", reqData.SelectedOptionID, stepID).First(&option).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid option!", nil)
	}

	if !option.IsCorrect {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer evaluated.", fiber.Map{
			"correct":  false,
			"feedback": option.Feedback,
		})
	}

	var steps []clinical.CaseStep
	if err := db.Where("case_id = ?", caseID).Find(&steps).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch steps!", nil)
	}

	isFinal := step.StepIndex == clinical.FinalStepIndex(steps)
	score := clinical.TotalMaxScore(steps)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := advanceCursor(tx, userID, uint(caseID), step.StepIndex); err != nil {
			return err
		}
		if isFinal {
			progress := clinical.Progress{
				UserID:      userID,
				CaseID:      uint(caseID),
				Score:       score,
				IsCompleted: true,
			}
			return tx.Create(&progress).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("Error recording answer: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record answer!", nil)
	}

	if !isFinal {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer evaluated.", fiber.Map{
			"correct": true,
		})
	}

	var rows []clinical.Progress
	if err := db.Where("user_id = ? AND is_completed = ?", userID, true).Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	casesCompleted, totalScore := clinical.Totals(rows)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Case completed!", fiber.Map{
		"correct": true,
		"final":   true,
		"score":   score,
		"stats": fiber.Map{
			"casesCompleted": casesCompleted,
			"totalScore":     totalScore,
		},
	})
}

// advanceCursor upserts the per-(user, case) cursor, keeping the furthest
// step index reached
func advanceCursor(tx *gorm.DB, userID, caseID uint, stepIndex int) error {
	var cursor clinical.CaseCursor
	err := tx.Where("user_id = ? AND case_id = ?", userID, caseID).First(&cursor).Error
	if err == gorm.ErrRecordNotFound {
		cursor = clinical.CaseCursor{UserID: userID, CaseID: caseID, LastStepIndex: stepIndex}
		return tx.Create(&cursor).Error
	}
	if err != nil {
		return err
	}
	if stepIndex > cursor.LastStepIndex {
		cursor.LastStepIndex = stepIndex
		return tx.Save(&cursor).Error
	}
	return nil
}

// GetCaseProgress returns the user's cursor position for a case
func GetCaseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	caseID := c.Locals("caseID").(int)

	var cursor clinical.CaseCursor
	err := database.Database.Db.Where("user_id = ? AND case_id = ?", userID, caseID).First(&cursor).Error
	if err == gorm.ErrRecordNotFound {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No progress yet.", fiber.Map{
			"lastStepIndex": -1,
		})
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"lastStepIndex": cursor.LastStepIndex,
		"updatedAt":     cursor.UpdatedAt,
	})
}
