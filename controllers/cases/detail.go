package caseController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models/clinical"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// StudentOption is the student-facing view of an option. Correctness and
// feedback are withheld until the answer is submitted.
type StudentOption struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type StudentStep struct {
	ID                uint                     `json:"id"`
	StepIndex         int                      `json:"stepIndex"`
	Type              string                   `json:"type"`
	Content           datatypes.JSON           `json:"content"`
	Question          string                   `json:"question"`
	ExplanationOnFail string                   `json:"explanationOnFail"`
	MaxScore          int                      `json:"maxScore"`
	Options           []StudentOption          `json:"options"`
	Investigations    []clinical.Investigation `json:"investigations"`
	Xrays             []clinical.Xray          `json:"xrays"`
}

type CaseDetail struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	Specialty    string         `json:"specialty"`
	Difficulty   string         `json:"difficulty"`
	Category     string         `json:"category"`
	Metadata     datatypes.JSON `json:"metadata"`
	ThumbnailURL string         `json:"thumbnailUrl"`
	Duration     int            `json:"duration"`
	Steps        []StudentStep  `json:"steps"`
}

// GetCase serves one case's full step tree, honoring prerequisite gating
func GetCase(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	caseID := c.Locals("caseID").(int)

	db := database.Database.Db

	var caseRow clinical.Case
	if err := db.Where("id = ?", caseID).First(&caseRow).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Case not found!", nil)
	}

	// Prerequisite gate: step content is never revealed before the
	// prerequisite case has been completed
	if caseRow.PrerequisiteCaseID != nil {
		var done int64
		if err := db.Model(&clinical.Progress{}).
			Where("user_id = ? AND case_id = ? AND is_completed = ?", userID, *caseRow.PrerequisiteCaseID, true).
			Count(&done).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check prerequisite!", nil)
		}
		if done == 0 {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must complete the prerequisite case first.", nil)
		}
	}

	var steps []clinical.CaseStep
	if err := db.Where("case_id = ?", caseID).Order("step_index asc").Find(&steps).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch steps!", nil)
	}
	if len(steps) == 0 {
		// configuration fault, not a client error
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Case has no steps configured!", nil)
	}

	stepIDs := make([]uint, len(steps))
	for i, s := range steps {
		stepIDs[i] = s.ID
	}

	var options []clinical.StepOption
	if err := db.Where("step_id IN ?", stepIDs).Find(&options).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch options!", nil)
	}
	var investigations []clinical.Investigation
	if err := db.Where("step_id IN ?", stepIDs).Find(&investigations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch investigations!", nil)
	}
	var xrays []clinical.Xray
	if err := db.Where("step_id IN ?", stepIDs).Find(&xrays).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch imaging!", nil)
	}

	detail := CaseDetail{
		ID:           caseRow.ID,
		Title:        caseRow.Title,
		Specialty:    caseRow.Specialty,
		Difficulty:   caseRow.Difficulty,
		Category:     caseRow.Category,
		Metadata:     caseRow.Metadata,
		ThumbnailURL: caseRow.ThumbnailURL,
		Duration:     caseRow.Duration,
		Steps:        make([]StudentStep, len(steps)),
	}

	for i, s := range steps {
		step := StudentStep{
			ID:                s.ID,
			StepIndex:         s.StepIndex,
			Type:              s.Type,
			Content:           s.Content,
			Question:          s.Question,
			ExplanationOnFail: s.ExplanationOnFail,
			MaxScore:          s.MaxScore,
			Options:           []StudentOption{},
			Investigations:    []clinical.Investigation{},
			Xrays:             []clinical.Xray{},
		}
		for _, o := range options {
			if o.StepID == s.ID {
				step.Options = append(step.Options, StudentOption{ID: o.ID, Label: o.Label})
			}
		}
		for _, inv := range investigations {
			if inv.StepID == s.ID {
				step.Investigations = append(step.Investigations, inv)
			}
		}
		for _, x := range xrays {
			if x.StepID == s.ID {
				step.Xrays = append(step.Xrays, x)
			}
		}
		detail.Steps[i] = step
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Case fetched successfully!", detail)
}
