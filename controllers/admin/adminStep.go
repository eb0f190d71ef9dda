package adminController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models/clinical"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type optionPayload struct {
	Label     string `json:"label"`
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
}

type investigationPayload struct {
	GroupLabel  string `json:"groupLabel"`
	TestName    string `json:"testName"`
	Description string `json:"description"`
	Result      string `json:"result"`
	VideoURL    string `json:"videoUrl"`
}

type xrayPayload struct {
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	ImageURL string `json:"imageUrl"`
}

type stepPayload struct {
	StepIndex         int                    `json:"stepIndex"`
	Type              string                 `json:"type"`
	Content           datatypes.JSON         `json:"content"`
	Question          string                 `json:"question"`
	ExplanationOnFail string                 `json:"explanationOnFail"`
	MaxScore          int                    `json:"maxScore"`
	Options           []optionPayload        `json:"options"`
	Investigations    []investigationPayload `json:"investigations"`
	Xrays             []xrayPayload          `json:"xrays"`
}

// AdminStep is the authoring view of a step, including correctness flags
type AdminStep struct {
	clinical.CaseStep
	Options        []clinical.StepOption    `json:"options"`
	Investigations []clinical.Investigation `json:"investigations"`
	Xrays          []clinical.Xray          `json:"xrays"`
}

// AdminGetCaseSteps returns the full step tree of a case for authoring
func AdminGetCaseSteps(c *fiber.Ctx) error {
	caseID := c.Locals("caseID").(int)

	db := database.Database.Db

	var steps []clinical.CaseStep
	if err := db.Where("case_id = ?", caseID).Order("step_index asc").Find(&steps).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch steps!", nil)
	}
	if len(steps) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Steps fetched successfully!", []AdminStep{})
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

	result := make([]AdminStep, len(steps))
	for i, s := range steps {
		detailed := AdminStep{
			CaseStep:       s,
			Options:        []clinical.StepOption{},
			Investigations: []clinical.Investigation{},
			Xrays:          []clinical.Xray{},
		}
		for _, o := range options {
			if o.StepID == s.ID {
				detailed.Options = append(detailed.Options, o)
			}
		}
		for _, inv := range investigations {
			if inv.StepID == s.ID {
				detailed.Investigations = append(detailed.Investigations, inv)
			}
		}
		for _, x := range xrays {
			if x.StepID == s.ID {
				detailed.Xrays = append(detailed.Xrays, x)
			}
		}
		result[i] = detailed
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Steps fetched successfully!", result)
}

// createStepChildren inserts the nested collections of a step
func createStepChildren(tx *gorm.DB, stepID uint, reqData *stepPayload) error {
	for _, o := range reqData.Options {
		option := clinical.StepOption{
			StepID:    stepID,
			Label:     o.Label,
			IsCorrect: o.IsCorrect,
			Feedback:  o.Feedback,
		}
		if err := tx.Create(&option).Error; err != nil {
			return err
		}
	}
	for _, inv := range reqData.Investigations {
		investigation := clinical.Investigation{
			StepID:      stepID,
			GroupLabel:  inv.GroupLabel,
			TestName:    inv.TestName,
			Description: inv.Description,
			Result:      inv.Result,
			VideoURL:    inv.VideoURL,
		}
		if err := tx.Create(&investigation).Error; err != nil {
			return err
		}
	}
	for _, x := range reqData.Xrays {
		xray := clinical.Xray{
			StepID:   stepID,
			Label:    x.Label,
			Icon:     x.Icon,
			ImageURL: x.ImageURL,
		}
		if err := tx.Create(&xray).Error; err != nil {
			return err
		}
	}
	return nil
}

// AdminCreateStep adds a step (with nested options, investigations and
// imaging) to a case
func AdminCreateStep(c *fiber.Ctx) error {
	caseID := c.Locals("caseID").(int)

	var caseRow clinical.Case
	if err := database.Database.Db.Where("id = ?", caseID).First(&caseRow).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Case not found!", nil)
	}

	reqData := new(stepPayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	step := clinical.CaseStep{
		CaseID:            caseRow.ID,
		StepIndex:         reqData.StepIndex,
		Type:              reqData.Type,
		Content:           reqData.Content,
		Question:          reqData.Question,
		ExplanationOnFail: reqData.ExplanationOnFail,
		MaxScore:          reqData.MaxScore,
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&step).Error; err != nil {
			return err
		}
		return createStepChildren(tx, step.ID, reqData)
	})
	if err != nil {
		log.Printf("Error creating step: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create step!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Step created successfully!", fiber.Map{
		"id": step.ID,
	})
}

// AdminUpdateStep updates a step and replaces its nested collections
func AdminUpdateStep(c *fiber.Ctx) error {
	stepID := c.Locals("stepID").(int)

	var step clinical.CaseStep
	if err := database.Database.Db.Where("id = ?", stepID).First(&step).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Step not found!", nil)
	}

	reqData := new(stepPayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	step.StepIndex = reqData.StepIndex
	step.Type = reqData.Type
	step.Content = reqData.Content
	step.Question = reqData.Question
	step.ExplanationOnFail = reqData.ExplanationOnFail
	step.MaxScore = reqData.MaxScore

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&step).Error; err != nil {
			return err
		}
		// replace nested collections wholesale
		if err := tx.Unscoped().Where("step_id = ?", step.ID).Delete(&clinical.StepOption{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("step_id = ?", step.ID).Delete(&clinical.Investigation{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("step_id = ?", step.ID).Delete(&clinical.Xray{}).Error; err != nil {
			return err
		}
		return createStepChildren(tx, step.ID, reqData)
	})
	if err != nil {
		log.Printf("Error updating step: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update step!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Step updated successfully!", nil)
}

// AdminDeleteStep removes a step along with its nested collections
func AdminDeleteStep(c *fiber.Ctx) error {
	stepID := c.Locals("stepID").(int)

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("step_id = ?", stepID).Delete(&clinical.StepOption{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("step_id = ?", stepID).Delete(&clinical.Investigation{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("step_id = ?", stepID).Delete(&clinical.Xray{}).Error; err != nil {
			return err
		}
		return tx.Delete(&clinical.CaseStep{}, stepID).Error
	})
	if err != nil {
		log.Printf("Error deleting step: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete step!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Step deleted successfully!", nil)
}
