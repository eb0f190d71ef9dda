package adminController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models"
	"caselab/models/clinical"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type casePayload struct {
	Title              string         `json:"title"`
	Specialty          string         `json:"specialty"`
	Category           string         `json:"category"`
	CategoryID         *uint          `json:"categoryId"`
	Difficulty         string         `json:"difficulty"`
	IsLocked           bool           `json:"isLocked"`
	PrerequisiteCaseID *uint          `json:"prerequisiteCaseId"`
	Metadata           datatypes.JSON `json:"metadata"`
	ThumbnailURL       string         `json:"thumbnailUrl"`
	Duration           int            `json:"duration"`
}

// AdminListCases lists all cases for the authoring view, newest first
func AdminListCases(c *fiber.Ctx) error {
	db := database.Database.Db

	var cases []clinical.Case
	if err := db.Order("id desc").Find(&cases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cases!", nil)
	}

	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	nameByID := make(map[uint]string, len(categories))
	for _, cat := range categories {
		nameByID[cat.ID] = cat.Name
	}

	type adminCase struct {
		clinical.Case
		CategoryName string `json:"categoryName"`
	}
	result := make([]adminCase, len(cases))
	for i, cs := range cases {
		result[i] = adminCase{Case: cs}
		if cs.CategoryID != nil {
			result[i].CategoryName = nameByID[*cs.CategoryID]
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cases fetched successfully!", result)
}

// AdminCreateCase creates a new case
func AdminCreateCase(c *fiber.Ctx) error {
	reqData := new(casePayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	newCase := clinical.Case{
		Title:              reqData.Title,
		Specialty:          reqData.Specialty,
		Category:           reqData.Category,
		CategoryID:         reqData.CategoryID,
		Difficulty:         reqData.Difficulty,
		IsLocked:           reqData.IsLocked,
		PrerequisiteCaseID: reqData.PrerequisiteCaseID,
		Metadata:           reqData.Metadata,
		ThumbnailURL:       reqData.ThumbnailURL,
		Duration:           reqData.Duration,
	}
	if newCase.Duration == 0 {
		newCase.Duration = 10
	}

	if err := database.Database.Db.Create(&newCase).Error; err != nil {
		log.Printf("Error creating case: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create case!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Case created successfully!", newCase)
}

// AdminUpdateCase updates an existing case
func AdminUpdateCase(c *fiber.Ctx) error {
	caseID := c.Locals("caseID").(int)

	var caseRow clinical.Case
	if err := database.Database.Db.Where("id = ?", caseID).First(&caseRow).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Case not found!", nil)
	}

	reqData := new(casePayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	caseRow.Title = reqData.Title
	caseRow.Specialty = reqData.Specialty
	caseRow.Category = reqData.Category
	caseRow.CategoryID = reqData.CategoryID
	caseRow.Difficulty = reqData.Difficulty
	caseRow.IsLocked = reqData.IsLocked
	caseRow.PrerequisiteCaseID = reqData.PrerequisiteCaseID
	caseRow.Metadata = reqData.Metadata
	caseRow.ThumbnailURL = reqData.ThumbnailURL
	caseRow.Duration = reqData.Duration
	if caseRow.Duration == 0 {
		caseRow.Duration = 10
	}

	if err := database.Database.Db.Save(&caseRow).Error; err != nil {
		log.Printf("Error updating case: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update case!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Case updated successfully!", caseRow)
}

// AdminDeleteCase removes a case
func AdminDeleteCase(c *fiber.Ctx) error {
	caseID := c.Locals("caseID").(int)

	if err := database.Database.Db.Delete(&clinical.Case{}, caseID).Error; err != nil {
		log.Printf("Error deleting case: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete case!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Case deleted successfully!", nil)
}
