package caseController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models"
	"caselab/models/clinical"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CaseSummary is the catalog entry for one case, annotated per user
type CaseSummary struct {
	ID                 uint           `json:"id"`
	Title              string         `json:"title"`
	Specialty          string         `json:"specialty"`
	Difficulty         string         `json:"difficulty"`
	IsLocked           bool           `json:"isLocked"`
	PrerequisiteCaseID *uint          `json:"prerequisiteCaseId"`
	Metadata           datatypes.JSON `json:"metadata"`
	IsCompleted        bool           `json:"isCompleted"`
	ThumbnailURL       string         `json:"thumbnailUrl"`
	Duration           int            `json:"duration"`
	CategoryID         *uint          `json:"categoryId"`
	CategoryName       string         `json:"categoryName"`
	CategoryIcon       string         `json:"categoryIcon"`
}

// ListCases lists all cases in creation order with per-user completion flags
func ListCases(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var cases []clinical.Case
	if err := db.Order("id asc").Find(&cases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cases!", nil)
	}

	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	categoryByID := make(map[uint]models.Category, len(categories))
	for _, cat := range categories {
		categoryByID[cat.ID] = cat
	}

	var completed []clinical.Progress
	if err := db.Where("user_id = ? AND is_completed = ?", userID, true).Find(&completed).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	completedCaseIDs := make(map[uint]bool, len(completed))
	for _, p := range completed {
		completedCaseIDs[p.CaseID] = true
	}

	summaries := make([]CaseSummary, len(cases))
	for i, cs := range cases {
		summary := CaseSummary{
			ID:                 cs.ID,
			Title:              cs.Title,
			Specialty:          cs.Specialty,
			Difficulty:         cs.Difficulty,
			IsLocked:           cs.IsLocked,
			PrerequisiteCaseID: cs.PrerequisiteCaseID,
			Metadata:           cs.Metadata,
			IsCompleted:        completedCaseIDs[cs.ID],
			ThumbnailURL:       cs.ThumbnailURL,
			Duration:           cs.Duration,
			CategoryID:         cs.CategoryID,
			CategoryName:       cs.Category,
		}
		if cs.CategoryID != nil {
			if cat, ok := categoryByID[*cs.CategoryID]; ok {
				summary.CategoryName = cat.Name
				summary.CategoryIcon = cat.Icon
			}
		}
		summaries[i] = summary
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cases fetched successfully!", summaries)
}
