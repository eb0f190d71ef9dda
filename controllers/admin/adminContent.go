package adminController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminListContent lists all website content blocks ordered by page, section
func AdminListContent(c *fiber.Ctx) error {
	var content []models.WebsiteContent
	if err := database.Database.Db.Order("page asc, section asc").Find(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", content)
}

// AdminUpsertContent creates or replaces a content block keyed by
// (page, section)
func AdminUpsertContent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedContent").(*struct {
		Page    string `json:"page"`
		Section string `json:"section"`
		Content string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var existing models.WebsiteContent
	err := db.Where("page = ? AND section = ?", reqData.Page, reqData.Section).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		block := models.WebsiteContent{
			Page:    reqData.Page,
			Section: reqData.Section,
			Content: reqData.Content,
		}
		if err := db.Create(&block).Error; err != nil {
			log.Printf("Error creating content block: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
	}

	existing.Content = reqData.Content
	if err := db.Save(&existing).Error; err != nil {
		log.Printf("Error updating content block: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", nil)
}
