package adminController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models"
	"caselab/models/clinical"

	"github.com/gofiber/fiber/v2"
)

// AdminOverview returns platform-wide counters for the dashboard
func AdminOverview(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers int64
	if err := db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "student", false).Count(&totalUsers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch overview!", nil)
	}
	var totalCases int64
	if err := db.Model(&clinical.Case{}).Count(&totalCases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch overview!", nil)
	}
	var totalCompletions int64
	if err := db.Model(&clinical.Progress{}).Where("is_completed = ?", true).Count(&totalCompletions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch overview!", nil)
	}
	var premiumUsers int64
	if err := db.Model(&models.User{}).Where("membership_type = ? AND is_deleted = ?", "premium", false).Count(&premiumUsers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch overview!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Overview fetched successfully!", fiber.Map{
		"totalUsers":       totalUsers,
		"totalCases":       totalCases,
		"totalCompletions": totalCompletions,
		"premiumUsers":     premiumUsers,
	})
}
