package adminController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models"
	"caselab/models/clinical"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers lists all users with their aggregate stats, newest first
func AdminListUsers(c *fiber.Ctx) error {
	db := database.Database.Db

	var users []models.User
	if err := db.Where("is_deleted = ?", false).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	var rows []clinical.Progress
	if err := db.Where("is_completed = ?", true).Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	rowsByUser := map[uint][]clinical.Progress{}
	for _, p := range rows {
		rowsByUser[p.UserID] = append(rowsByUser[p.UserID], p)
	}

	type userWithStats struct {
		ID                  uint       `json:"id"`
		Email               string     `json:"email"`
		Role                string     `json:"role"`
		MembershipType      string     `json:"membershipType"`
		MembershipExpiresAt *time.Time `json:"membershipExpiresAt"`
		CreatedAt           time.Time  `json:"createdAt"`
		Stats               fiber.Map  `json:"stats"`
	}

	result := make([]userWithStats, len(users))
	for i, u := range users {
		casesCompleted, totalScore := clinical.Totals(rowsByUser[u.ID])
		result[i] = userWithStats{
			ID:                  u.ID,
			Email:               u.Email,
			Role:                u.Role,
			MembershipType:      u.MembershipType,
			MembershipExpiresAt: u.MembershipExpiresAt,
			CreatedAt:           u.CreatedAt,
			Stats: fiber.Map{
				"casesCompleted": casesCompleted,
				"totalScore":     totalScore,
			},
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", result)
}

// AdminUpdateMembership sets a user's membership tier and expiry
func AdminUpdateMembership(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)

	reqData, ok := c.Locals("validatedMembership").(*struct {
		MembershipType      string     `json:"membershipType"`
		MembershipExpiresAt *time.Time `json:"membershipExpiresAt"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.MembershipType = reqData.MembershipType
	user.MembershipExpiresAt = reqData.MembershipExpiresAt
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error updating membership: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update membership!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Membership updated successfully!", nil)
}
