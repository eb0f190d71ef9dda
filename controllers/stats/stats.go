package statsController

import (
	"caselab/database"
	"caselab/middleware"
	"caselab/models"
	"caselab/models/clinical"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMyStats returns the authenticated user's aggregate stats
func GetMyStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var rows []clinical.Progress
	if err := database.Database.Db.Where("user_id = ? AND is_completed = ?", userID, true).Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	casesCompleted, totalScore := clinical.Totals(rows)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"casesCompleted": casesCompleted,
		"totalScore":     totalScore,
	})
}

// CompletedCase is one entry of the profile's completion history
type CompletedCase struct {
	CaseID      uint      `json:"caseId"`
	Title       string    `json:"title"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// GetProfileStats returns aggregate stats, rank, membership info and the
// completed cases list for the authenticated user
func GetProfileStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var myRows []clinical.Progress
	if err := db.Where("user_id = ? AND is_completed = ?", userID, true).Find(&myRows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	casesCompleted, totalScore := clinical.Totals(myRows)

	standings, err := loadStandings(db)
	if err != nil {
		log.Printf("Error building standings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}
	rank := clinical.RankOf(standings, casesCompleted, totalScore)

	// Completion history, newest first
	caseIDs := make([]uint, 0, len(myRows))
	for _, p := range myRows {
		caseIDs = append(caseIDs, p.CaseID)
	}
	titleByID := map[uint]string{}
	if len(caseIDs) > 0 {
		var cases []clinical.Case
		if err := db.Where("id IN ?", caseIDs).Find(&cases).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cases!", nil)
		}
		for _, cs := range cases {
			titleByID[cs.ID] = cs.Title
		}
	}
	completedCases := make([]CompletedCase, 0, len(myRows))
	for i := len(myRows) - 1; i >= 0; i-- {
		p := myRows[i]
		completedCases = append(completedCases, CompletedCase{
			CaseID:      p.CaseID,
			Title:       titleByID[p.CaseID],
			Score:       p.Score,
			CompletedAt: p.CreatedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile stats fetched successfully!", fiber.Map{
		"casesCompleted":      casesCompleted,
		"totalScore":          totalScore,
		"rank":                rank,
		"membershipType":      user.MembershipType,
		"membershipExpiresAt": user.MembershipExpiresAt,
		"completedCases":      completedCases,
	})
}

const leaderboardLimit = 100

// GetLeaderboard returns the top students ordered by completed cases, then
// total score
func GetLeaderboard(c *fiber.Ctx) error {
	standings, err := loadStandings(database.Database.Db)
	if err != nil {
		log.Printf("Error building standings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}
	if len(standings) > leaderboardLimit {
		standings = standings[:leaderboardLimit]
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully!", standings)
}

// loadStandings builds the full student ranking
func loadStandings(db *gorm.DB) ([]clinical.Standing, error) {
	var students []models.User
	if err := db.Where("role = ? AND is_deleted = ?", "student", false).Find(&students).Error; err != nil {
		return nil, err
	}
	emails := make(map[uint]string, len(students))
	for _, u := range students {
		emails[u.ID] = u.Email
	}

	var rows []clinical.Progress
	if err := db.Where("is_completed = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}

	return clinical.ComputeStandings(emails, rows), nil
}
