package utils

import (
	"caselab/database"
	"caselab/models"
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeMembershipScheduler sets up the daily membership expiry sweep
func InitializeMembershipScheduler() {
	log.Println("[MEMBERSHIP-SCHEDULER] Initializing membership scheduler...")

	c := cron.New()

	// Run daily at 9 AM to downgrade expired memberships
	c.AddFunc("0 9 * * *", func() {
		log.Println("[MEMBERSHIP-SCHEDULER] Running daily membership check...")
		ExpireMemberships()
	})

	c.Start()
	log.Println("[MEMBERSHIP-SCHEDULER] Membership scheduler started - runs daily at 9 AM")
}

// ExpireMemberships downgrades premium users whose membership has lapsed
func ExpireMemberships() {
	db := database.Database.Db
	if db == nil {
		log.Println("[MEMBERSHIP-SCHEDULER] Database unavailable, skipping sweep")
		return
	}

	cutoff := now.BeginningOfDay()

	var expired []models.User
	if err := db.
		Where("membership_type = ? AND is_deleted = ?", "premium", false).
		Where("membership_expires_at IS NOT NULL AND membership_expires_at < ?", cutoff).
		Find(&expired).Error; err != nil {
		log.Printf("[MEMBERSHIP-SCHEDULER] Error fetching expired memberships: %v", err)
		return
	}

	log.Printf("[MEMBERSHIP-SCHEDULER] Found %d expired memberships", len(expired))

	for _, user := range expired {
		user.MembershipType = "free"
		user.MembershipExpiresAt = nil
		if err := db.Save(&user).Error; err != nil {
			log.Printf("[MEMBERSHIP-SCHEDULER] Error downgrading user %d: %v", user.ID, err)
			continue
		}
		log.Printf("[MEMBERSHIP-SCHEDULER] Downgraded user %d to free membership", user.ID)
	}
}
