package database

import (
	"caselab/config"
	"caselab/models"
	"caselab/models/clinical"
	"encoding/json"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedAdminUser creates a default admin account when none exists
func SeedAdminUser(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		log.Printf("Error checking for admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.AdminPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := models.User{
		Email:    config.AppConfig.AdminEmail,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin user: %v", err)
		return
	}
	log.Printf("Seeded default admin: %s", admin.Email)
}

func mustJSON(v interface{}) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

// SeedDemoCase loads one demo simulation when the cases table is empty
func SeedDemoCase(db *gorm.DB) {
	var count int64
	if err := db.Model(&clinical.Case{}).Count(&count).Error; err != nil {
		log.Printf("Error checking for cases: %v", err)
		return
	}
	if count > 0 {
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		category := models.Category{Name: "Knee", Icon: "🦵", Description: "Knee injuries and conditions"}
		if err := tx.Create(&category).Error; err != nil {
			return err
		}

		demo := clinical.Case{
			Title:      "Acute ACL Tear in Soccer Player",
			Specialty:  "Orthopedics",
			CategoryID: &category.ID,
			Difficulty: "Intermediate",
			Duration:   15,
			Metadata: mustJSON(map[string]interface{}{
				"brief": "24-year-old male soccer player felt a pop in his knee after a pivot.",
			}),
		}
		if err := tx.Create(&demo).Error; err != nil {
			return err
		}

		info := clinical.CaseStep{
			CaseID:    demo.ID,
			StepIndex: 0,
			Type:      "info",
			Content: mustJSON(map[string]interface{}{
				"patientName":    "Ahmed K.",
				"age":            24,
				"gender":         "Male",
				"description":    "Patient presents with a swollen right knee after twisting it while changing direction. He heard a loud pop and could not continue playing.",
				"chiefComplaint": "My knee is swollen and I cannot put weight on it.",
			}),
		}
		investigation := clinical.CaseStep{
			CaseID:    demo.ID,
			StepIndex: 1,
			Type:      "investigation",
			Content:   mustJSON(map[string]interface{}{"title": "Special Tests"}),
		}
		mcq := clinical.CaseStep{
			CaseID:            demo.ID,
			StepIndex:         2,
			Type:              "mcq",
			Question:          "Based on the history and special tests, what is the most likely diagnosis?",
			ExplanationOnFail: "A pivoting mechanism with a pop and immediate swelling combined with a positive Lachman test is classic for ACL injury.",
			MaxScore:          10,
		}
		for _, step := range []*clinical.CaseStep{&info, &investigation, &mcq} {
			if err := tx.Create(step).Error; err != nil {
				return err
			}
		}

		investigations := []clinical.Investigation{
			{StepID: investigation.ID, GroupLabel: "Special Tests", TestName: "Lachman Test", Description: "Assess anterior translation of tibia", Result: "Positive (Soft end feel)"},
			{StepID: investigation.ID, GroupLabel: "Special Tests", TestName: "Anterior Drawer Test", Description: "Assess anterior instability", Result: "Positive"},
			{StepID: investigation.ID, GroupLabel: "Special Tests", TestName: "McMurray Test", Description: "Check for meniscus tear", Result: "Negative"},
		}
		if err := tx.Create(&investigations).Error; err != nil {
			return err
		}

		options := []clinical.StepOption{
			{StepID: mcq.ID, Label: "Medial Meniscus Tear", Feedback: "Meniscus tears usually have delayed swelling and locking symptoms."},
			{StepID: mcq.ID, Label: "Anterior Cruciate Ligament (ACL) Tear", IsCorrect: true, Feedback: "Correct! Immediate swelling, a pop sound and instability are hallmarks of ACL tears."},
			{StepID: mcq.ID, Label: "Patellar Dislocation", Feedback: "Patellar dislocation would usually show visible deformity or apprehension."},
			{StepID: mcq.ID, Label: "MCL Sprain", Feedback: "MCL sprains come from a valgus blow with medial tenderness, not immediate massive swelling."},
		}
		if err := tx.Create(&options).Error; err != nil {
			return err
		}

		xray := clinical.Xray{StepID: investigation.ID, Label: "Right knee AP view", Icon: "🦴"}
		return tx.Create(&xray).Error
	})
	if err != nil {
		log.Printf("Error seeding demo case: %v", err)
		return
	}
	log.Println("Seeded demo case.")
}
