package main

import (
	"caselab/config"
	"caselab/database"
	"caselab/models/clinical"
	"encoding/json"
	"log"
	"os"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// caseImport mirrors the authoring payload so exported case files can be
// loaded back in bulk.
type caseImport struct {
	Title             string         `json:"title"`
	Specialty         string         `json:"specialty"`
	Difficulty        string         `json:"difficulty"`
	PrerequisiteTitle string         `json:"prerequisiteTitle"`
	Metadata          datatypes.JSON `json:"metadata"`
	ThumbnailURL      string         `json:"thumbnailUrl"`
	Duration          int            `json:"duration"`
	Steps             []stepImport   `json:"steps"`
}

type stepImport struct {
	StepIndex         int            `json:"stepIndex"`
	Type              string         `json:"type"`
	Content           datatypes.JSON `json:"content"`
	Question          string         `json:"question"`
	ExplanationOnFail string         `json:"explanationOnFail"`
	MaxScore          int            `json:"maxScore"`
	Options           []struct {
		Label     string `json:"label"`
		IsCorrect bool   `json:"isCorrect"`
		Feedback  string `json:"feedback"`
	} `json:"options"`
	Investigations []struct {
		GroupLabel  string `json:"groupLabel"`
		TestName    string `json:"testName"`
		Description string `json:"description"`
		Result      string `json:"result"`
		VideoURL    string `json:"videoUrl"`
	} `json:"investigations"`
	Xrays []struct {
		Label    string `json:"label"`
		Icon     string `json:"icon"`
		ImageURL string `json:"imageUrl"`
	} `json:"xrays"`
}

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	if database.Database.Db == nil {
		log.Fatal("Database is not reachable")
	}

	path := "cases.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to open case file: %v", err)
	}

	var imports []caseImport
	if err := json.Unmarshal(raw, &imports); err != nil {
		log.Fatalf("Failed to parse case file: %v", err)
	}
	if len(imports) == 0 {
		log.Fatal("Case file is empty")
	}

	db := database.Database.Db
	imported := 0
	skipped := 0

	for _, entry := range imports {
		// Skip cases that already exist so the importer can be re-run
		var count int64
		if err := db.Model(&clinical.Case{}).Where("title = ?", entry.Title).Count(&count).Error; err != nil {
			log.Fatalf("Failed to check case %q: %v", entry.Title, err)
		}
		if count > 0 {
			skipped++
			continue
		}

		var prereqID *uint
		if entry.PrerequisiteTitle != "" {
			var prereq clinical.Case
			if err := db.Where("title = ?", entry.PrerequisiteTitle).First(&prereq).Error; err != nil {
				log.Fatalf("Prerequisite %q of case %q not found: %v", entry.PrerequisiteTitle, entry.Title, err)
			}
			prereqID = &prereq.ID
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			newCase := clinical.Case{
				Title:              entry.Title,
				Specialty:          entry.Specialty,
				Difficulty:         entry.Difficulty,
				PrerequisiteCaseID: prereqID,
				Metadata:           entry.Metadata,
				ThumbnailURL:       entry.ThumbnailURL,
				Duration:           entry.Duration,
			}
			if newCase.Duration == 0 {
				newCase.Duration = 10
			}
			if err := tx.Create(&newCase).Error; err != nil {
				return err
			}

			for _, s := range entry.Steps {
				step := clinical.CaseStep{
					CaseID:            newCase.ID,
					StepIndex:         s.StepIndex,
					Type:              s.Type,
					Content:           s.Content,
					Question:          s.Question,
					ExplanationOnFail: s.ExplanationOnFail,
					MaxScore:          s.MaxScore,
				}
				if err := tx.Create(&step).Error; err != nil {
					return err
				}
				for _, o := range s.Options {
					option := clinical.StepOption{
						StepID:    step.ID,
						Label:     o.Label,
						IsCorrect: o.IsCorrect,
						Feedback:  o.Feedback,
					}
					if err := tx.Create(&option).Error; err != nil {
						return err
					}
				}
				for _, inv := range s.Investigations {
					investigation := clinical.Investigation{
						StepID:      step.ID,
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
				for _, x := range s.Xrays {
					xray := clinical.Xray{
						StepID:   step.ID,
						Label:    x.Label,
						Icon:     x.Icon,
						ImageURL: x.ImageURL,
					}
					if err := tx.Create(&xray).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to import case %q: %v", entry.Title, err)
		}
		imported++
	}

	log.Printf("Import finished: %d cases imported, %d skipped", imported, skipped)
}
