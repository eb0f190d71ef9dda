package clinical

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Case represents one clinical simulation scenario composed of ordered steps
type Case struct {
	gorm.Model
	Title              string         `json:"title" gorm:"not null"`
	Specialty          string         `json:"specialty"`
	Category           string         `json:"category"` // legacy free-text label, superseded by CategoryID
	CategoryID         *uint          `json:"categoryId" gorm:"index"`
	Difficulty         string         `json:"difficulty"`
	IsLocked           bool           `json:"isLocked" gorm:"default:false"`
	PrerequisiteCaseID *uint          `json:"prerequisiteCaseId"`
	Metadata           datatypes.JSON `json:"metadata"`
	ThumbnailURL       string         `json:"thumbnailUrl"`
	Duration           int            `json:"duration" gorm:"default:10"` // estimated minutes
}
