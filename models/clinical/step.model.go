package clinical

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CaseStep is one unit of case content. StepIndex defines the traversal
// order within a case; the highest StepIndex is the final step.
type CaseStep struct {
	gorm.Model
	CaseID            uint           `json:"caseId" gorm:"index;not null"`
	StepIndex         int            `json:"stepIndex" gorm:"not null"`
	Type              string         `json:"type"` // info, history, investigation, mcq
	Content           datatypes.JSON `json:"content"`
	Question          string         `json:"question"`
	ExplanationOnFail string         `json:"explanationOnFail"`
	MaxScore          int            `json:"maxScore" gorm:"default:0"`
}

// StepOption is a selectable answer for an mcq step
type StepOption struct {
	gorm.Model
	StepID    uint   `json:"stepId" gorm:"index;not null"`
	Label     string `json:"label" gorm:"not null"`
	IsCorrect bool   `json:"isCorrect" gorm:"default:false"`
	Feedback  string `json:"feedback"`
}

// Investigation is a clinical test attached to a step, no scoring role
type Investigation struct {
	gorm.Model
	StepID      uint   `json:"stepId" gorm:"index;not null"`
	GroupLabel  string `json:"groupLabel"`
	TestName    string `json:"testName"`
	Description string `json:"description"`
	Result      string `json:"result"`
	VideoURL    string `json:"videoUrl"`
}

// Xray is an imaging item attached to a step
type Xray struct {
	gorm.Model
	StepID   uint   `json:"stepId" gorm:"index;not null"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	ImageURL string `json:"imageUrl"`
}
