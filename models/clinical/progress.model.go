package clinical

import "gorm.io/gorm"

// Progress records that a user achieved a score on a case. Rows are
// append-only: replays add new rows instead of overwriting history.
type Progress struct {
	gorm.Model
	UserID      uint `json:"userId" gorm:"index;not null"`
	CaseID      uint `json:"caseId" gorm:"index;not null"`
	Score       int  `json:"score" gorm:"not null"`
	IsCompleted bool `json:"isCompleted" gorm:"default:false"`
}

// CaseCursor tracks the furthest step a user has answered correctly in a
// case. One row per (user, case), upserted on every correct answer.
type CaseCursor struct {
	gorm.Model
	UserID        uint `json:"userId" gorm:"uniqueIndex:idx_user_case;not null"`
	CaseID        uint `json:"caseId" gorm:"uniqueIndex:idx_user_case;not null"`
	LastStepIndex int  `json:"lastStepIndex"`
}
