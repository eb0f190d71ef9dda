package models

import "gorm.io/gorm"

// WebsiteContent holds editable copy for the public site, keyed by page + section
type WebsiteContent struct {
	gorm.Model
	Page    string `json:"page" gorm:"uniqueIndex:idx_page_section;not null"`
	Section string `json:"section" gorm:"uniqueIndex:idx_page_section;not null"`
	Content string `json:"content" gorm:"type:text;not null"`
}
