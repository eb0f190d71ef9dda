package models

import "gorm.io/gorm"

// Category groups cases by body region or specialty area
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}
