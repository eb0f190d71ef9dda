package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string     `json:"name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Password            string     `json:"-" gorm:"not null"`
	Role                string     `json:"role" gorm:"default:'student'"` // student, admin
	ProfileImage        string     `json:"profileImage" gorm:"default:''"`
	MembershipType      string     `json:"membershipType" gorm:"default:'free'"` // free, premium
	MembershipExpiresAt *time.Time `json:"membershipExpiresAt"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
