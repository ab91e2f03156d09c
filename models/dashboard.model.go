package models

import "gorm.io/gorm"

// Dashboard is the one-to-one landing row created alongside a user at
// registration.
type Dashboard struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
}
