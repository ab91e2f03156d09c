package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"index;not null"`
	Message string `json:"message" gorm:"not null"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}
