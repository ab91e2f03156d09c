package models

import "gorm.io/gorm"

type Announcement struct {
	gorm.Model
	ClassID  uint   `json:"class_id" gorm:"index;not null"`
	Message  string `json:"message" gorm:"not null"`
	PostedBy uint   `json:"posted_by"`
}
