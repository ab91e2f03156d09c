package models

import (
	"time"

	"gorm.io/gorm"
)

// Assignment belongs to a class
type Assignment struct {
	gorm.Model
	ClassID     uint       `json:"class_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	ResourceURL string     `json:"resource_url"`
}
