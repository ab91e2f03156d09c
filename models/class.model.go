package models

import "gorm.io/gorm"

// Class represents a classroom owned by an instructor
type Class struct {
	gorm.Model
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description"`
	InviteCode   string `json:"invite_code" gorm:"uniqueIndex;not null"`
	InstructorID uint   `json:"instructor_id" gorm:"index;not null"`
}
