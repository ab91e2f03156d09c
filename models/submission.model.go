package models

import (
	"time"

	"gorm.io/gorm"
)

// Submission holds at most one live upload per (assignment, student) pair.
// Resubmission overwrites FileURL and clears any prior grade.
type Submission struct {
	gorm.Model
	AssignmentID uint      `json:"assignment_id" gorm:"index;not null"`
	StudentID    uint      `json:"student_id" gorm:"index;not null"`
	FileURL      string    `json:"file_url" gorm:"not null"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
