package models

import "gorm.io/gorm"

// Enrollment status values
const (
	EnrollmentPending  = "pending"
	EnrollmentApproved = "approved"
	EnrollmentRejected = "rejected"
)

// Enrollment tracks a student's join request for a class
type Enrollment struct {
	gorm.Model
	ClassID   uint   `json:"class_id" gorm:"index;not null"`
	StudentID uint   `json:"student_id" gorm:"index;not null"`
	Status    string `json:"status" gorm:"default:'pending'"` // pending, approved, rejected
}
