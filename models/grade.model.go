package models

import (
	"time"

	"gorm.io/gorm"
)

// Grade is one-per-submission with upsert semantics
type Grade struct {
	gorm.Model
	SubmissionID uint      `json:"submission_id" gorm:"uniqueIndex;not null"`
	Score        float64   `json:"score"`
	Feedback     string    `json:"feedback"`
	GradedBy     uint      `json:"graded_by"`
	GradedAt     time.Time `json:"graded_at"`
}
