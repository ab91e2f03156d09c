package models

import (
	"time"

	"gorm.io/gorm"
)

// Lecture is a scheduled live session with a meeting link
type Lecture struct {
	gorm.Model
	ClassID      uint      `json:"class_id" gorm:"index;not null"`
	Title        string    `json:"title" gorm:"not null"`
	StartTime    time.Time `json:"start_time" gorm:"not null"`
	MeetLink     string    `json:"meet_link"`
	EventID      string    `json:"event_id"`
	CreatedBy    uint      `json:"created_by"`
	ScreenShared bool      `json:"screen_shared" gorm:"default:false"`
	Reminded     bool      `json:"-" gorm:"default:false"`
}

// LectureParticipant records who joined a lecture
type LectureParticipant struct {
	gorm.Model
	LectureID uint `json:"lecture_id" gorm:"index;not null"`
	UserID    uint `json:"user_id" gorm:"index;not null"`
}
