package models

import "gorm.io/gorm"

// Thread is a class discussion topic
type Thread struct {
	gorm.Model
	ClassID   uint   `json:"class_id" gorm:"index;not null"`
	CreatedBy uint   `json:"created_by" gorm:"not null"`
	Title     string `json:"title" gorm:"not null"`
	Content   string `json:"content"`
}

// Comment is a reply inside a thread
type Comment struct {
	gorm.Model
	ThreadID uint   `json:"thread_id" gorm:"index;not null"`
	PostedBy uint   `json:"posted_by" gorm:"not null"`
	Content  string `json:"content" gorm:"not null"`
}
