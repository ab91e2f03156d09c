package models

import "gorm.io/gorm"

// Material is an uploaded class resource with optional folder/tag metadata
type Material struct {
	gorm.Model
	ClassID    uint   `json:"class_id" gorm:"index;not null"`
	Title      string `json:"title"`
	FileURL    string `json:"file_url" gorm:"not null"`
	Folder     string `json:"folder"`
	Tags       string `json:"tags"`
	UploadedBy uint   `json:"uploaded_by"`
}
