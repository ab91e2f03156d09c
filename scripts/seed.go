// Seed inserts a demo instructor, student, class and assignment so the
// frontend has something to show on a fresh database.
//
// Usage: go run ./scripts
package main

import (
	"classroom/config"
	"classroom/database"
	"classroom/models"
	"classroom/utils"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	instructor := models.User{Name: "Demo Instructor", Email: "instructor@example.com", Password: string(hash)}
	if err := db.Where("email = ?", instructor.Email).FirstOrCreate(&instructor).Error; err != nil {
		log.Fatalf("Failed to create instructor: %v", err)
	}
	db.Where("user_id = ?", instructor.ID).FirstOrCreate(&models.Dashboard{UserID: instructor.ID})

	student := models.User{Name: "Demo Student", Email: "student@example.com", Password: string(hash)}
	if err := db.Where("email = ?", student.Email).FirstOrCreate(&student).Error; err != nil {
		log.Fatalf("Failed to create student: %v", err)
	}
	db.Where("user_id = ?", student.ID).FirstOrCreate(&models.Dashboard{UserID: student.ID})

	code, err := utils.GenerateInviteCode(db)
	if err != nil {
		log.Fatalf("Failed to generate invite code: %v", err)
	}
	class := models.Class{
		Title:        "CS101",
		Description:  "Introduction to Computer Science",
		InviteCode:   code,
		InstructorID: instructor.ID,
	}
	if err := db.Where("title = ? AND instructor_id = ?", class.Title, instructor.ID).
		FirstOrCreate(&class).Error; err != nil {
		log.Fatalf("Failed to create class: %v", err)
	}

	enrollment := models.Enrollment{ClassID: class.ID, StudentID: student.ID, Status: models.EnrollmentApproved}
	db.Where("class_id = ? AND student_id = ?", class.ID, student.ID).FirstOrCreate(&enrollment)

	due := time.Now().Add(7 * 24 * time.Hour)
	assignment := models.Assignment{
		ClassID:     class.ID,
		Title:       "Hello World",
		Description: "Write and submit your first program.",
		DueDate:     &due,
	}
	db.Where("class_id = ? AND title = ?", class.ID, assignment.Title).FirstOrCreate(&assignment)

	log.Printf("Seeded demo data: class %q with invite code %s", class.Title, class.InviteCode)
}
