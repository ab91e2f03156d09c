package utils

import (
	"classroom/database"
	"classroom/models"
	"fmt"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[LECTURE-REMINDER %s] %s", time.Now().Format(time.RFC3339), message)
}

// RunLectureReminders notifies approved students about lectures starting
// within the next hour. Each lecture is reminded once.
func RunLectureReminders() {
	db := database.Database.Db
	current := time.Now()

	var lectures []models.Lecture
	if err := db.Where("start_time > ? AND start_time <= ? AND reminded = ?",
		current, current.Add(time.Hour), false).
		Where("start_time >= ?", now.With(current).BeginningOfDay()).
		Find(&lectures).Error; err != nil {
		logScheduler("Error fetching upcoming lectures: " + err.Error())
		return
	}

	for _, lecture := range lectures {
		var studentIDs []uint
		if err := db.Model(&models.Enrollment{}).
			Where("class_id = ? AND status = ?", lecture.ClassID, models.EnrollmentApproved).
			Pluck("student_id", &studentIDs).Error; err != nil {
			logScheduler("Error fetching enrolled students: " + err.Error())
			continue
		}

		message := fmt.Sprintf("Lecture %q starts at %s", lecture.Title, lecture.StartTime.Format("15:04"))

		var notes []models.Notification
		for _, id := range studentIDs {
			notes = append(notes, models.Notification{UserID: id, Message: message})
		}
		if len(notes) > 0 {
			if err := db.Create(&notes).Error; err != nil {
				logScheduler("Error inserting reminder notifications: " + err.Error())
				continue
			}
		}

		if err := db.Model(&models.Lecture{}).Where("id = ?", lecture.ID).
			Update("reminded", true).Error; err != nil {
			logScheduler("Error marking lecture reminded: " + err.Error())
		}
	}
}

// StartReminderScheduler starts the cron job that sends lecture reminders
func StartReminderScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("*/15 * * * *", RunLectureReminders); err != nil {
		log.Fatalf("Failed to schedule lecture reminders: %v", err)
	}

	c.Start()
	logScheduler("Scheduler started")
	return c
}
