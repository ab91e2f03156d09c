package lectureController

import (
	"classroom/database"
	"classroom/middleware"
	"classroom/models"
	"classroom/utils"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Schedule creates a lecture with a meeting link, instructor only. Approved
// students are notified.
func Schedule(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	reqData := new(struct {
		Title string `json:"title"`
		Time  string `json:"time"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Title == "" || reqData.Time == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title and time are required!", nil)
	}

	startTime, err := time.Parse(time.RFC3339, reqData.Time)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid time, expected RFC3339!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleInstructor); !ok {
		return nil
	}
	userID := c.Locals("userId").(uint)

	meeting, err := utils.CreateMeeting(reqData.Title, startTime)
	if err != nil {
		log.Printf("Error creating meeting: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create meeting link!", nil)
	}

	db := database.Database.Db

	lecture := models.Lecture{
		ClassID:   uint(classID),
		Title:     reqData.Title,
		StartTime: startTime,
		MeetLink:  meeting.MeetLink,
		EventID:   meeting.ID,
		CreatedBy: userID,
	}

	var studentIDs []uint
	if err := db.Model(&models.Enrollment{}).
		Where("class_id = ? AND status = ?", classID, models.EnrollmentApproved).
		Pluck("student_id", &studentIDs).Error; err != nil {
		log.Printf("Error fetching enrolled students: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule lecture!", nil)
	}

	var notes []models.Notification
	for _, id := range studentIDs {
		notes = append(notes, models.Notification{
			UserID:  id,
			Message: fmt.Sprintf("Lecture %q scheduled for %s", reqData.Title, startTime.Format(time.RFC3339)),
		})
	}

	tx := db.Begin()
	if err := tx.Create(&lecture).Error; err != nil {
		tx.Rollback()
		log.Printf("Error saving lecture: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule lecture!", nil)
	}
	if len(notes) > 0 {
		if err := tx.Create(&notes).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating notifications: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule lecture!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture scheduled.", lecture)
}

// ListByClass returns a class's lectures, next first
func ListByClass(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleMember); !ok {
		return nil
	}

	var lectures []models.Lecture
	if err := database.Database.Db.Where("class_id = ?", classID).
		Order("start_time asc").Find(&lectures).Error; err != nil {
		log.Printf("Error fetching lectures: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lectures!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures fetched successfully.", lectures)
}

// Join records the caller as a lecture participant, idempotently
func Join(c *fiber.Ctx) error {
	lectureID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture id!", nil)
	}

	var lecture models.Lecture
	if err := database.Database.Db.First(&lecture, lectureID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, lecture.ClassID, middleware.RoleMember); !ok {
		return nil
	}
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var existing models.LectureParticipant
	err = db.Where("lecture_id = ? AND user_id = ?", lecture.ID, userID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		participant := models.LectureParticipant{LectureID: lecture.ID, UserID: userID}
		if err := db.Create(&participant).Error; err != nil {
			log.Printf("Error joining lecture: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join lecture!", nil)
		}
	} else if err != nil {
		log.Printf("Error checking participant: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Joined lecture.", fiber.Map{
		"meet_link": lecture.MeetLink,
	})
}

// ShareScreen flips the screen-shared flag, instructor only
func ShareScreen(c *fiber.Ctx) error {
	lectureID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture id!", nil)
	}

	var lecture models.Lecture
	if err := database.Database.Db.First(&lecture, lectureID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, lecture.ClassID, middleware.RoleInstructor); !ok {
		return nil
	}

	if err := database.Database.Db.Model(&models.Lecture{}).
		Where("id = ?", lecture.ID).Update("screen_shared", true).Error; err != nil {
		log.Printf("Error updating lecture: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start screen sharing!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Screen sharing started.", nil)
}
