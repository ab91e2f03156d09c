package announcementController

import (
	"classroom/database"
	"classroom/middleware"
	"classroom/models"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ListByClass returns a class's announcements, newest first
func ListByClass(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleMember); !ok {
		return nil
	}

	var announcements []models.Announcement
	if err := database.Database.Db.Where("class_id = ?", classID).
		Order("created_at desc").Find(&announcements).Error; err != nil {
		log.Printf("Error fetching announcements: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch announcements!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcements fetched successfully.", announcements)
}

// Post creates an announcement, instructor only, and fans out one
// notification per approved student in the same transaction.
func Post(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	reqData := new(struct {
		Message string `json:"message"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Message == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Message is required!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleInstructor); !ok {
		return nil
	}
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var studentIDs []uint
	if err := db.Model(&models.Enrollment{}).
		Where("class_id = ? AND status = ?", classID, models.EnrollmentApproved).
		Pluck("student_id", &studentIDs).Error; err != nil {
		log.Printf("Error fetching enrolled students: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post announcement!", nil)
	}

	announcement := models.Announcement{
		ClassID:  uint(classID),
		Message:  reqData.Message,
		PostedBy: userID,
	}

	var notes []models.Notification
	for _, id := range studentIDs {
		if id == userID {
			continue
		}
		notes = append(notes, models.Notification{
			UserID:  id,
			Message: fmt.Sprintf("New announcement in class %d", classID),
		})
	}

	tx := db.Begin()
	if err := tx.Create(&announcement).Error; err != nil {
		tx.Rollback()
		log.Printf("Error saving announcement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post announcement!", nil)
	}
	if len(notes) > 0 {
		if err := tx.Create(&notes).Error; err != nil {
			tx.Rollback()
			log.Printf("Error fanning out notifications: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post announcement!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Announcement posted.", fiber.Map{
		"announcement_id": announcement.ID,
	})
}
