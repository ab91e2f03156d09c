package notificationController

import (
	"classroom/database"
	"classroom/middleware"
	"classroom/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

// List returns the caller's notifications, newest first
func List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var notes []models.Notification
	if err := database.Database.Db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&notes).Error; err != nil {
		log.Printf("Error fetching notifications: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully.", notes)
}

// MarkRead flags one of the caller's notifications as read
func MarkRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	noteID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	result := database.Database.Db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", noteID, userID).
		Update("is_read", true)
	if result.Error != nil {
		log.Printf("Error marking notification read: %v", result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read.", nil)
}
