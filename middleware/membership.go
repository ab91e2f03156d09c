package middleware

import (
	"classroom/database"
	"classroom/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Role is a user's capability within a class
type Role int

const (
	RoleNone Role = iota
	RoleMember
	RoleInstructor
)

// ClassRole resolves what a user may do in a class: the instructor gets full
// access, an approved student gets member access, everyone else gets none.
// Returns gorm.ErrRecordNotFound when the class does not exist.
func ClassRole(db *gorm.DB, classID, userID uint) (Role, error) {
	var class models.Class
	if err := db.Select("instructor_id").First(&class, classID).Error; err != nil {
		return RoleNone, err
	}
	if class.InstructorID == userID {
		return RoleInstructor, nil
	}

	var enrollment models.Enrollment
	err := db.Where("class_id = ? AND student_id = ? AND status = ?",
		classID, userID, models.EnrollmentApproved).First(&enrollment).Error
	if err == nil {
		return RoleMember, nil
	}
	if err == gorm.ErrRecordNotFound {
		return RoleNone, nil
	}
	return RoleNone, err
}

// RequireClassRole resolves the caller's role for classID and converts
// failures to the JSON error responses shared by every class-scoped handler.
// ok is false when a response has already been written.
func RequireClassRole(c *fiber.Ctx, classID uint, minimum Role) (Role, bool) {
	userID, okLocal := c.Locals("userId").(uint)
	if !okLocal {
		_ = JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return RoleNone, false
	}

	role, err := ClassRole(database.Database.Db, classID, userID)
	if err == gorm.ErrRecordNotFound {
		_ = JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
		return RoleNone, false
	}
	if err != nil {
		_ = JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check class access!", nil)
		return RoleNone, false
	}
	if role < minimum {
		_ = JsonResponse(c, fiber.StatusForbidden, false, "Not authorized for this class!", nil)
		return RoleNone, false
	}
	return role, true
}
