package classController

import (
	"classroom/database"
	"classroom/middleware"
	"classroom/models"
	"classroom/utils"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateClass creates a class owned by the caller with a fresh invite code
func CreateClass(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	inviteCode, err := utils.GenerateInviteCode(db)
	if err != nil {
		log.Printf("Error generating invite code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create class!", nil)
	}

	newClass := models.Class{
		Title:        reqData.Title,
		Description:  reqData.Description,
		InviteCode:   inviteCode,
		InstructorID: userID,
	}

	if err := db.Create(&newClass).Error; err != nil {
		log.Printf("Error saving class to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class created successfully.", fiber.Map{
		"class_id":    newClass.ID,
		"title":       newClass.Title,
		"description": newClass.Description,
		"invite_code": newClass.InviteCode,
	})
}

// ListClasses returns classes the caller teaches plus classes they are
// approved in, each flagged with is_instructor.
func ListClasses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var teaching []models.Class
	if err := db.Where("instructor_id = ?", userID).Order("created_at desc").Find(&teaching).Error; err != nil {
		log.Printf("Error fetching classes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
	}

	var enrolledIDs []uint
	if err := db.Model(&models.Enrollment{}).
		Where("student_id = ? AND status = ?", userID, models.EnrollmentApproved).
		Pluck("class_id", &enrolledIDs).Error; err != nil {
		log.Printf("Error fetching enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
	}

	var enrolled []models.Class
	if len(enrolledIDs) > 0 {
		if err := db.Where("id IN ?", enrolledIDs).Order("created_at desc").Find(&enrolled).Error; err != nil {
			log.Printf("Error fetching enrolled classes: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
		}
	}

	classes := make([]fiber.Map, 0, len(teaching)+len(enrolled))
	for _, cls := range teaching {
		classes = append(classes, classEntry(cls, true))
	}
	for _, cls := range enrolled {
		classes = append(classes, classEntry(cls, false))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classes fetched successfully.", classes)
}

func classEntry(cls models.Class, isInstructor bool) fiber.Map {
	entry := fiber.Map{
		"class_id":      cls.ID,
		"title":         cls.Title,
		"description":   cls.Description,
		"is_instructor": isInstructor,
	}
	// The invite code is only shown to the instructor
	if isInstructor {
		entry["invite_code"] = cls.InviteCode
	}
	return entry
}

// EditClass updates title/description, instructor only
func EditClass(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	classID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != "" {
		updates["title"] = reqData.Title
	}
	if reqData.Description != "" {
		updates["description"] = reqData.Description
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No update fields provided!", nil)
	}

	result := database.Database.Db.Model(&models.Class{}).
		Where("id = ? AND instructor_id = ?", classID, userID).
		Updates(updates)
	if result.Error != nil {
		log.Printf("Error updating class: %v", result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update class!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found or unauthorized!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class updated successfully.", nil)
}

// DeleteClass removes a class, instructor only
func DeleteClass(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	classID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	result := database.Database.Db.
		Where("id = ? AND instructor_id = ?", classID, userID).
		Delete(&models.Class{})
	if result.Error != nil {
		log.Printf("Error deleting class: %v", result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete class!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found or unauthorized!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class deleted successfully.", nil)
}

// JoinClass creates a pending enrollment from an invite code. A rejected
// request does not block a new one; a pending or approved one does.
func JoinClass(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		InviteCode string `json:"invite_code"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var class models.Class
	if err := db.Where("invite_code = ?", reqData.InviteCode).First(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	if class.InstructorID == userID {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are the instructor of this class!", nil)
	}

	var existing models.Enrollment
	err := db.Where("class_id = ? AND student_id = ? AND status IN ?",
		class.ID, userID, []string{models.EnrollmentPending, models.EnrollmentApproved}).
		First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already requested to join this class!", nil)
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Error checking enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join class!", nil)
	}

	enrollment := models.Enrollment{
		ClassID:   class.ID,
		StudentID: userID,
		Status:    models.EnrollmentPending,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join class!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment request submitted.", enrollment)
}

// ListEnrollments returns join requests for a class, instructor only
func ListEnrollments(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleInstructor); !ok {
		return nil
	}

	type enrollmentRow struct {
		EnrollmentID uint   `json:"enrollment_id"`
		StudentID    uint   `json:"student_id"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		Status       string `json:"status"`
	}

	var rows []enrollmentRow
	if err := database.Database.Db.Model(&models.Enrollment{}).
		Select("enrollments.id as enrollment_id, enrollments.student_id, users.name, users.email, enrollments.status").
		Joins("JOIN users ON users.id = enrollments.student_id").
		Where("enrollments.class_id = ?", classID).
		Order("enrollments.created_at asc").
		Scan(&rows).Error; err != nil {
		log.Printf("Error fetching enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully.", rows)
}

// UpdateEnrollment approves or rejects a join request, instructor only
func UpdateEnrollment(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}
	enrollmentID, err := c.ParamsInt("enrollmentId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Status != models.EnrollmentApproved && reqData.Status != models.EnrollmentRejected {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be approved or rejected!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleInstructor); !ok {
		return nil
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND class_id = ?", enrollmentID, classID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	var class models.Class
	if err := db.First(&class, classID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	// Status change and the student's notification land together
	tx := db.Begin()
	if err := tx.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
		Update("status", reqData.Status).Error; err != nil {
		tx.Rollback()
		log.Printf("Error updating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}
	if reqData.Status == models.EnrollmentApproved {
		note := models.Notification{
			UserID:  enrollment.StudentID,
			Message: fmt.Sprintf("Your enrollment in %q was approved", class.Title),
		}
		if err := tx.Create(&note).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating notification: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
		}
	}
	tx.Commit()

	if reqData.Status == models.EnrollmentApproved {
		go func(studentID uint, className string) {
			var student models.User
			if err := database.Database.Db.Select("name, email").First(&student, studentID).Error; err != nil {
				return
			}
			if err := utils.SendEnrollmentApprovedEmail(student.Email, student.Name, className); err != nil {
				log.Printf("Error sending enrollment email: %v", err)
			}
		}(enrollment.StudentID, class.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment "+reqData.Status+".", nil)
}
