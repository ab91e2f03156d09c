package assignmentController

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

// assignmentRow is an assignment joined with the caller's submission and grade
type assignmentRow struct {
	AssignmentID uint       `json:"assignment_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DueDate      *time.Time `json:"due_date"`
	ResourceURL  string     `json:"resource_url"`
	SubmissionID *uint      `json:"submission_id"`
	Score        *float64   `json:"score"`
	Feedback     *string    `json:"feedback"`
}

// ListByClass returns a class's assignments with the caller's own submission
// state, and tells the client whether the caller is the instructor.
func ListByClass(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	role, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleMember)
	if !ok {
		return nil
	}
	userID := c.Locals("userId").(uint)

	var rows []assignmentRow
	if err := database.Database.Db.Model(&models.Assignment{}).
		Select(`assignments.id as assignment_id, assignments.title, assignments.description,
			assignments.due_date, assignments.resource_url,
			submissions.id as submission_id, grades.score, grades.feedback`).
		Joins("LEFT JOIN submissions ON submissions.assignment_id = assignments.id AND submissions.student_id = ?", userID).
		Joins("LEFT JOIN grades ON grades.submission_id = submissions.id").
		Where("assignments.class_id = ?", classID).
		Order("assignments.created_at asc").
		Scan(&rows).Error; err != nil {
		log.Printf("Error fetching assignments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully.", fiber.Map{
		"is_instructor": role == middleware.RoleInstructor,
		"assignments":   rows,
	})
}

// CreateAssignment posts a new assignment, instructor only. An optional
// resource file arrives base64-encoded in the JSON body.
func CreateAssignment(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleInstructor); !ok {
		return nil
	}

	reqData := new(struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		DueDate      string `json:"due_date"`
		ResourceName string `json:"resourceName"`
		ResourceData string `json:"resourceData"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title is required!", nil)
	}

	dueDate, err := parseDueDate(reqData.DueDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid due date!", nil)
	}

	resourceURL := ""
	if reqData.ResourceName != "" && reqData.ResourceData != "" {
		resourceURL, err = utils.SaveBase64File(
			fmt.Sprintf("assignments/%d", classID), reqData.ResourceName, reqData.ResourceData)
		if err != nil {
			log.Printf("Error saving assignment resource: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save resource file!", nil)
		}
	}

	assignment := models.Assignment{
		ClassID:     uint(classID),
		Title:       reqData.Title,
		Description: reqData.Description,
		DueDate:     dueDate,
		ResourceURL: resourceURL,
	}
	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		log.Printf("Error saving assignment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully.", fiber.Map{
		"assignment_id": assignment.ID,
		"resource_url":  assignment.ResourceURL,
	})
}

// EditAssignment partially updates an assignment, instructor only. Replacing
// the resource file removes the old one best-effort.
func EditAssignment(c *fiber.Ctx) error {
	assignmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment id!", nil)
	}

	var assignment models.Assignment
	if err := database.Database.Db.First(&assignment, assignmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, assignment.ClassID, middleware.RoleInstructor); !ok {
		return nil
	}

	reqData := new(struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		DueDate      string `json:"due_date"`
		ResourceName string `json:"resourceName"`
		ResourceData string `json:"resourceData"`
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
	if reqData.DueDate != "" {
		dueDate, err := parseDueDate(reqData.DueDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid due date!", nil)
		}
		updates["due_date"] = dueDate
	}

	oldResource := ""
	if reqData.ResourceName != "" && reqData.ResourceData != "" {
		resourceURL, err := utils.SaveBase64File(
			fmt.Sprintf("assignments/%d", assignment.ClassID), reqData.ResourceName, reqData.ResourceData)
		if err != nil {
			log.Printf("Error saving assignment resource: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save resource file!", nil)
		}
		updates["resource_url"] = resourceURL
		oldResource = assignment.ResourceURL
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No update fields provided!", nil)
	}

	if err := database.Database.Db.Model(&models.Assignment{}).
		Where("id = ?", assignment.ID).Updates(updates).Error; err != nil {
		log.Printf("Error updating assignment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}

	utils.DeleteUploadedFile(oldResource)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment updated successfully.", nil)
}

// Submit uploads a student's work. Past the due date the request is rejected.
// Resubmission replaces the file reference and clears any existing grade, both
// inside one transaction.
func Submit(c *fiber.Ctx) error {
	assignmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment id!", nil)
	}

	reqData := new(struct {
		FileName string `json:"fileName"`
		FileData string `json:"fileData"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.FileName == "" || reqData.FileData == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	var assignment models.Assignment
	if err := database.Database.Db.First(&assignment, assignmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, assignment.ClassID, middleware.RoleMember); !ok {
		return nil
	}
	userID := c.Locals("userId").(uint)

	if assignment.DueDate != nil && time.Now().After(*assignment.DueDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Deadline has passed.", nil)
	}

	fileURL, err := utils.SaveBase64File(
		fmt.Sprintf("submissions/%d/%d", assignment.ClassID, userID), reqData.FileName, reqData.FileData)
	if err != nil {
		log.Printf("Error saving submission file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save submission!", nil)
	}

	db := database.Database.Db

	var existing models.Submission
	err = db.Where("assignment_id = ? AND student_id = ?", assignment.ID, userID).First(&existing).Error
	if err == nil {
		oldFile := existing.FileURL

		tx := db.Begin()
		if err := tx.Model(&models.Submission{}).Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"file_url":     fileURL,
				"submitted_at": time.Now(),
			}).Error; err != nil {
			tx.Rollback()
			log.Printf("Error updating submission: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save submission!", nil)
		}
		// Hard delete: a soft-deleted row would still occupy the unique
		// submission_id slot when the instructor grades the resubmission.
		if err := tx.Unscoped().Where("submission_id = ?", existing.ID).Delete(&models.Grade{}).Error; err != nil {
			tx.Rollback()
			log.Printf("Error clearing grade: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save submission!", nil)
		}
		tx.Commit()

		utils.DeleteUploadedFile(oldFile)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission updated successfully.", fiber.Map{
			"submission_id": existing.ID,
			"file_url":      fileURL,
		})
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Error checking submission: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save submission!", nil)
	}

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    userID,
		FileURL:      fileURL,
		SubmittedAt:  time.Now(),
	}
	if err := db.Create(&submission).Error; err != nil {
		log.Printf("Error creating submission: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Submission saved successfully.", fiber.Map{
		"submission_id": submission.ID,
		"file_url":      submission.FileURL,
	})
}

// ListSubmissions returns all submissions for an assignment, instructor only
func ListSubmissions(c *fiber.Ctx) error {
	assignmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment id!", nil)
	}

	var assignment models.Assignment
	if err := database.Database.Db.First(&assignment, assignmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, assignment.ClassID, middleware.RoleInstructor); !ok {
		return nil
	}

	type submissionRow struct {
		SubmissionID uint      `json:"submission_id"`
		FileURL      string    `json:"file_url"`
		SubmittedAt  time.Time `json:"submitted_at"`
		Name         string    `json:"name"`
		Score        *float64  `json:"score"`
		Feedback     *string   `json:"feedback"`
	}

	var rows []submissionRow
	if err := database.Database.Db.Model(&models.Submission{}).
		Select(`submissions.id as submission_id, submissions.file_url, submissions.submitted_at,
			users.name, grades.score, grades.feedback`).
		Joins("JOIN users ON users.id = submissions.student_id").
		Joins("LEFT JOIN grades ON grades.submission_id = submissions.id").
		Where("submissions.assignment_id = ?", assignment.ID).
		Order("submissions.submitted_at asc").
		Scan(&rows).Error; err != nil {
		log.Printf("Error fetching submissions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully.", rows)
}

// GradeSubmission upserts the grade for a submission, instructor only
func GradeSubmission(c *fiber.Ctx) error {
	submissionID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid submission id!", nil)
	}

	reqData := new(struct {
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var submission models.Submission
	if err := db.First(&submission, submissionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}
	var assignment models.Assignment
	if err := db.First(&assignment, submission.AssignmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, assignment.ClassID, middleware.RoleInstructor); !ok {
		return nil
	}
	graderID := c.Locals("userId").(uint)

	var grade models.Grade
	err = db.Where("submission_id = ?", submission.ID).First(&grade).Error
	if err == nil {
		if err := db.Model(&models.Grade{}).Where("id = ?", grade.ID).
			Updates(map[string]interface{}{
				"score":     reqData.Score,
				"feedback":  reqData.Feedback,
				"graded_by": graderID,
				"graded_at": time.Now(),
			}).Error; err != nil {
			log.Printf("Error updating grade: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save grade!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Grade saved.", nil)
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Error checking grade: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save grade!", nil)
	}

	grade = models.Grade{
		SubmissionID: submission.ID,
		Score:        reqData.Score,
		Feedback:     reqData.Feedback,
		GradedBy:     graderID,
		GradedAt:     time.Now(),
	}
	if err := db.Create(&grade).Error; err != nil {
		log.Printf("Error creating grade: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save grade!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grade saved.", nil)
}

// ClassGrades returns the caller's scores across a class's assignments
func ClassGrades(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleMember); !ok {
		return nil
	}
	userID := c.Locals("userId").(uint)

	type gradeRow struct {
		AssignmentID uint     `json:"assignment_id"`
		Title        string   `json:"title"`
		ResourceURL  string   `json:"resource_url"`
		Score        *float64 `json:"score"`
		Feedback     *string  `json:"feedback"`
	}

	var rows []gradeRow
	if err := database.Database.Db.Model(&models.Assignment{}).
		Select(`assignments.id as assignment_id, assignments.title, assignments.resource_url,
			grades.score, grades.feedback`).
		Joins("LEFT JOIN submissions ON submissions.assignment_id = assignments.id AND submissions.student_id = ?", userID).
		Joins("LEFT JOIN grades ON grades.submission_id = submissions.id").
		Where("assignments.class_id = ?", classID).
		Order("assignments.created_at asc").
		Scan(&rows).Error; err != nil {
		log.Printf("Error fetching grades: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grades!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grades fetched successfully.", rows)
}

// parseDueDate accepts RFC3339 timestamps or bare dates
func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date format: %s", value)
}
