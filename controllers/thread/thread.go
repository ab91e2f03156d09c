package threadController

import (
	"classroom/database"
	"classroom/middleware"
	"classroom/models"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ListByClass returns a class's discussion threads with author names
func ListByClass(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleMember); !ok {
		return nil
	}

	type threadRow struct {
		ThreadID  uint      `json:"thread_id"`
		Title     string    `json:"title"`
		Content   string    `json:"content"`
		CreatedBy uint      `json:"created_by"`
		CreatedAt time.Time `json:"created_at"`
		Name      string    `json:"name"`
	}

	var rows []threadRow
	if err := database.Database.Db.Model(&models.Thread{}).
		Select("threads.id as thread_id, threads.title, threads.content, threads.created_by, threads.created_at, users.name").
		Joins("JOIN users ON users.id = threads.created_by").
		Where("threads.class_id = ?", classID).
		Order("threads.created_at desc").
		Scan(&rows).Error; err != nil {
		log.Printf("Error fetching threads: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch threads!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Threads fetched successfully.", rows)
}

// Create starts a discussion thread; any class member may post. A student's
// thread notifies the instructor.
func Create(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	reqData := new(struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Title == "" || reqData.Content == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title and content are required!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, uint(classID), middleware.RoleMember); !ok {
		return nil
	}
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	thread := models.Thread{
		ClassID:   uint(classID),
		CreatedBy: userID,
		Title:     reqData.Title,
		Content:   reqData.Content,
	}

	var class models.Class
	if err := db.Select("instructor_id").First(&class, classID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	tx := db.Begin()
	if err := tx.Create(&thread).Error; err != nil {
		tx.Rollback()
		log.Printf("Error saving thread: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create thread!", nil)
	}
	if class.InstructorID != userID {
		note := models.Notification{
			UserID:  class.InstructorID,
			Message: fmt.Sprintf("New discussion thread in class %d", classID),
		}
		if err := tx.Create(&note).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating notification: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create thread!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Thread created.", fiber.Map{
		"thread_id": thread.ID,
	})
}

// ListComments returns a thread's comments, oldest first
func ListComments(c *fiber.Ctx) error {
	threadID, err := c.ParamsInt("threadId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid thread id!", nil)
	}

	var thread models.Thread
	if err := database.Database.Db.First(&thread, threadID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, thread.ClassID, middleware.RoleMember); !ok {
		return nil
	}

	type commentRow struct {
		CommentID uint      `json:"comment_id"`
		Content   string    `json:"content"`
		PostedBy  uint      `json:"posted_by"`
		CreatedAt time.Time `json:"posted_at"`
		Name      string    `json:"name"`
	}

	var rows []commentRow
	if err := database.Database.Db.Model(&models.Comment{}).
		Select("comments.id as comment_id, comments.content, comments.posted_by, comments.created_at, users.name").
		Joins("JOIN users ON users.id = comments.posted_by").
		Where("comments.thread_id = ?", threadID).
		Order("comments.created_at asc").
		Scan(&rows).Error; err != nil {
		log.Printf("Error fetching comments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully.", rows)
}

// PostComment replies to a thread; the thread author gets notified when
// someone else comments.
func PostComment(c *fiber.Ctx) error {
	threadID, err := c.ParamsInt("threadId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid thread id!", nil)
	}

	reqData := new(struct {
		Content string `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Content == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is required!", nil)
	}

	var thread models.Thread
	if err := database.Database.Db.First(&thread, threadID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}

	if _, ok := middleware.RequireClassRole(c, thread.ClassID, middleware.RoleMember); !ok {
		return nil
	}
	userID := c.Locals("userId").(uint)

	comment := models.Comment{
		ThreadID: thread.ID,
		PostedBy: userID,
		Content:  reqData.Content,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&comment).Error; err != nil {
		tx.Rollback()
		log.Printf("Error saving comment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post comment!", nil)
	}
	if thread.CreatedBy != userID {
		note := models.Notification{
			UserID:  thread.CreatedBy,
			Message: "New comment on your thread",
		}
		if err := tx.Create(&note).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating notification: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post comment!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment posted.", fiber.Map{
		"comment_id": comment.ID,
	})
}
