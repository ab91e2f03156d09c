package communicationRoutes

import (
	announcementControllers "classroom/controllers/announcement"
	notificationControllers "classroom/controllers/notification"
	threadControllers "classroom/controllers/thread"
	"classroom/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupCommunicationRoutes wires announcements, discussion threads and
// notifications.
func SetupCommunicationRoutes(app *fiber.App) {
	announcementGroup := app.Group("/announcements", middleware.JWTMiddleware)
	announcementGroup.Get("/class/:classId", announcementControllers.ListByClass)
	announcementGroup.Post("/class/:classId", announcementControllers.Post)

	threadGroup := app.Group("/threads", middleware.JWTMiddleware)
	threadGroup.Get("/class/:classId", threadControllers.ListByClass)
	threadGroup.Post("/class/:classId", threadControllers.Create)
	threadGroup.Get("/:threadId/comments", threadControllers.ListComments)
	threadGroup.Post("/:threadId/comments", threadControllers.PostComment)

	notificationGroup := app.Group("/notifications", middleware.JWTMiddleware)
	notificationGroup.Get("/", notificationControllers.List)
	notificationGroup.Post("/:id/read", notificationControllers.MarkRead)
}
