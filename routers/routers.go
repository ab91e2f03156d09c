package routers

import (
	"classroom/routers/assignmentRoutes"
	"classroom/routers/authRoutes"
	"classroom/routers/classRoutes"
	"classroom/routers/communicationRoutes"
	"classroom/routers/lectureRoutes"
	"classroom/routers/materialRoutes"
	"classroom/routers/profileRoutes"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes mounts every resource router on the app
func SetupRoutes(app *fiber.App) {
	authRoutes.SetupAuthRoutes(app)
	profileRoutes.SetupProfileRoutes(app)
	classRoutes.SetupClassRoutes(app)
	assignmentRoutes.SetupAssignmentRoutes(app)
	materialRoutes.SetupMaterialRoutes(app)
	communicationRoutes.SetupCommunicationRoutes(app)
	lectureRoutes.SetupLectureRoutes(app)
}
