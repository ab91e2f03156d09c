package assignmentRoutes

import (
	assignmentControllers "classroom/controllers/assignment"
	"classroom/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAssignmentRoutes(app *fiber.App) {
	assignmentGroup := app.Group("/assignments", middleware.JWTMiddleware)

	assignmentGroup.Get("/class/:classId", assignmentControllers.ListByClass)
	assignmentGroup.Post("/class/:classId", assignmentControllers.CreateAssignment)
	assignmentGroup.Get("/class/:classId/grades", assignmentControllers.ClassGrades)
	assignmentGroup.Put("/:id", assignmentControllers.EditAssignment)
	assignmentGroup.Post("/:id/submit", assignmentControllers.Submit)
	assignmentGroup.Get("/:id/submissions", assignmentControllers.ListSubmissions)
	assignmentGroup.Post("/submissions/:id/grade", assignmentControllers.GradeSubmission)
}
