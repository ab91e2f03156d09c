package classRoutes

import (
	classControllers "classroom/controllers/class"
	"classroom/middleware"
	classValidators "classroom/validators/class"

	"github.com/gofiber/fiber/v2"
)

func SetupClassRoutes(app *fiber.App) {
	classGroup := app.Group("/classes", middleware.JWTMiddleware)

	classGroup.Post("/", classValidators.CreateClass(), classControllers.CreateClass)
	classGroup.Get("/", classControllers.ListClasses)
	classGroup.Post("/join", classValidators.JoinClass(), classControllers.JoinClass)
	classGroup.Put("/:id", classControllers.EditClass)
	classGroup.Delete("/:id", classControllers.DeleteClass)
	classGroup.Get("/:id/enrollments", classControllers.ListEnrollments)
	classGroup.Put("/:classId/enrollments/:enrollmentId", classControllers.UpdateEnrollment)
}
