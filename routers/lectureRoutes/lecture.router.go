package lectureRoutes

import (
	lectureControllers "classroom/controllers/lecture"
	"classroom/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupLectureRoutes(app *fiber.App) {
	lectureGroup := app.Group("/lectures", middleware.JWTMiddleware)

	lectureGroup.Post("/class/:classId/schedule", lectureControllers.Schedule)
	lectureGroup.Get("/class/:classId", lectureControllers.ListByClass)
	lectureGroup.Post("/:id/join", lectureControllers.Join)
	lectureGroup.Post("/:id/share-screen", lectureControllers.ShareScreen)
}
