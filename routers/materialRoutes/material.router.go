package materialRoutes

import (
	materialControllers "classroom/controllers/material"
	"classroom/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMaterialRoutes(app *fiber.App) {
	materialGroup := app.Group("/materials", middleware.JWTMiddleware)

	materialGroup.Get("/class/:classId", materialControllers.ListByClass)
	materialGroup.Post("/class/:classId", materialControllers.Upload)
	materialGroup.Put("/:id", materialControllers.Update)
	materialGroup.Delete("/:id", materialControllers.Delete)
}
