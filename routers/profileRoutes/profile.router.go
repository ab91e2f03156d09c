package profileRoutes

import (
	profileControllers "classroom/controllers/profile"
	"classroom/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App) {
	profileGroup := app.Group("/profile")

	profileGroup.Get("/", middleware.JWTMiddleware, profileControllers.GetProfile)
	profileGroup.Put("/", middleware.JWTMiddleware, profileControllers.UpdateProfile)
	profileGroup.Put("/password", middleware.JWTMiddleware, profileControllers.ChangePassword)
}
