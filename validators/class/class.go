package classValidator

import (
	"classroom/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateClass validator middleware
func CreateClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" || strings.TrimSpace(reqData.Description) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title and description are required!", nil)
		}

		return c.Next()
	}
}

// JoinClass validator middleware
func JoinClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			InviteCode string `json:"invite_code"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.InviteCode) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invite code is required!", nil)
		}

		return c.Next()
	}
}
