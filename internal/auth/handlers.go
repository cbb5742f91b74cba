package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes token introspection for clients of the tracking API.
func RegisterRoutes(r fiber.Router, secret string) {
	r.Get("/verify", JWTMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"valid": true, "user_id": c.Locals("user_id")})
	})
}
