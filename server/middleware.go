package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sang6174/ocean-chat-server-sub000/config"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/token"
)

// JWTMiddleware verifies the bearer token and stashes the actor's user id
// and the raw token (the originating-session identity for fanout exclusion)
// in Locals.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}
		tokenStr := auth[len(prefix):]

		userID, err := token.Verify(cfg.JWT, tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired session token"})
		}

		c.Locals("userID", userID)
		c.Locals("sessionToken", tokenStr)
		return c.Next()
	}
}
