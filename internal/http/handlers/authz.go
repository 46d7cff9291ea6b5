package handlers

import (
	applog "sutradhar/internal/log"
	"sutradhar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireUser resolves the sid cookie to a session or rejects with 401.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonError(c, fiber.StatusUnauthorized, "login required")
		}
		sess, err := auth.Current(sid)
		if err != nil || sess == nil {
			return jsonError(c, fiber.StatusUnauthorized, "login required")
		}
		c.Locals("session", sess)
		return c.Next()
	}
}

// RequireRole additionally checks the profile role.
func RequireRole(auth *services.AuthService, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonError(c, fiber.StatusUnauthorized, "login required")
		}
		sess, err := auth.Current(sid)
		if err != nil || sess == nil {
			return jsonError(c, fiber.StatusUnauthorized, "login required")
		}
		for _, r := range roles {
			if sess.Profile.Role == r {
				c.Locals("session", sess)
				return c.Next()
			}
		}
		applog.Security(c, "access.denied.role", map[string]any{"user": sess.User.ID, "role": sess.Profile.Role})
		return jsonError(c, fiber.StatusForbidden, "access denied")
	}
}
