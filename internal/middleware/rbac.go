package middleware

import (
	"kliernav-crm/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// Evaluator is the slice of the access evaluator the route guards need.
type Evaluator interface {
	Can(user *models.User, action models.Action, module models.Module) bool
	CanAccessModule(user *models.User, module models.Module) bool
}

// RequirePermission rejects the request unless the acting user may perform
// the action on the module (or holds the module's manage grant).
func RequirePermission(eval Evaluator, module models.Module, action models.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if !eval.Can(user, action, module) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Insufficient permissions",
			})
		}

		return c.Next()
	}
}

// RequireModule rejects the request unless the acting user can see the module
// at all.
func RequireModule(eval Evaluator, module models.Module) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if !eval.CanAccessModule(user, module) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Module not accessible",
			})
		}

		return c.Next()
	}
}
