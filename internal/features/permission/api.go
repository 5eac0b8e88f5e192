package permission

import (
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermissionApi struct {
	controller *PermissionController
	config     *config.Config
	users      middleware.UserResolver
	eval       middleware.Evaluator
}

func NewPermissionApi(controller *PermissionController, cfg *config.Config, users middleware.UserResolver, eval middleware.Evaluator) *PermissionApi {
	return &PermissionApi{
		controller: controller,
		config:     cfg,
		users:      users,
		eval:       eval,
	}
}

// Setup registers permission routes
func (h *PermissionApi) Setup(app *fiber.App) {
	perms := app.Group("/api/permissions", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	// The catalog is only needed by the role management screens.
	perms.Get("/", middleware.RequireModule(h.eval, models.ModuleUsers), h.controller.ListPermissions)
}
