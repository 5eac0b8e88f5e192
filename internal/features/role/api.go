package role

import (
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RoleApi struct {
	controller *RoleController
	config     *config.Config
	users      middleware.UserResolver
	eval       middleware.Evaluator
}

func NewRoleApi(controller *RoleController, cfg *config.Config, users middleware.UserResolver, eval middleware.Evaluator) *RoleApi {
	return &RoleApi{
		controller: controller,
		config:     cfg,
		users:      users,
		eval:       eval,
	}
}

// Setup registers role routes
func (h *RoleApi) Setup(app *fiber.App) {
	roles := app.Group("/api/roles", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	roles.Get("/", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionRead), h.controller.ListRoles)
	roles.Get("/:id", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionRead), h.controller.GetRole)
	roles.Post("/", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionManage), h.controller.CreateRole)
	roles.Put("/:id", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionManage), h.controller.UpdateRole)
	roles.Delete("/:id", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionManage), h.controller.DeleteRole)
}
