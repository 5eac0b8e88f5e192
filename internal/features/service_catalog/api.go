package service_catalog

import (
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ServiceApi struct {
	controller *ServiceController
	config     *config.Config
	users      middleware.UserResolver
	eval       middleware.Evaluator
}

func NewServiceApi(controller *ServiceController, cfg *config.Config, users middleware.UserResolver, eval middleware.Evaluator) *ServiceApi {
	return &ServiceApi{
		controller: controller,
		config:     cfg,
		users:      users,
		eval:       eval,
	}
}

// Setup registers service catalog routes
func (h *ServiceApi) Setup(app *fiber.App) {
	services := app.Group("/api/services", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	services.Get("/", middleware.RequireModule(h.eval, models.ModuleServices), h.controller.ListServices)
	services.Post("/", middleware.RequirePermission(h.eval, models.ModuleServices, models.ActionManage), h.controller.CreateService)
	services.Put("/:id", middleware.RequirePermission(h.eval, models.ModuleServices, models.ActionManage), h.controller.UpdateService)
	services.Put("/:id/toggle", middleware.RequirePermission(h.eval, models.ModuleServices, models.ActionManage), h.controller.ToggleService)
	services.Delete("/:id", middleware.RequirePermission(h.eval, models.ModuleServices, models.ActionManage), h.controller.DeleteService)
}
