package user

import (
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
	users      middleware.UserResolver
	eval       middleware.Evaluator
}

func NewUserApi(controller *UserController, cfg *config.Config, users middleware.UserResolver, eval middleware.Evaluator) *UserApi {
	return &UserApi{
		controller: controller,
		config:     cfg,
		users:      users,
		eval:       eval,
	}
}

// Setup registers user directory routes
func (h *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/users", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	users.Get("/", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionRead), h.controller.ListUsers)
	users.Get("/:id", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionRead), h.controller.GetUser)
	users.Post("/", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionManage), h.controller.CreateUser)
	users.Put("/:id", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionManage), h.controller.UpdateUser)
	users.Delete("/:id", middleware.RequirePermission(h.eval, models.ModuleUsers, models.ActionManage), h.controller.DeleteUser)
}
