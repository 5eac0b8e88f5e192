package task

import (
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TaskApi struct {
	controller *TaskController
	config     *config.Config
	users      middleware.UserResolver
	eval       middleware.Evaluator
}

func NewTaskApi(controller *TaskController, cfg *config.Config, users middleware.UserResolver, eval middleware.Evaluator) *TaskApi {
	return &TaskApi{
		controller: controller,
		config:     cfg,
		users:      users,
		eval:       eval,
	}
}

// Setup registers task routes. The catalog only defines tasks_manage, so
// every action resolves through the manage grant.
func (h *TaskApi) Setup(app *fiber.App) {
	tasks := app.Group("/api/tasks", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	tasks.Get("/", middleware.RequirePermission(h.eval, models.ModuleTasks, models.ActionRead), h.controller.ListTasks)
	tasks.Post("/", middleware.RequirePermission(h.eval, models.ModuleTasks, models.ActionCreate), h.controller.CreateTask)
	tasks.Put("/:id", middleware.RequirePermission(h.eval, models.ModuleTasks, models.ActionUpdate), h.controller.UpdateTask)
	tasks.Put("/:id/toggle", middleware.RequirePermission(h.eval, models.ModuleTasks, models.ActionUpdate), h.controller.ToggleTask)
	tasks.Delete("/:id", middleware.RequirePermission(h.eval, models.ModuleTasks, models.ActionDelete), h.controller.DeleteTask)
}
