package audit

import (
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	config     *config.Config
	users      middleware.UserResolver
	eval       middleware.Evaluator
}

func NewAuditApi(controller *AuditController, cfg *config.Config, users middleware.UserResolver, eval middleware.Evaluator) *AuditApi {
	return &AuditApi{
		controller: controller,
		config:     cfg,
		users:      users,
		eval:       eval,
	}
}

// Setup registers audit routes
func (h *AuditApi) Setup(app *fiber.App) {
	logs := app.Group("/api/audit", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	logs.Get("/", middleware.RequirePermission(h.eval, models.ModuleAudit, models.ActionRead), h.controller.ListLogs)
}
