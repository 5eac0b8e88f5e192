package lead

import (
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LeadApi struct {
	controller *LeadController
	config     *config.Config
	users      middleware.UserResolver
	eval       middleware.Evaluator
}

func NewLeadApi(controller *LeadController, cfg *config.Config, users middleware.UserResolver, eval middleware.Evaluator) *LeadApi {
	return &LeadApi{
		controller: controller,
		config:     cfg,
		users:      users,
		eval:       eval,
	}
}

// Setup registers lead and pipeline-stage routes
func (h *LeadApi) Setup(app *fiber.App) {
	leads := app.Group("/api/leads", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	leads.Get("/", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionRead), h.controller.ListLeads)
	leads.Get("/export", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionExport), h.controller.ExportLeads)
	leads.Get("/:id", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionRead), h.controller.GetLead)
	leads.Post("/", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionCreate), h.controller.CreateLead)
	leads.Put("/:id", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionUpdate), h.controller.UpdateLead)
	leads.Put("/:id/status", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionUpdate), h.controller.MoveLead)
	leads.Delete("/:id", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionDelete), h.controller.DeleteLead)

	stages := app.Group("/api/stages", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	stages.Get("/", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionRead), h.controller.ListStages)
	stages.Post("/", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionUpdate), h.controller.AddStage)
	stages.Put("/:id", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionUpdate), h.controller.RenameStage)
	stages.Delete("/:id", middleware.RequirePermission(h.eval, models.ModuleLeads, models.ActionUpdate), h.controller.RemoveStage)
}
