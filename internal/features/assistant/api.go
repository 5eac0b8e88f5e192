package assistant

import (
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AssistantApi struct {
	controller *AssistantController
	config     *config.Config
	users      middleware.UserResolver
}

func NewAssistantApi(controller *AssistantController, cfg *config.Config, users middleware.UserResolver) *AssistantApi {
	return &AssistantApi{
		controller: controller,
		config:     cfg,
		users:      users,
	}
}

// Setup registers assistant routes. Lead-scoped endpoints enforce lead
// visibility inside the handlers, so the group only requires authentication.
func (h *AssistantApi) Setup(app *fiber.App) {
	ai := app.Group("/api/assistant", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	ai.Post("/chat", h.controller.Chat)
	ai.Post("/leads/:id/analysis", h.controller.AnalyzeLead)
	ai.Post("/conversations/:leadId/suggestion", h.controller.SuggestReply)
}
