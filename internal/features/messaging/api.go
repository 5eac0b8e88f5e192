package messaging

import (
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type MessagingApi struct {
	controller *MessagingController
	config     *config.Config
	users      middleware.UserResolver
}

func NewMessagingApi(controller *MessagingController, cfg *config.Config, users middleware.UserResolver) *MessagingApi {
	return &MessagingApi{
		controller: controller,
		config:     cfg,
		users:      users,
	}
}

// Setup registers messaging routes. Conversations are open to every
// authenticated user, matching the permission catalog which defines no
// messaging-specific permissions.
func (h *MessagingApi) Setup(app *fiber.App) {
	msg := app.Group("/api/messaging", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	msg.Get("/conversations", h.controller.ListConversations)
	msg.Get("/conversations/:leadId", h.controller.GetConversation)
	msg.Post("/conversations/:leadId/messages", h.controller.SendMessage)
	msg.Get("/conversations/:leadId/templates", h.controller.ListTemplates)

	msg.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	msg.Get("/ws/:leadId", websocket.New(h.controller.StreamConversation))
}
