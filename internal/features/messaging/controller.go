package messaging

import (
	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type MessagingController struct {
	MessagingService MessagingService
	Hub              *Hub
}

func NewMessagingController(messagingService MessagingService, hub *Hub) *MessagingController {
	return &MessagingController{
		MessagingService: messagingService,
		Hub:              hub,
	}
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

func (ctrl *MessagingController) ListConversations(c *fiber.Ctx) error {
	conversations, err := ctrl.MessagingService.ListConversations(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch conversations")
	}
	return c.JSON(fiber.Map{"conversations": conversations})
}

func (ctrl *MessagingController) GetConversation(c *fiber.Ctx) error {
	conv, err := ctrl.MessagingService.GetConversation(c.Context(), c.Params("leadId"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(conv)
}

func (ctrl *MessagingController) SendMessage(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	msg, err := ctrl.MessagingService.SendMessage(c.Context(), middleware.CurrentUser(c), c.Params("leadId"), req.Text)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (ctrl *MessagingController) ListTemplates(c *fiber.Ctx) error {
	templates, err := ctrl.MessagingService.ListTemplates(c.Context(), c.Params("leadId"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(fiber.Map{"templates": templates})
}

// StreamConversation holds the websocket open and forwards every new message
// of the thread until the client goes away.
func (ctrl *MessagingController) StreamConversation(c *websocket.Conn) {
	leadID := c.Params("leadId")
	ctrl.Hub.Subscribe(leadID, c)
	defer ctrl.Hub.Unsubscribe(leadID, c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
