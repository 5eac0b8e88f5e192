package event

import (
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type EventApi struct {
	controller *EventController
	config     *config.Config
	users      middleware.UserResolver
}

func NewEventApi(controller *EventController, cfg *config.Config, users middleware.UserResolver) *EventApi {
	return &EventApi{
		controller: controller,
		config:     cfg,
		users:      users,
	}
}

// Setup registers calendar routes. The catalog defines no calendar-specific
// permissions, so the calendar is open to every authenticated user.
func (h *EventApi) Setup(app *fiber.App) {
	events := app.Group("/api/events", middleware.AuthMiddleware(h.config.SkipAuth, h.users))

	events.Get("/", h.controller.ListEvents)
	events.Post("/", h.controller.CreateEvent)
	events.Put("/:id", h.controller.UpdateEvent)
	events.Delete("/:id", h.controller.DeleteEvent)
}
