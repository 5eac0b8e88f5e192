package event

import (
	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type EventController struct {
	EventService EventService
}

func NewEventController(eventService EventService) *EventController {
	return &EventController{EventService: eventService}
}

type CreateEventRequest struct {
	Title       string             `json:"title"`
	Date        string             `json:"date"`
	Time        string             `json:"time,omitempty"`
	Type        models.EventType   `json:"type,omitempty"`
	LeadID      string             `json:"leadId,omitempty"`
	Source      models.EventSource `json:"source,omitempty"`
	Description string             `json:"description,omitempty"`
}

func (ctrl *EventController) ListEvents(c *fiber.Ctx) error {
	events, err := ctrl.EventService.ListEvents(c.Context(), ListFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
		Type: models.EventType(c.Query("type")),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch events")
	}
	return c.JSON(fiber.Map{"events": events})
}

func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	event, err := ctrl.EventService.CreateEvent(c.Context(), middleware.CurrentUser(c), CreateEventInput{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
		LeadID:      req.LeadID,
		Source:      req.Source,
		Description: req.Description,
	})
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	var patch EventPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	event, err := ctrl.EventService.UpdateEvent(c.Context(), middleware.CurrentUser(c), c.Params("id"), patch)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(event)
}

func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	if err := ctrl.EventService.DeleteEvent(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
